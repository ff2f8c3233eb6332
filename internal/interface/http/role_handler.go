package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillink/skillink-api/internal/application"
	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/interface/middleware"
	"github.com/skillink/skillink-api/pkg/response"
	"github.com/skillink/skillink-api/pkg/validation"
)

// RoleHandler lets an authenticated user pick up additional roles and
// jump between the dashboards they already hold.
type RoleHandler struct {
	Sessions *application.SessionService
	Logger   *logrus.Logger
}

func NewRoleHandler(sessions *application.SessionService, logger *logrus.Logger) *RoleHandler {
	return &RoleHandler{Sessions: sessions, Logger: logger}
}

type selectRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=homeowner professional supplier"`
}

// Options GET /role-selection
// Lists every role with a flag for the ones already held, so held roles
// can be offered as direct dashboard shortcuts.
func (h *RoleHandler) Options(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.Redirect(http.StatusFound, middleware.AuthPath)
		return
	}
	type option struct {
		Role      entity.Role `json:"role"`
		Held      bool        `json:"held"`
		Dashboard string      `json:"dashboard"`
	}
	opts := make([]option, 0, len(entity.AllRoles()))
	for _, r := range entity.AllRoles() {
		opts = append(opts, option{Role: r, Held: u.HasRole(r), Dashboard: r.DashboardPath()})
	}
	response.Success(c, http.StatusOK, opts, "choose your role", nil)
}

// Select POST /role-selection {role}
// An already-held role goes straight to its dashboard; otherwise the role
// is added first. Without a session the visitor is sent back to login.
func (h *RoleHandler) Select(c *gin.Context) {
	var req selectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, _ := entity.ParseRole(req.Role)

	u := middleware.CurrentUser(c)
	if u == nil {
		c.Redirect(http.StatusFound, middleware.AuthPath)
		return
	}
	if u.HasRole(role) {
		c.Redirect(http.StatusFound, role.DashboardPath())
		return
	}

	sid := c.GetString(middleware.CtxSessionIDKey)
	updated, err := h.Sessions.AddRole(c.Request.Context(), sid, role)
	switch {
	case errors.Is(err, application.ErrNoSession):
		c.Redirect(http.StatusFound, middleware.AuthPath)
	case errors.Is(err, application.ErrOperationInFlight):
		c.Header("Retry-After", "1")
		response.Error[any](c, http.StatusServiceUnavailable, "another operation is in progress", nil)
	case err != nil:
		h.Logger.WithError(err).WithField("role", role).Error("add role failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to add role, please try again", nil)
	default:
		response.Success(c, http.StatusOK, updated, "role added", gin.H{"redirect_to": role.DashboardPath()})
	}
}
