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

// ProfileHandler exposes the signed-in user's own profile.
type ProfileHandler struct {
	Sessions *application.SessionService
	Logger   *logrus.Logger
}

func NewProfileHandler(sessions *application.SessionService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Sessions: sessions, Logger: logger}
}

type updateProfileRequest struct {
	Name         *string          `json:"name"`
	Email        *string          `json:"email" binding:"omitempty"`
	Location     *entity.Location `json:"location"`
	ProfileImage *string          `json:"profile_image"`
}

// Me GET /me
func (h *ProfileHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.Redirect(http.StatusFound, middleware.AuthPath)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

// Update PATCH /me
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sid := c.GetString(middleware.CtxSessionIDKey)
	patch := entity.UserPatch{
		Name:         req.Name,
		Email:        req.Email,
		Location:     req.Location,
		ProfileImage: req.ProfileImage,
	}
	u, err := h.Sessions.UpdateProfile(c.Request.Context(), sid, patch)
	switch {
	case errors.Is(err, application.ErrNoSession):
		c.Redirect(http.StatusFound, middleware.AuthPath)
	case errors.Is(err, application.ErrOperationInFlight):
		c.Header("Retry-After", "1")
		response.Error[any](c, http.StatusServiceUnavailable, "another operation is in progress", nil)
	case err != nil:
		h.Logger.WithError(err).Error("update profile failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update profile", nil)
	default:
		response.Success(c, http.StatusOK, u, "profile updated", nil)
	}
}
