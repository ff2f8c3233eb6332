package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillink/skillink-api/internal/application"
	"github.com/skillink/skillink-api/internal/interface/middleware"
	"github.com/skillink/skillink-api/pkg/response"
)

// HomeHandler serves the splash endpoint and the not-found fallback.
// Both compute a primary action from whatever session state the visitor
// has, so the client always knows where to send them next.
type HomeHandler struct {
	Sessions *application.SessionService
}

func NewHomeHandler(sessions *application.SessionService) *HomeHandler {
	return &HomeHandler{Sessions: sessions}
}

// primaryAction resolves the best next destination for the caller:
// no identity goes to auth, an identity without roles goes to role
// selection, otherwise the first role's dashboard.
func (h *HomeHandler) primaryAction(c *gin.Context) string {
	sid := c.GetString(middleware.CtxSessionIDKey)
	if sid == "" {
		return middleware.AuthPath
	}
	u, err := h.Sessions.Current(c.Request.Context(), sid)
	if err != nil || u == nil {
		return middleware.AuthPath
	}
	if len(u.Roles) == 0 {
		return middleware.RoleSelectionPath
	}
	return u.Roles[0].DashboardPath()
}

// Splash GET /
func (h *HomeHandler) Splash(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"app":     "Skillink 24/7",
		"tagline": "Connect. Build. Supply.",
	}, "welcome", gin.H{"primary_action": h.primaryAction(c)})
}

// NotFound is mounted as the router's NoRoute handler.
func (h *HomeHandler) NotFound(c *gin.Context) {
	response.Error[any](c, http.StatusNotFound, "page not found", gin.H{
		"primary_action": h.primaryAction(c),
	})
}
