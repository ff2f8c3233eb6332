package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillink/skillink-api/internal/application"
	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/pkg/response"
)

const (
	// CtxUserKey holds the authenticated *entity.User set by RequireSession.
	CtxUserKey = "currentUser"
	// CtxUserIDKey mirrors the user id for handlers that only need the id.
	CtxUserIDKey = "userID"

	AuthPath          = "/auth"
	RoleSelectionPath = "/role-selection"
)

// RequireSession gates a route on an authenticated session. The decision
// is made per request, never cached: role membership can change while a
// session lives.
//
// A session with a mutation still in flight gets a retryable 503 rather
// than a premature redirect; an unauthenticated visitor is redirected to
// the auth entry point.
func RequireSession(sessions *application.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString(CtxSessionIDKey)
		if sid == "" {
			c.Redirect(http.StatusFound, AuthPath)
			c.Abort()
			return
		}
		if sessions.InFlight(sid) {
			c.Header("Retry-After", "1")
			response.Error[any](c, http.StatusServiceUnavailable, "session operation in progress", nil)
			c.Abort()
			return
		}
		u, err := sessions.Current(c.Request.Context(), sid)
		if err != nil || u == nil {
			c.Redirect(http.StatusFound, AuthPath)
			c.Abort()
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// RequireRole gates a route on role membership. A signed-in user without
// the role is sent to role selection, never straight to the dashboard.
// Must run after RequireSession.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.Redirect(http.StatusFound, AuthPath)
			c.Abort()
			return
		}
		if !u.HasRole(role) {
			c.Redirect(http.StatusFound, RoleSelectionPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user placed in context by RequireSession, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
