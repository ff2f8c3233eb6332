package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillink/skillink-api/pkg/helpers"
)

// CtxSessionIDKey is the Gin context key holding the client's session id.
const CtxSessionIDKey = "sessionID"

// EnsureSession resolves the session id from the signed session cookie,
// minting a fresh id (and cookie) for first-time visitors. Every route
// runs behind this so the auth flow and the guard always have a stable
// session id to key on.
func EnsureSession(tokens *helpers.TokenManager, cookies *helpers.CookieManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(helpers.SessionCookieName); err == nil && token != "" {
			if claims, perr := tokens.Parse(token); perr == nil && claims.SessionID != "" {
				c.Set(CtxSessionIDKey, claims.SessionID)
				c.Next()
				return
			}
			// bad or expired token: fall through and mint a new session
		}

		sid := uuid.NewString()
		token, exp, err := tokens.Generate(sid)
		if err == nil {
			cookies.SetSession(c, token, exp)
		}
		c.Set(CtxSessionIDKey, sid)
		c.Next()
	}
}
