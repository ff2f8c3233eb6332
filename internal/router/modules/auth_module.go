package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillink/skillink-api/internal/container"
	handlers "github.com/skillink/skillink-api/internal/interface/http"
	"github.com/skillink/skillink-api/internal/interface/middleware"
)

// AuthModule wires the login / register / otp flow endpoints.
// Public: GET /auth, POST /auth/login, /auth/register, /auth/otp/verify,
// /auth/back, /auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential-bearing endpoints carry tighter limits than the rest of
	// the flow.
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	otpLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyBySession(), middleware.AllowPrivateIP())

	rg.GET("/auth", m.Handler.Entry)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/register", loginLimiter, m.Handler.Register)
	rg.POST("/auth/otp/verify", otpLimiter, m.Handler.VerifyOTP)
	rg.POST("/auth/back", m.Handler.Back)
	rg.POST("/auth/logout", m.Handler.Logout)
}
