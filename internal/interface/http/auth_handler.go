package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillink/skillink-api/internal/application"
	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/interface/middleware"
	"github.com/skillink/skillink-api/internal/session"
	"github.com/skillink/skillink-api/pkg/helpers"
	"github.com/skillink/skillink-api/pkg/response"
	"github.com/skillink/skillink-api/pkg/validation"
)

// AuthHandler drives the login / register / otp-pending flow over HTTP.
// The flow state itself lives in the flow store, keyed by session id, so
// each request picks up exactly where the visitor left off.
type AuthHandler struct {
	Sessions *application.SessionService
	Flows    session.FlowStore
	Logger   *logrus.Logger
	Cookies  *helpers.CookieManager
}

func NewAuthHandler(sessions *application.SessionService, flows session.FlowStore, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		Sessions: sessions,
		Flows:    flows,
		Logger:   logger,
		Cookies:  helpers.NewCookie(cookieDomain, cookieSecure),
	}
}

type loginRequest struct {
	Phone string `json:"phone" binding:"required,inmobile"`
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,inmobile"`
	Email string `json:"email" binding:"omitempty,email"`
}

type otpRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *AuthHandler) sid(c *gin.Context) string {
	return c.GetString(middleware.CtxSessionIDKey)
}

func (h *AuthHandler) resumeFlow(c *gin.Context) (*application.AuthFlow, bool) {
	f, err := application.ResumeAuthFlow(c.Request.Context(), h.Sessions, h.Flows, h.Logger, h.sid(c))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to restore auth flow", nil)
		return nil, false
	}
	return f, true
}

// Entry GET /auth?register=true
// Returns the current flow state. Visitors that are already signed in are
// redirected straight to role selection or their first dashboard.
func (h *AuthHandler) Entry(c *gin.Context) {
	sid := h.sid(c)
	if u, err := h.Sessions.Current(c.Request.Context(), sid); err == nil && u != nil {
		c.Redirect(http.StatusFound, homeFor(u))
		return
	}

	initial := session.StateLogin
	if c.Query("register") == "true" {
		initial = session.StateRegister
	}
	f := application.NewAuthFlow(h.Sessions, h.Flows, h.Logger, sid, initial)
	if err := h.Flows.SaveFlow(c.Request.Context(), sid, &session.FlowSnapshot{State: f.State()}); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to start auth flow", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": f.State()}, "auth flow started", nil)
}

// Login POST /auth/login {phone}
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	f, ok := h.resumeFlow(c)
	if !ok {
		return
	}

	err := f.SubmitLogin(c.Request.Context(), req.Phone)
	switch {
	case errors.Is(err, application.ErrAccountNotFound):
		// recoverable: the flow has moved the visitor to the register form
		response.Error[any](c, http.StatusNotFound,
			"This number doesn't have an account. Please register first.",
			gin.H{"state": f.State()})
	case errors.Is(err, application.ErrOperationInFlight):
		c.Header("Retry-After", "1")
		response.Error[any](c, http.StatusServiceUnavailable, "another operation is in progress", nil)
	case err != nil:
		h.flowError(c, err)
	default:
		response.Success(c, http.StatusOK, gin.H{"state": f.State(), "phone": f.Phone()}, "code sent", nil)
	}
}

// Register POST /auth/register {name, phone, email?}
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	f, ok := h.resumeFlow(c)
	if !ok {
		return
	}
	if err := f.SubmitRegister(c.Request.Context(), req.Name, req.Phone, req.Email); err != nil {
		h.flowError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": f.State(), "phone": f.Phone()}, "code sent", nil)
}

// VerifyOTP POST /auth/otp/verify {code}
// On success the flow terminates and the visitor is pointed at role
// selection; on a rejected code they stay on the OTP step and may retry.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	f, ok := h.resumeFlow(c)
	if !ok {
		return
	}

	u, err := f.SubmitOTP(c.Request.Context(), req.Code)
	switch {
	case errors.Is(err, application.ErrOTPRejected):
		response.Error[any](c, http.StatusBadRequest, "Invalid OTP. Please enter the correct code.", gin.H{"state": f.State()})
	case errors.Is(err, application.ErrInvalidTransition):
		response.Error[any](c, http.StatusConflict, "no verification in progress", gin.H{"state": f.State()})
	case errors.Is(err, application.ErrOperationInFlight):
		c.Header("Retry-After", "1")
		response.Error[any](c, http.StatusServiceUnavailable, "another operation is in progress", nil)
	case err != nil:
		response.Error[any](c, http.StatusInternalServerError, "verification failed", nil)
	default:
		response.Success(c, http.StatusOK, u, "verified", gin.H{"redirect_to": middleware.RoleSelectionPath})
	}
}

// Back POST /auth/back
// Leaves the OTP step and returns to the originating form.
func (h *AuthHandler) Back(c *gin.Context) {
	f, ok := h.resumeFlow(c)
	if !ok {
		return
	}
	if err := f.Back(c.Request.Context()); err != nil {
		h.flowError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": f.State()}, "returned", nil)
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Logout(c.Request.Context(), h.sid(c))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) flowError(c *gin.Context, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "invalid input", gin.H{verr.Field: verr.Message})
	case errors.Is(err, application.ErrInvalidTransition):
		response.Error[any](c, http.StatusConflict, "action not available in the current step", nil)
	case errors.Is(err, application.ErrOperationInFlight):
		c.Header("Retry-After", "1")
		response.Error[any](c, http.StatusServiceUnavailable, "another operation is in progress", nil)
	default:
		h.Logger.WithError(err).Error("auth flow failure")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong, please try again", nil)
	}
}

// homeFor picks the landing route for a signed-in user: their first
// dashboard, or role selection when they have no roles yet.
func homeFor(u *entity.User) string {
	if len(u.Roles) == 0 {
		return middleware.RoleSelectionPath
	}
	return u.Roles[0].DashboardPath()
}
