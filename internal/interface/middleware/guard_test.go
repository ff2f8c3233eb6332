package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillink/skillink-api/internal/application"
	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/infrastructure/memstore"
	"github.com/skillink/skillink-api/internal/session"
)

func newGuardService(t *testing.T, latency time.Duration) *application.SessionService {
	t.Helper()
	users := memstore.NewUserStore()
	catalog := memstore.NewCatalogStore()
	memstore.Seed(users, catalog)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return application.NewSessionService(users, session.NewMemoryStore(), logger, application.SessionConfig{Latency: latency})
}

func withSID(sid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid != "" {
			c.Set(CtxSessionIDKey, sid)
		}
		c.Next()
	}
}

func guardedRouter(svc *application.SessionService, sid string, role entity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withSID(sid))
	grp := r.Group("/")
	grp.Use(RequireSession(svc))
	if role != "" {
		grp.Use(RequireRole(role))
	}
	grp.GET("/protected", func(c *gin.Context) {
		u := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": u.ID})
	})
	return r
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSessionNoSID(t *testing.T) {
	svc := newGuardService(t, 0)
	r := guardedRouter(svc, "", "")

	w := doGet(r, "/protected")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, AuthPath, w.Header().Get("Location"))
}

func TestRequireSessionUnauthenticated(t *testing.T) {
	svc := newGuardService(t, 0)
	r := guardedRouter(svc, "sid-1", "")

	w := doGet(r, "/protected")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, AuthPath, w.Header().Get("Location"))
}

func TestRequireSessionPendingVerification(t *testing.T) {
	svc := newGuardService(t, 0)
	_, err := svc.Login(context.Background(), "sid-1", "9876543210")
	require.NoError(t, err)

	r := guardedRouter(svc, "sid-1", "")
	w := doGet(r, "/protected")
	assert.Equal(t, http.StatusFound, w.Code, "pending login is not authenticated")
	assert.Equal(t, AuthPath, w.Header().Get("Location"))
}

func TestRequireSessionAuthenticated(t *testing.T) {
	svc := newGuardService(t, 0)
	u, err := svc.Register(context.Background(), "sid-1", "Asha Rao", "9812345678", "")
	require.NoError(t, err)

	r := guardedRouter(svc, "sid-1", "")
	w := doGet(r, "/protected")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.ID)
}

func TestRequireSessionInFlight(t *testing.T) {
	svc := newGuardService(t, 100*time.Millisecond)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Register(ctx, "sid-1", "Asha Rao", "9812345678", "")
	}()

	deadline := time.After(time.Second)
	for !svc.InFlight("sid-1") {
		select {
		case <-deadline:
			t.Fatal("operation never started")
		case <-time.After(time.Millisecond):
		}
	}

	r := guardedRouter(svc, "sid-1", "")
	w := doGet(r, "/protected")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	<-done
}

func TestRequireRoleMissing(t *testing.T) {
	svc := newGuardService(t, 0)
	_, err := svc.Register(context.Background(), "sid-1", "Asha Rao", "9812345678", "")
	require.NoError(t, err)

	r := guardedRouter(svc, "sid-1", entity.RoleSupplier)
	w := doGet(r, "/protected")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, RoleSelectionPath, w.Header().Get("Location"))
}

func TestRequireRoleHeld(t *testing.T) {
	svc := newGuardService(t, 0)
	ctx := context.Background()
	_, err := svc.Register(ctx, "sid-1", "Asha Rao", "9812345678", "")
	require.NoError(t, err)
	_, err = svc.AddRole(ctx, "sid-1", entity.RoleSupplier)
	require.NoError(t, err)

	r := guardedRouter(svc, "sid-1", entity.RoleSupplier)
	w := doGet(r, "/protected")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleChangeObservedNextRequest(t *testing.T) {
	svc := newGuardService(t, 0)
	ctx := context.Background()
	_, err := svc.Register(ctx, "sid-1", "Asha Rao", "9812345678", "")
	require.NoError(t, err)

	r := guardedRouter(svc, "sid-1", entity.RoleHomeowner)

	w := doGet(r, "/protected")
	assert.Equal(t, http.StatusFound, w.Code)

	_, err = svc.AddRole(ctx, "sid-1", entity.RoleHomeowner)
	require.NoError(t, err)

	// the guard re-evaluates per request, no restart needed
	w = doGet(r, "/protected")
	assert.Equal(t, http.StatusOK, w.Code)
}
