package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/infrastructure/memstore"
	"github.com/skillink/skillink-api/internal/session"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestService(t *testing.T, cfg SessionConfig) (*SessionService, *session.MemoryStore) {
	t.Helper()
	users := memstore.NewUserStore()
	catalog := memstore.NewCatalogStore()
	memstore.Seed(users, catalog)
	store := session.NewMemoryStore()
	return NewSessionService(users, store, newTestLogger(), cfg), store
}

func TestLoginIsPendingUntilActivated(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	u, err := svc.Login(ctx, "sid-1", "9876543210")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Rahul Sharma", u.Name)

	// the pending record must not count as an authenticated session
	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, cur)

	activated, err := svc.Activate(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, activated.ID)

	cur, err = svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
	assert.Equal(t, []entity.Role{entity.RoleHomeowner}, cur.Roles)
}

func TestLoginUnknownPhone(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	u, err := svc.Login(ctx, "sid-1", "9000000000")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Nil(t, u)

	// a failed login must leave no trace in the session store
	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestRegisterAuthenticatesImmediately(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	u, err := svc.Register(ctx, "sid-1", "Asha Rao", "9812345678", "asha@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.Roles)
	assert.False(t, u.Verified)

	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
}

func TestRegisterDuplicatePhoneAllowed(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	first, err := svc.Register(ctx, "sid-1", "First", "9812345678", "")
	require.NoError(t, err)
	second, err := svc.Register(ctx, "sid-2", "Second", "9812345678", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestVerifyOTPIsStructural(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	ok, err := svc.VerifyOTP(ctx, "sid-1", "000000")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyOTP(ctx, "sid-1", "abcdef")
	require.NoError(t, err)
	assert.True(t, ok, "any six characters pass, digits or not")

	ok, err = svc.VerifyOTP(ctx, "sid-1", "12345")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.VerifyOTP(ctx, "sid-1", "1234567")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddRoleIdempotent(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "sid-1", "Asha Rao", "9812345678", "")
	require.NoError(t, err)

	u, err := svc.AddRole(ctx, "sid-1", entity.RoleHomeowner)
	require.NoError(t, err)
	assert.Equal(t, []entity.Role{entity.RoleHomeowner}, u.Roles)

	u, err = svc.AddRole(ctx, "sid-1", entity.RoleHomeowner)
	require.NoError(t, err)
	assert.Equal(t, []entity.Role{entity.RoleHomeowner}, u.Roles)

	u, err = svc.AddRole(ctx, "sid-1", entity.RoleSupplier)
	require.NoError(t, err)
	assert.Equal(t, []entity.Role{entity.RoleHomeowner, entity.RoleSupplier}, u.Roles)
}

func TestMutationsRequireSession(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	_, err := svc.AddRole(ctx, "ghost", entity.RoleHomeowner)
	assert.ErrorIs(t, err, ErrNoSession)

	name := "Someone"
	_, err = svc.UpdateProfile(ctx, "ghost", entity.UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.Activate(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestPendingSessionRejectsMutations(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	_, err := svc.Login(ctx, "sid-1", "9876543210")
	require.NoError(t, err)

	_, err = svc.AddRole(ctx, "sid-1", entity.RoleSupplier)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSingleFlightPerSession(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{Latency: 100 * time.Millisecond})
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Login(ctx, "sid-1", "9876543210")
	}()

	// wait for the first operation to take the slot
	deadline := time.After(time.Second)
	for !svc.InFlight("sid-1") {
		select {
		case <-deadline:
			t.Fatal("first operation never started")
		case <-time.After(time.Millisecond):
		}
	}

	_, err := svc.Login(ctx, "sid-1", "9876543210")
	assert.ErrorIs(t, err, ErrOperationInFlight)

	// a different session is unaffected
	_, err = svc.Login(ctx, "sid-2", "8765432109")
	assert.NoError(t, err)

	<-done
	assert.False(t, svc.InFlight("sid-1"))
}

func TestLogoutClearsSession(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "sid-1", "Asha Rao", "9812345678", "")
	require.NoError(t, err)

	svc.Logout(ctx, "sid-1")

	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, cur)

	// logging out an already-clean session is harmless
	svc.Logout(ctx, "sid-1")
}

func TestUpdateProfileMergesPatch(t *testing.T) {
	svc, _ := newTestService(t, SessionConfig{})
	ctx := context.Background()

	u, err := svc.Register(ctx, "sid-1", "Asha Rao", "9812345678", "asha@example.com")
	require.NoError(t, err)

	name := "Asha R."
	loc := &entity.Location{State: "Telangana", City: "Hyderabad"}
	updated, err := svc.UpdateProfile(ctx, "sid-1", entity.UserPatch{Name: &name, Location: loc})
	require.NoError(t, err)
	assert.Equal(t, "Asha R.", updated.Name)
	assert.Equal(t, "asha@example.com", updated.Email, "untouched fields survive")
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Hyderabad", updated.Location.City)
	assert.Equal(t, u.ID, updated.ID)

	// the session view reflects the merge on the next read
	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha R.", cur.Name)
}

func TestCorruptedRecordIsDiscarded(t *testing.T) {
	svc, store := newTestService(t, SessionConfig{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "sid-1", "Asha Rao", "9812345678", "")
	require.NoError(t, err)

	store.Corrupt("sid-1")

	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err, "corruption is silent, never an error")
	assert.Nil(t, cur)
}
