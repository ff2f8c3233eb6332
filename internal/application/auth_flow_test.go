package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/session"
)

func newTestFlow(t *testing.T, sid string, initial session.FlowState) (*AuthFlow, *SessionService, *session.MemoryStore) {
	t.Helper()
	svc, store := newTestService(t, SessionConfig{})
	f := NewAuthFlow(svc, store, newTestLogger(), sid, initial)
	return f, svc, store
}

func TestFlowStartsOnLoginByDefault(t *testing.T) {
	f, _, _ := newTestFlow(t, "sid-1", "")
	assert.Equal(t, session.StateLogin, f.State())

	f, _, _ = newTestFlow(t, "sid-1", session.StateOTPPending)
	assert.Equal(t, session.StateLogin, f.State(), "otp-pending is not an entry state")

	f, _, _ = newTestFlow(t, "sid-1", session.StateRegister)
	assert.Equal(t, session.StateRegister, f.State())
}

func TestRegisterJourney(t *testing.T) {
	f, svc, store := newTestFlow(t, "sid-1", session.StateRegister)
	ctx := context.Background()

	err := f.SubmitRegister(ctx, "Asha Rao", "9812345678", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, session.StateOTPPending, f.State())

	// nothing is materialized until the code is accepted
	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, cur)

	u, err := f.SubmitOTP(ctx, "123456")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Asha Rao", u.Name)
	assert.Empty(t, u.Roles)

	cur, err = svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)

	// the flow snapshot is gone once the flow terminates
	snap, err := store.LoadFlow(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestLoginJourney(t *testing.T) {
	f, svc, _ := newTestFlow(t, "sid-1", session.StateLogin)
	ctx := context.Background()

	err := f.SubmitLogin(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, session.StateOTPPending, f.State())

	u, err := f.SubmitOTP(ctx, "654321")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Rahul Sharma", u.Name)

	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.True(t, cur.HasRole(entity.RoleHomeowner))
}

func TestLoginUnknownPhoneMovesToRegister(t *testing.T) {
	f, _, _ := newTestFlow(t, "sid-1", session.StateLogin)
	ctx := context.Background()

	err := f.SubmitLogin(ctx, "9000000000")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Equal(t, session.StateRegister, f.State())
	assert.Equal(t, "9000000000", f.Phone(), "phone carries over to the register form")
}

func TestUnknownPhoneThenRegisterJourney(t *testing.T) {
	f, svc, _ := newTestFlow(t, "sid-1", session.StateLogin)
	ctx := context.Background()

	err := f.SubmitLogin(ctx, "9000000000")
	require.ErrorIs(t, err, ErrAccountNotFound)

	err = f.SubmitRegister(ctx, "New User", "9000000000", "")
	require.NoError(t, err)

	u, err := f.SubmitOTP(ctx, "111111")
	require.NoError(t, err)
	assert.Equal(t, "New User", u.Name)
	assert.Equal(t, "9000000000", u.Phone)

	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
}

func TestRejectedOTPKeepsFlowOnOTPStep(t *testing.T) {
	f, svc, _ := newTestFlow(t, "sid-1", session.StateLogin)
	ctx := context.Background()

	require.NoError(t, f.SubmitLogin(ctx, "9876543210"))

	_, err := f.SubmitOTP(ctx, "12")
	assert.ErrorIs(t, err, ErrOTPRejected)
	assert.Equal(t, session.StateOTPPending, f.State())

	// still not authenticated
	cur, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, cur)

	// a good code afterwards completes the flow
	u, err := f.SubmitOTP(ctx, "999999")
	require.NoError(t, err)
	assert.NotNil(t, u)
}

func TestBackReturnsToOrigin(t *testing.T) {
	ctx := context.Background()

	f, _, _ := newTestFlow(t, "sid-1", session.StateLogin)
	require.NoError(t, f.SubmitLogin(ctx, "9876543210"))
	require.NoError(t, f.Back(ctx))
	assert.Equal(t, session.StateLogin, f.State())

	f, _, _ = newTestFlow(t, "sid-2", session.StateRegister)
	require.NoError(t, f.SubmitRegister(ctx, "Asha Rao", "9812345678", ""))
	require.NoError(t, f.Back(ctx))
	assert.Equal(t, session.StateRegister, f.State())
}

func TestInvalidTransitions(t *testing.T) {
	ctx := context.Background()

	f, _, _ := newTestFlow(t, "sid-1", session.StateLogin)
	_, err := f.SubmitOTP(ctx, "123456")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = f.SubmitRegister(ctx, "Asha Rao", "9812345678", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = f.Back(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, f.SubmitLogin(ctx, "9876543210"))
	err = f.SubmitLogin(ctx, "9876543210")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFlowValidation(t *testing.T) {
	ctx := context.Background()

	f, _, _ := newTestFlow(t, "sid-1", session.StateLogin)
	var verr *ValidationError

	err := f.SubmitLogin(ctx, "12345")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phone", verr.Field)

	err = f.SubmitLogin(ctx, "5876543210")
	require.ErrorAs(t, err, &verr, "must start with 6-9")

	f, _, _ = newTestFlow(t, "sid-2", session.StateRegister)

	err = f.SubmitRegister(ctx, "   ", "9812345678", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	err = f.SubmitRegister(ctx, "Asha Rao", "9812345678", "not-an-email")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	// email stays optional
	err = f.SubmitRegister(ctx, "Asha Rao", "9812345678", "")
	assert.NoError(t, err)
}

func TestResumeAuthFlow(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, SessionConfig{})
	logger := newTestLogger()

	f := NewAuthFlow(svc, store, logger, "sid-1", session.StateRegister)
	require.NoError(t, f.SubmitRegister(ctx, "Asha Rao", "9812345678", "asha@example.com"))

	// a later request rebuilds the flow from its snapshot
	resumed, err := ResumeAuthFlow(ctx, svc, store, logger, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, session.StateOTPPending, resumed.State())
	assert.Equal(t, "9812345678", resumed.Phone())

	u, err := resumed.SubmitOTP(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", u.Name)

	// no snapshot means a fresh login flow
	fresh, err := ResumeAuthFlow(ctx, svc, store, logger, "sid-other")
	require.NoError(t, err)
	assert.Equal(t, session.StateLogin, fresh.State())
}
