package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/domain/repository"
	"github.com/skillink/skillink-api/internal/session"
)

var (
	// ErrAccountNotFound means the phone number has no identity behind it.
	// Recoverable: the caller should steer the visitor to registration.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNoSession means a mutation was attempted without an active session.
	ErrNoSession = errors.New("no active session")
	// ErrOperationInFlight means another session mutation is still running
	// for the same session id. Callers should retry after it settles.
	ErrOperationInFlight = errors.New("session operation already in flight")
)

// SessionService owns the authenticated identity for each client session.
// All mutations for one session are single-flight: a second call while one
// is outstanding is rejected rather than interleaved, so the persisted
// record never needs conflict resolution.
type SessionService struct {
	users  repository.UserRepository
	store  session.Store
	logger *logrus.Logger

	otpLength int
	latency   time.Duration

	mu       sync.Mutex
	inflight map[string]struct{}
}

// SessionConfig tunes the service. OTPLength defaults to 6; Latency
// simulates the round trip to a slow backend and should be zero in tests.
type SessionConfig struct {
	OTPLength int
	Latency   time.Duration
}

func NewSessionService(users repository.UserRepository, store session.Store, logger *logrus.Logger, cfg SessionConfig) *SessionService {
	if cfg.OTPLength <= 0 {
		cfg.OTPLength = 6
	}
	return &SessionService{
		users:     users,
		store:     store,
		logger:    logger,
		otpLength: cfg.OTPLength,
		latency:   cfg.Latency,
		inflight:  make(map[string]struct{}),
	}
}

func (s *SessionService) begin(sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sid]; busy {
		return ErrOperationInFlight
	}
	s.inflight[sid] = struct{}{}
	return nil
}

func (s *SessionService) end(sid string) {
	s.mu.Lock()
	delete(s.inflight, sid)
	s.mu.Unlock()
}

// InFlight reports whether a session operation is currently running for
// the given session id.
func (s *SessionService) InFlight(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inflight[sid]
	return busy
}

func (s *SessionService) simulate() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

// persist writes the record with a non-cancellable context: a client that
// walks away mid-operation still gets its result deposited, matching the
// no-cancellation contract of session mutations.
func (s *SessionService) persist(ctx context.Context, sid string, rec *session.Record) error {
	rec.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(context.WithoutCancel(ctx), sid, rec); err != nil {
		s.logger.WithError(err).WithField("sid", sid).Error("persist session record failed")
		return err
	}
	return nil
}

// Login looks the phone up in the identity store. On a hit the identity is
// persisted as pending verification; the session only becomes authenticated
// once the auth flow accepts an OTP and calls Activate. On a miss the
// session is left untouched and ErrAccountNotFound is returned.
func (s *SessionService) Login(ctx context.Context, sid, phone string) (*entity.User, error) {
	if err := s.begin(sid); err != nil {
		return nil, err
	}
	defer s.end(sid)
	s.simulate()

	u, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrAccountNotFound
	}
	if err := s.persist(ctx, sid, &session.Record{User: *u, PendingVerify: true}); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"sid": sid, "user_id": u.ID}).Info("login pending verification")
	return u, nil
}

// Register materializes a new identity with an empty role set and persists
// it as the authenticated session. Phone uniqueness is not enforced here;
// see the identity store contract.
func (s *SessionService) Register(ctx context.Context, sid, name, phone, email string) (*entity.User, error) {
	if err := s.begin(sid); err != nil {
		return nil, err
	}
	defer s.end(sid)
	s.simulate()

	u, err := s.users.Create(ctx, name, phone, email)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, sid, &session.Record{User: *u}); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"sid": sid, "user_id": u.ID}).Info("registered new identity")
	return u, nil
}

// VerifyOTP checks a submitted code against the acceptance policy. The
// policy is structural only: a code is accepted iff it has exactly the
// configured length. This stands in for a real verification call and is
// not production-safe; it must not be "hardened" into a secret comparison
// without changing the flow contract.
//
// VerifyOTP never changes session state; the calling flow decides what a
// success means.
func (s *SessionService) VerifyOTP(ctx context.Context, sid, code string) (bool, error) {
	if err := s.begin(sid); err != nil {
		return false, err
	}
	defer s.end(sid)
	s.simulate()
	return len(code) == s.otpLength, nil
}

// Activate clears the pending-verification mark, promoting a login that
// passed its OTP check into an authenticated session.
func (s *SessionService) Activate(ctx context.Context, sid string) (*entity.User, error) {
	if err := s.begin(sid); err != nil {
		return nil, err
	}
	defer s.end(sid)

	rec, err := s.store.Load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNoSession
	}
	rec.PendingVerify = false
	if err := s.persist(ctx, sid, rec); err != nil {
		return nil, err
	}
	return &rec.User, nil
}

// Logout drops the session. It has no failure mode: a store error is
// logged and swallowed, the client is logged out either way.
func (s *SessionService) Logout(ctx context.Context, sid string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), sid); err != nil {
		s.logger.WithError(err).WithField("sid", sid).Warn("delete session record failed")
	}
}

// AddRole grants the current identity an additional role and re-persists
// the session view. Granting an already-held role is a no-op.
func (s *SessionService) AddRole(ctx context.Context, sid string, role entity.Role) (*entity.User, error) {
	if err := s.begin(sid); err != nil {
		return nil, err
	}
	defer s.end(sid)
	s.simulate()

	rec, err := s.loadActive(ctx, sid)
	if err != nil {
		return nil, err
	}
	u, err := s.users.AddRole(ctx, rec.User.ID, role)
	if err != nil {
		return nil, err
	}
	rec.User = *u
	if err := s.persist(ctx, sid, rec); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"sid": sid, "user_id": u.ID, "role": role}).Info("role added")
	return u, nil
}

// UpdateProfile merges the patch through the identity store and keeps the
// session view consistent with the result.
func (s *SessionService) UpdateProfile(ctx context.Context, sid string, patch entity.UserPatch) (*entity.User, error) {
	if err := s.begin(sid); err != nil {
		return nil, err
	}
	defer s.end(sid)
	s.simulate()

	rec, err := s.loadActive(ctx, sid)
	if err != nil {
		return nil, err
	}
	u, err := s.users.UpdateProfile(ctx, rec.User.ID, patch)
	if err != nil {
		return nil, err
	}
	rec.User = *u
	if err := s.persist(ctx, sid, rec); err != nil {
		return nil, err
	}
	return u, nil
}

// Current rehydrates the session and returns the authenticated identity,
// or nil when there is none. A pending-verification record does not count
// as authenticated. Corrupted records have already been discarded by the
// store, so they surface here as a plain nil.
func (s *SessionService) Current(ctx context.Context, sid string) (*entity.User, error) {
	rec, err := s.store.Load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.PendingVerify {
		return nil, nil
	}
	return &rec.User, nil
}

func (s *SessionService) loadActive(ctx context.Context, sid string) (*session.Record, error) {
	rec, err := s.store.Load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.PendingVerify {
		return nil, ErrNoSession
	}
	return rec, nil
}
