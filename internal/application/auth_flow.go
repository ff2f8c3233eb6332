package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/session"
	"github.com/skillink/skillink-api/pkg/helpers"
)

var (
	// ErrOTPRejected means the submitted code failed the acceptance policy.
	// Recoverable: the visitor stays on the OTP step and may retry.
	ErrOTPRejected = errors.New("otp rejected")
	// ErrInvalidTransition means a submission arrived for a step the flow
	// is not on, e.g. an OTP code while still on the login form.
	ErrInvalidTransition = errors.New("invalid flow transition")
)

// 10-digit mobile numbers starting 6-9. Business rule inherited from the
// national numbering plan; treated as opaque.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError blocks a submission before it reaches the session layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Message: "enter a valid 10-digit mobile number"}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil // optional
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "enter a valid email address"}
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "enter your full name"}
	}
	return nil
}

// AuthFlow walks an anonymous visitor through login or registration and
// hands off to role selection once the identity is authenticated. The flow
// itself is transient; its snapshot lives in the flow store between
// requests and is deleted on completion.
type AuthFlow struct {
	sessions *SessionService
	flows    session.FlowStore
	logger   *logrus.Logger

	sid    string
	state  session.FlowState
	origin session.FlowState
	name   string
	phone  string
	email  string
	code   string
}

// NewAuthFlow starts a flow at the given entry state. Anything other than
// the register entry falls back to login.
func NewAuthFlow(sessions *SessionService, flows session.FlowStore, logger *logrus.Logger, sid string, initial session.FlowState) *AuthFlow {
	if initial != session.StateRegister {
		initial = session.StateLogin
	}
	return &AuthFlow{sessions: sessions, flows: flows, logger: logger, sid: sid, state: initial}
}

// ResumeAuthFlow restores the flow for a session id, or starts a fresh
// login flow when no snapshot exists.
func ResumeAuthFlow(ctx context.Context, sessions *SessionService, flows session.FlowStore, logger *logrus.Logger, sid string) (*AuthFlow, error) {
	snap, err := flows.LoadFlow(ctx, sid)
	if err != nil {
		return nil, err
	}
	f := NewAuthFlow(sessions, flows, logger, sid, session.StateLogin)
	if snap != nil {
		f.state = snap.State
		f.origin = snap.Origin
		f.name = snap.Name
		f.phone = snap.Phone
		f.email = snap.Email
		f.code = snap.IssuedCode
	}
	return f, nil
}

func (f *AuthFlow) State() session.FlowState { return f.state }
func (f *AuthFlow) Phone() string            { return f.phone }

func (f *AuthFlow) save(ctx context.Context) error {
	snap := &session.FlowSnapshot{
		State:      f.state,
		Origin:     f.origin,
		Name:       f.name,
		Phone:      f.phone,
		Email:      f.email,
		IssuedCode: f.code,
		UpdatedAt:  time.Now().UTC(),
	}
	return f.flows.SaveFlow(ctx, f.sid, snap)
}

// SubmitLogin submits a phone number from the login step. A known phone
// moves the flow to the OTP step; an unknown one moves it to register so
// the visitor can create an account, and ErrAccountNotFound is returned
// for the caller to surface.
func (f *AuthFlow) SubmitLogin(ctx context.Context, phone string) error {
	if f.state != session.StateLogin {
		return ErrInvalidTransition
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	_, err := f.sessions.Login(ctx, f.sid, phone)
	if errors.Is(err, ErrAccountNotFound) {
		f.state = session.StateRegister
		f.phone = phone
		if serr := f.save(ctx); serr != nil {
			return serr
		}
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}

	f.origin = session.StateLogin
	f.state = session.StateOTPPending
	f.phone = phone
	f.deliverOTP()
	return f.save(ctx)
}

// SubmitRegister collects the registration form and moves to the OTP step.
// No identity is created yet; that happens only after the code is accepted.
func (f *AuthFlow) SubmitRegister(ctx context.Context, name, phone, email string) error {
	if f.state != session.StateRegister {
		return ErrInvalidTransition
	}
	if err := validateName(name); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	f.name = strings.TrimSpace(name)
	f.phone = phone
	f.email = email
	f.origin = session.StateRegister
	f.state = session.StateOTPPending
	f.deliverOTP()
	return f.save(ctx)
}

// SubmitOTP checks the code. On success the flow terminates: a register
// origin materializes the account now, a login origin activates the
// pending session. On failure the flow stays on the OTP step.
func (f *AuthFlow) SubmitOTP(ctx context.Context, code string) (*entity.User, error) {
	if f.state != session.StateOTPPending {
		return nil, ErrInvalidTransition
	}
	ok, err := f.sessions.VerifyOTP(ctx, f.sid, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOTPRejected
	}

	var u *entity.User
	if f.origin == session.StateRegister {
		u, err = f.sessions.Register(ctx, f.sid, f.name, f.phone, f.email)
	} else {
		u, err = f.sessions.Activate(ctx, f.sid)
	}
	if err != nil {
		return nil, err
	}
	if derr := f.flows.DeleteFlow(ctx, f.sid); derr != nil {
		f.logger.WithError(derr).WithField("sid", f.sid).Warn("delete flow snapshot failed")
	}
	return u, nil
}

// Back leaves the OTP step and returns to the originating form,
// discarding the pending code.
func (f *AuthFlow) Back(ctx context.Context) error {
	if f.state != session.StateOTPPending {
		return ErrInvalidTransition
	}
	if f.origin == session.StateRegister {
		f.state = session.StateRegister
	} else {
		f.state = session.StateLogin
	}
	f.origin = ""
	f.code = ""
	return f.save(ctx)
}

// deliverOTP simulates sending a code to the visitor's phone. Delivery is
// out of scope, so the generated code goes to the debug log and onto the
// flow snapshot; acceptance is by the structural policy, not by comparison
// against this code.
func (f *AuthFlow) deliverOTP() {
	code, err := helpers.GenOTPCode()
	if err != nil {
		f.logger.WithError(err).Warn("otp generation failed")
		return
	}
	f.code = code
	f.logger.WithFields(logrus.Fields{"phone": f.phone, "code": code}).Debug("otp dispatched")
}
