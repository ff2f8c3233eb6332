package session

import (
	"time"

	"github.com/skillink/skillink-api/internal/domain/entity"
)

// Record is the durable snapshot of a client's session. It is written on
// every session mutation and read back when a request arrives with the
// session cookie, so a reload immediately after a mutation observes the
// same state.
//
// The JSON round trip must reconstruct User.CreatedAt as a real time
// value; date-based logic on the identity depends on it.
type Record struct {
	User entity.User `json:"user"`

	// PendingVerify is set between a successful phone lookup and the OTP
	// check. A pending record is not an authenticated session.
	PendingVerify bool `json:"pending_verify,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// FlowState names a step of the authentication flow.
type FlowState string

const (
	StateLogin      FlowState = "login"
	StateRegister   FlowState = "register"
	StateOTPPending FlowState = "otp-pending"
)

// FlowSnapshot is the transient auth-flow state kept between requests
// while a visitor works through login or registration. It is deleted as
// soon as the flow terminates.
type FlowSnapshot struct {
	State  FlowState `json:"state"`
	Origin FlowState `json:"origin,omitempty"`
	Name   string    `json:"name,omitempty"`
	Phone  string    `json:"phone,omitempty"`
	Email  string    `json:"email,omitempty"`

	// IssuedCode is the last code "delivered" for this flow. Kept for
	// support inspection only; acceptance never compares against it.
	IssuedCode string `json:"issued_code,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}
