package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Identities are keyed by phone number for login; a single user may hold
// several marketplace roles at once and switch between their dashboards.
//
// Roles only ever grow during a session. There is no removal flow.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Roles        []Role    `json:"roles"`
	Location     *Location `json:"location,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Verified     bool      `json:"verified"`
	TrustScore   int       `json:"trust_score,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user already holds the given role.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Location is a coarse service area attached to a user profile.
type Location struct {
	State     string  `json:"state"`
	City      string  `json:"city"`
	Area      string  `json:"area,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// UserPatch carries a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Name         *string   `json:"name,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Location     *Location `json:"location,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
}
