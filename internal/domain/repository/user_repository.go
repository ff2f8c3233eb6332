package repository

import (
	"context"
	"errors"

	"github.com/skillink/skillink-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when no record matches an id.
var ErrNotFound = errors.New("not found")

// UserRepository is the store of record for identities. The session layer
// works only through this interface so the backing store can be swapped
// without touching it.
type UserRepository interface {
	// FindByPhone returns (nil, nil) when no identity matches the phone.
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)

	// Create registers a new identity with a fresh id, an empty role set,
	// Verified=false and CreatedAt=now. Phone uniqueness is deliberately
	// not checked here; duplicate phones are the caller's problem.
	Create(ctx context.Context, name, phone, email string) (*entity.User, error)

	GetByID(ctx context.Context, id string) (*entity.User, error)

	// AddRole grants a role. Adding a role the user already holds is a
	// no-op that still returns the user.
	AddRole(ctx context.Context, id string, role entity.Role) (*entity.User, error)

	// UpdateProfile merges the non-nil patch fields into the stored user.
	UpdateProfile(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
}
