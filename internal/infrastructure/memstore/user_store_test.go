package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/domain/repository"
)

func seededStore(t *testing.T) *UserStore {
	t.Helper()
	users := NewUserStore()
	catalog := NewCatalogStore()
	Seed(users, catalog)
	return users
}

func TestFindByPhone(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	u, err := store.FindByPhone(ctx, "9876543210")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Rahul Sharma", u.Name)

	u, err = store.FindByPhone(ctx, "9000000000")
	require.NoError(t, err, "absence is not an error")
	assert.Nil(t, u)
}

func TestCreateStartsRoleless(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u, err := store.Create(ctx, "Asha Rao", "9812345678", "asha@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.Roles)
	assert.False(t, u.Verified)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := store.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestGetByIDNotFound(t *testing.T) {
	store := NewUserStore()

	_, err := store.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddRoleMonotonic(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	u, err := store.AddRole(ctx, "1", entity.RoleSupplier)
	require.NoError(t, err)
	assert.Equal(t, []entity.Role{entity.RoleHomeowner, entity.RoleSupplier}, u.Roles)

	u, err = store.AddRole(ctx, "1", entity.RoleSupplier)
	require.NoError(t, err)
	assert.Len(t, u.Roles, 2, "held role is a no-op")
}

func TestStoreReturnsCopies(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	u, err := store.GetByID(ctx, "1")
	require.NoError(t, err)

	// mutating the returned value must not leak into the store
	u.Name = "Mangled"
	u.Roles = append(u.Roles, entity.RoleSupplier)
	u.Location.City = "Nowhere"

	fresh, err := store.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Rahul Sharma", fresh.Name)
	assert.Equal(t, []entity.Role{entity.RoleHomeowner}, fresh.Roles)
	assert.Equal(t, "Mumbai", fresh.Location.City)
}

func TestUpdateProfileMerge(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	email := "new@example.com"
	u, err := store.UpdateProfile(ctx, "1", entity.UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, "Rahul Sharma", u.Name, "nil fields untouched")

	_, err = store.UpdateProfile(ctx, "ghost", entity.UserPatch{Email: &email})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
