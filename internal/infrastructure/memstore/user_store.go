package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/domain/repository"
)

// UserStore is the in-memory store of record for identities. It simulates
// a persistence backend: callers get copies, never the stored value.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*entity.User)}
}

func (s *UserStore) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Phone == phone {
			return cloneUser(u), nil
		}
	}
	// absent is not an error for phone lookup
	return nil, nil
}

func (s *UserStore) Create(ctx context.Context, name, phone, email string) (*entity.User, error) {
	now := time.Now().UTC()
	u := &entity.User{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Roles:     []entity.Role{},
		Verified:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
	return cloneUser(u), nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *UserStore) AddRole(ctx context.Context, id string, role entity.Role) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
		u.UpdatedAt = time.Now().UTC()
	}
	return cloneUser(u), nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Location != nil {
		loc := *patch.Location
		u.Location = &loc
	}
	if patch.ProfileImage != nil {
		u.ProfileImage = *patch.ProfileImage
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

// put inserts a fully formed user, used by the seed dataset.
func (s *UserStore) put(u *entity.User) {
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
}

func cloneUser(u *entity.User) *entity.User {
	out := *u
	out.Roles = append([]entity.Role(nil), u.Roles...)
	if u.Location != nil {
		loc := *u.Location
		out.Location = &loc
	}
	return &out
}

var _ repository.UserRepository = (*UserStore)(nil)
