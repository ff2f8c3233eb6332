package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/domain/repository"
)

// UserRepository is the Postgres-backed identity store. Roles are kept as
// a text array; the optional location blob is stored as jsonb.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userCols = `id, name, phone, email, roles, location, profile_image, verified, trust_score, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var roles []string
	var location []byte
	if err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &roles, &location,
		&u.ProfileImage, &u.Verified, &u.TrustScore, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Roles = make([]entity.Role, 0, len(roles))
	for _, r := range roles {
		u.Roles = append(u.Roles, entity.Role(r))
	}
	if len(location) > 0 {
		var loc entity.Location
		if err := json.Unmarshal(location, &loc); err == nil {
			u.Location = &loc
		}
	}
	return u, nil
}

func rolesToText(roles []entity.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE phone = $1
		ORDER BY created_at
		LIMIT 1
	`, phone)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, name, phone, email string) (*entity.User, error) {
	now := time.Now()
	u := &entity.User{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Roles:     []entity.Role{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, phone, email, roles, verified, trust_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, 0, $6, $6)
	`, u.ID, u.Name, u.Phone, u.Email, []string{}, now)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) AddRole(ctx context.Context, id string, role entity.Role) (*entity.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.HasRole(role) {
		return u, nil
	}
	u.Roles = append(u.Roles, role)
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET roles = $1, updated_at = $2
		WHERE id = $3
	`, rolesToText(u.Roles), u.UpdatedAt, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Location != nil {
		u.Location = patch.Location
	}
	if patch.ProfileImage != nil {
		u.ProfileImage = *patch.ProfileImage
	}
	u.UpdatedAt = time.Now()

	var location []byte
	if u.Location != nil {
		location, err = json.Marshal(u.Location)
		if err != nil {
			return nil, err
		}
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, location = $3, profile_image = $4, updated_at = $5
		WHERE id = $6
	`, u.Name, u.Email, location, u.ProfileImage, u.UpdatedAt, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
