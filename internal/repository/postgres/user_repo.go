package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/paydue/paydue-backend/db/sqlc"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository on the profiles table
type UserRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// GetByID retrieves a profile by user id
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	profile, err := r.queries.GetProfileByID(context.Background(), uuidToPg(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcProfileToDomain(profile), nil
}

// CreateOrGet returns the profile of the user, creating it with default values on first sign-in
func (r *UserRepository) CreateOrGet(id uuid.UUID, email string) (*domain.User, error) {
	profile, err := r.queries.UpsertProfile(context.Background(), sqlc.UpsertProfileParams{
		ID:    uuidToPg(id),
		Email: email,
	})
	if err != nil {
		return nil, err
	}
	return sqlcProfileToDomain(profile), nil
}

// UpdateDisplayName updates the display name of a profile
func (r *UserRepository) UpdateDisplayName(id uuid.UUID, name string) (*domain.User, error) {
	profile, err := r.queries.UpdateProfileDisplayName(context.Background(), sqlc.UpdateProfileDisplayNameParams{
		ID:          uuidToPg(id),
		DisplayName: name,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcProfileToDomain(profile), nil
}

// UpdatePhotoURL updates the stored photo key of a profile
func (r *UserRepository) UpdatePhotoURL(id uuid.UUID, photoURL string) (*domain.User, error) {
	profile, err := r.queries.UpdateProfilePhotoURL(context.Background(), sqlc.UpdateProfilePhotoURLParams{
		ID:       uuidToPg(id),
		PhotoUrl: photoURL,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcProfileToDomain(profile), nil
}

// List retrieves every profile
func (r *UserRepository) List() ([]*domain.User, error) {
	profiles, err := r.queries.ListProfiles(context.Background())
	if err != nil {
		return nil, err
	}
	result := make([]*domain.User, len(profiles))
	for i, p := range profiles {
		result[i] = sqlcProfileToDomain(p)
	}
	return result, nil
}

func sqlcProfileToDomain(p sqlc.Profile) *domain.User {
	return &domain.User{
		ID:          pgToUUID(p.ID),
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoUrl,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}
