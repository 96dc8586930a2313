package profile

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/entities"
	"foodshare/internal/service/session"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	query := `
		SELECT id, user_type, COALESCE(full_name, ''), organization_name
		FROM profiles
		WHERE id = $1
	`

	var (
		profile  entities.Profile
		userType string
	)
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&userType,
		&profile.FullName,
		&profile.OrganizationName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrProfileNotFound
		}
		return nil, fmt.Errorf("unexpected profile repository get error: %w", err)
	}

	profile.UserType = entities.UserType(userType)
	return &profile, nil
}
