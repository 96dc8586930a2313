//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=donation_test
package donation

import (
	"context"
	"time"

	"foodshare/internal/entities"
	"foodshare/internal/pkg/authz"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, create entities.DonationCreate) (*entities.Donation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Donation, error)
	ListAvailable(ctx context.Context, filter entities.DonationFilter) ([]entities.Donation, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]entities.Donation, error)
	CountByStatus(ctx context.Context) (entities.DonationStats, error)
	DeleteAvailable(ctx context.Context, id uuid.UUID, donorID uuid.UUID) (bool, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, session entities.Session, action authz.Action, resource authz.Resource) error
}
