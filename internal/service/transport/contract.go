//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=transport_test
package transport

import (
	"context"

	"foodshare/internal/entities"

	"github.com/google/uuid"
)

type DonationReader interface {
	Get(ctx context.Context, id uuid.UUID) (*entities.Donation, error)
}

type DeliveryService interface {
	CreateForDonation(ctx context.Context, donationID uuid.UUID, ngoID *uuid.UUID) (*entities.Delivery, error)
	CancelForDonation(ctx context.Context, donationID uuid.UUID) (int64, error)
}

type ExecuteFn func(ctx context.Context, donation entities.Donation) error

type HandlerFactory interface {
	GetHandler(status entities.DonationStatus) (ExecuteFn, error)
}
