//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reservation_test
package reservation

import (
	"context"

	"foodshare/internal/entities"
	"foodshare/internal/pkg/authz"
	"foodshare/pkg/logger"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Donation, error)
	ReserveViaRoutine(ctx context.Context, donationID uuid.UUID, ngoID uuid.UUID) (bool, error)
	ReserveConditional(ctx context.Context, donationID uuid.UUID, ngoID uuid.UUID, statusLiteral string) (bool, error)
	CancelReservation(ctx context.Context, donationID uuid.UUID, ngoID uuid.UUID) (bool, error)
	ListReservedBy(ctx context.Context, ngoID uuid.UUID) ([]entities.Donation, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, session entities.Session, action authz.Action, resource authz.Resource) error
}

type Notifier interface {
	Notify(ctx context.Context, create entities.NotificationCreate) (*entities.Notification, error)
}

type EventPublisher interface {
	PublishDonationStatusChanged(ctx context.Context, event entities.DonationStatusChanged) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
