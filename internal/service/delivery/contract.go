//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"
	"time"

	"foodshare/internal/entities"
	"foodshare/internal/pkg/authz"
	"foodshare/pkg/logger"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, donationID uuid.UUID, ngoID uuid.UUID) (*entities.Delivery, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Delivery, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Delivery, error)
	ListByStatus(ctx context.Context, status entities.DeliveryStatus) ([]entities.Delivery, error)
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]entities.Delivery, error)

	Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (bool, error)
	StartPickup(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (bool, error)
	Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID, from entities.DeliveryStatus) (bool, error)
	CancelByDonation(ctx context.Context, donationID uuid.UUID, from []entities.DeliveryStatus) (int64, error)
	CancelOrphaned(ctx context.Context, donationID uuid.UUID) (int64, error)

	GetDonation(ctx context.Context, donationID uuid.UUID) (*entities.Donation, error)
	AdvanceDonation(ctx context.Context, donationID uuid.UUID, from entities.DonationStatus, to entities.DonationStatus) (bool, error)
	ListAwaitingDelivery(ctx context.Context, since time.Time, limit uint64) ([]entities.Donation, error)
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

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
