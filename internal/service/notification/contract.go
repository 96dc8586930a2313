//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"

	"foodshare/internal/entities"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, create entities.NotificationCreate) (*entities.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	List(ctx context.Context, userID uuid.UUID, filter entities.NotificationFilter) ([]entities.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
