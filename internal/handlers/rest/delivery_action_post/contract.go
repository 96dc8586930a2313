//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_action_post_test
package delivery_action_post

import (
	"context"

	"foodshare/internal/entities"
	"foodshare/pkg/logger"

	"github.com/google/uuid"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Apply(ctx context.Context, session entities.Session, id uuid.UUID, action entities.DeliveryAction) (*entities.Delivery, error)
}
