//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=donation_get_test
package donation_get

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
	Get(ctx context.Context, id uuid.UUID) (*entities.Donation, error)
}
