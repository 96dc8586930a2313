//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=donation_delete_test
package donation_delete

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
	Delete(ctx context.Context, session entities.Session, id uuid.UUID) error
}
