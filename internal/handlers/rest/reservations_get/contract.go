//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reservations_get_test
package reservations_get

import (
	"context"

	"foodshare/internal/entities"
	"foodshare/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ListReservations(ctx context.Context, session entities.Session) ([]entities.Donation, error)
}
