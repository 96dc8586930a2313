//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=donations_mine_get_test
package donations_mine_get

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
	ListByDonor(ctx context.Context, session entities.Session) ([]entities.Donation, error)
}
