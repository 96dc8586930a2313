//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=donation_post_test
package donation_post

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
	Create(ctx context.Context, session entities.Session, create entities.DonationCreate) (*entities.Donation, error)
}
