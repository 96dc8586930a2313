//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=donation_reserve_post_test
package donation_reserve_post

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
	Reserve(ctx context.Context, session entities.Session, donationID uuid.UUID) (*entities.Donation, error)
}
