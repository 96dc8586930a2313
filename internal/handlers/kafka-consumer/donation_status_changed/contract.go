//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=donation_status_changed_test
package donation_status_changed

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
	ProcessDonationStatusChange(ctx context.Context, event entities.DonationStatusChanged) (*entities.Donation, error)
}
