package donation_expiry

import (
	"context"
	"time"

	"foodshare/pkg/logger"
)

// DonationExpiry снимает с витрины пожертвования с истекшим сроком годности.
type DonationExpiry struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewDonationExpiry(log logger.Logger, service Service, interval time.Duration) *DonationExpiry {
	return &DonationExpiry{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (d *DonationExpiry) TTL() time.Duration {
	return d.interval
}

func (d *DonationExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, d.interval)
	defer cancel()

	rowsAffected, err := d.service.ExpireStale(ctxWithTimeout)

	if rowsAffected > 0 {
		d.log.With(
			logger.NewField("expired_donations", rowsAffected),
		).Info("donation expiry")
	}

	return err
}

func (d *DonationExpiry) Info() string {
	return "donation expiry"
}
