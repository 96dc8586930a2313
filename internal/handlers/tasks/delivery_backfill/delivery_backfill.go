package delivery_backfill

import (
	"context"
	"errors"
	"time"
)

// DeliveryBackfill чинит доставки, событие о которых потерялось: сначала
// снимает осиротевшие, потом заводит недостающие.
// Курсор по reserved_at живет в памяти, после рестарта проход начинается
// с now - lookback.
type DeliveryBackfill struct {
	service  Service
	interval time.Duration
	cursor   time.Time
}

func NewDeliveryBackfill(service Service, interval, lookback time.Duration) *DeliveryBackfill {
	return &DeliveryBackfill{
		service:  service,
		interval: interval,
		cursor:   time.Now().UTC().Add(-lookback),
	}
}

func (b *DeliveryBackfill) TTL() time.Duration {
	return b.interval
}

func (b *DeliveryBackfill) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, b.interval)
	defer cancel()

	_, reconcileErr := b.service.ReconcileDeliveries(ctxWithTimeout)

	newCursor, err := b.service.BackfillDeliveries(ctxWithTimeout, b.cursor)
	if !newCursor.IsZero() && newCursor.After(b.cursor) {
		b.cursor = newCursor
	}

	return errors.Join(reconcileErr, err)
}

func (b *DeliveryBackfill) Info() string {
	return "delivery backfill"
}
