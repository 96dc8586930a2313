//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_backfill_test
package delivery_backfill

import (
	"context"
	"time"
)

type Service interface {
	ReconcileDeliveries(ctx context.Context) (int64, error)
	BackfillDeliveries(ctx context.Context, cursor time.Time) (time.Time, error)
}
