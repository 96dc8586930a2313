//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=donation_expiry_test
package donation_expiry

import "context"

type Service interface {
	ExpireStale(ctx context.Context) (int64, error)
}
