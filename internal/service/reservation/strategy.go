package reservation

import (
	"context"
	"fmt"
	"strings"

	"foodshare/internal/entities"

	"github.com/google/uuid"
)

type StrategyName string

const (
	StrategyAtomicRoutine     StrategyName = "atomic_routine"
	StrategyConditionalUpdate StrategyName = "conditional_update"
	StrategyAlternateLiteral  StrategyName = "alternate_literal"
)

var DefaultStrategies = []StrategyName{
	StrategyAtomicRoutine,
	StrategyConditionalUpdate,
	StrategyAlternateLiteral,
}

// Strategy один способ выполнить check-and-set available -> pending.
// false без ошибки означает, что условие WHERE не выполнилось.
type Strategy interface {
	Name() StrategyName
	Reserve(ctx context.Context, donationID, ngoID uuid.UUID) (bool, error)
}

// ParseStrategies разбирает список вида "atomic_routine,conditional_update".
func ParseStrategies(raw string) ([]StrategyName, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultStrategies, nil
	}

	seen := make(map[StrategyName]struct{})
	names := make([]StrategyName, 0, len(DefaultStrategies))
	for _, part := range strings.Split(raw, ",") {
		name := StrategyName(strings.TrimSpace(part))
		switch name {
		case StrategyAtomicRoutine, StrategyConditionalUpdate, StrategyAlternateLiteral:
		default:
			return nil, fmt.Errorf("unknown reservation strategy %q", name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate reservation strategy %q", name)
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// atomicRoutine вызывает серверную процедуру reserve_donation.
// Единственная стратегия, где проверка и запись идут одним вызовом на стороне БД.
type atomicRoutine struct {
	repository Repository
}

func (s atomicRoutine) Name() StrategyName { return StrategyAtomicRoutine }

func (s atomicRoutine) Reserve(ctx context.Context, donationID, ngoID uuid.UUID) (bool, error) {
	return s.repository.ReserveViaRoutine(ctx, donationID, ngoID)
}

// conditionalUpdate UPDATE ... WHERE status = 'available'. Корректен, пока
// Postgres вычисляет предикат и запись атомарно для строки: на READ COMMITTED
// второй писатель после коммита первого перепроверяет WHERE и обновляет 0 строк.
type conditionalUpdate struct {
	repository Repository
	name       StrategyName
	literal    string
}

func (s conditionalUpdate) Name() StrategyName { return s.name }

func (s conditionalUpdate) Reserve(ctx context.Context, donationID, ngoID uuid.UUID) (bool, error) {
	return s.repository.ReserveConditional(ctx, donationID, ngoID, s.literal)
}

func buildStrategies(repository Repository, names []StrategyName) []Strategy {
	strategies := make([]Strategy, 0, len(names))
	for _, name := range names {
		switch name {
		case StrategyAtomicRoutine:
			strategies = append(strategies, atomicRoutine{repository: repository})
		case StrategyConditionalUpdate:
			strategies = append(strategies, conditionalUpdate{
				repository: repository,
				name:       name,
				literal:    entities.DonationPending.String(),
			})
		case StrategyAlternateLiteral:
			strategies = append(strategies, conditionalUpdate{
				repository: repository,
				name:       name,
				literal:    entities.PendingLegacyLiteral,
			})
		}
	}
	return strategies
}
