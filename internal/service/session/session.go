package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodshare/internal/entities"
	"foodshare/pkg/retrier"
	"foodshare/pkg/retrier/backoff_adapter"

	"github.com/google/uuid"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

type Config struct {
	// MaxRetries повторы после первой попытки.
	MaxRetries uint64
	RetryDelay time.Duration
}

// Resolver строит Session по идентификатору пользователя из токена.
// Профиль создается триггером после регистрации, поэтому сразу после
// sign-up его может еще не быть: "не найден" ретраится ограниченно.
type Resolver struct {
	repository ProfileRepository
	retrier    retrier.Retrier
}

func New(repository ProfileRepository, cfg Config) *Resolver {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	return &Resolver{
		repository: repository,
		retrier: backoff_adapter.New(retrier.Fixed(cfg.RetryDelay, cfg.MaxRetries+1, func(err error) bool {
			return errors.Is(err, ErrProfileNotFound)
		})),
	}
}

func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (*entities.Session, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	var profile *entities.Profile
	err := r.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		var err error
		profile, err = r.repository.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if !profile.UserType.Valid() {
		return nil, ErrInvalidProfile
	}

	session := entities.NewSession(*profile)
	return &session, nil
}
