package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodshare/internal/entities"
	"foodshare/internal/pkg/authz"
	"foodshare/pkg/logger"
	"foodshare/pkg/retrier"
	"foodshare/pkg/retrier/backoff_adapter"

	"github.com/google/uuid"
)

const (
	defaultMaxAttempts    = 2
	defaultRetryDelay     = time.Second
	defaultAttemptTimeout = 5 * time.Second

	reservedTitle = "Donation Reserved"
)

// errPredicateFailed условие WHERE не выполнилось. Не ретраится.
var errPredicateFailed = errors.New("reservation predicate failed")

type Config struct {
	Strategies     []StrategyName
	MaxAttempts    uint64
	RetryDelay     time.Duration
	AttemptTimeout time.Duration
}

type Reservation struct {
	repository     Repository
	authorizer     Authorizer
	notifier       Notifier
	publisher      EventPublisher
	log            serviceLogger
	strategies     []Strategy
	retrier        retrier.Retrier
	attemptTimeout time.Duration
}

func New(
	repository Repository,
	authorizer Authorizer,
	notifier Notifier,
	publisher EventPublisher,
	log serviceLogger,
	cfg Config,
) *Reservation {
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = DefaultStrategies
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = defaultAttemptTimeout
	}

	return &Reservation{
		repository: repository,
		authorizer: authorizer,
		notifier:   notifier,
		publisher:  publisher,
		log:        log.With(logger.NewField("component", "reservation")),
		strategies: buildStrategies(repository, cfg.Strategies),
		retrier: backoff_adapter.New(
			retrier.Fixed(cfg.RetryDelay, cfg.MaxAttempts, isRetryable),
		),
		attemptTimeout: cfg.AttemptTimeout,
	}
}

// Reserve переводит пожертвование available -> pending от имени НКО из сессии.
func (r *Reservation) Reserve(ctx context.Context, session entities.Session, donationID uuid.UUID) (*entities.Donation, error) {
	if donationID == uuid.Nil {
		return nil, ErrInvalidDonationID
	}

	donation, err := r.repository.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, ErrDonationNotFound) {
			return nil, r.result(err)
		}
		return nil, r.result(fmt.Errorf("%w: get donation: %w", ErrTransientFailure, err))
	}

	// быстрый отказ, гонку не закрывает
	if donation.Status != entities.DonationAvailable {
		return nil, r.result(alreadyTaken(donation))
	}

	err = r.authorizer.Authorize(ctx, session, authz.ActionDonationReserve, authz.Resource{
		ID:      donation.ID,
		OwnerID: &donation.DonorID,
	})
	if err != nil {
		return nil, err
	}

	ngoID := session.UserID
	var winner StrategyName
	err = r.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		var attemptErr error
		winner, attemptErr = r.attempt(ctx, donationID, ngoID)
		return attemptErr
	})

	switch {
	case err == nil:
	case errors.Is(err, errPredicateFailed):
		current, classifyErr := r.classifyLostRace(ctx, donationID, ngoID)
		if classifyErr != nil {
			return nil, r.result(classifyErr)
		}
		// запись прошла в попытке, которая вернула ошибку (например, таймаут после коммита)
		donation = current
		winner = "recovered"
	default:
		return nil, r.result(fmt.Errorf("%w: %w", ErrTransientFailure, err))
	}

	r.log.Info("donation reserved",
		logger.NewField("donation_id", donationID),
		logger.NewField("ngo_id", ngoID),
		logger.NewField("strategy", string(winner)),
	)
	r.result(nil)

	reserved := r.reread(ctx, donation, ngoID)
	r.notifyDonor(ctx, reserved)
	r.publish(ctx, reserved)

	return reserved, nil
}

// Cancel возвращает пожертвование в available. Только текущая резервирующая НКО.
func (r *Reservation) Cancel(ctx context.Context, session entities.Session, donationID uuid.UUID) (*entities.Donation, error) {
	if donationID == uuid.Nil {
		return nil, ErrInvalidDonationID
	}

	err := r.authorizer.Authorize(ctx, session, authz.ActionReservationCancel, authz.Resource{ID: donationID})
	if err != nil {
		return nil, err
	}

	cancelled, err := r.repository.CancelReservation(ctx, donationID, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("cancel reservation: %w", err)
	}

	if !cancelled {
		current, err := r.repository.GetByID(ctx, donationID)
		if err != nil {
			return nil, fmt.Errorf("get donation: %w", err)
		}
		if !current.IsReservedBy(session.UserID) {
			return nil, ErrNotOwner
		}
		return nil, alreadyMoved(current)
	}

	r.log.Info("reservation cancelled",
		logger.NewField("donation_id", donationID),
		logger.NewField("ngo_id", session.UserID),
	)

	// строка уже available: ошибка перечитывания не отменяет успех и событие
	current := r.rereadReleased(ctx, donationID)
	r.publish(ctx, current)

	return current, nil
}

func (r *Reservation) rereadReleased(ctx context.Context, donationID uuid.UUID) *entities.Donation {
	current, err := r.repository.GetByID(ctx, donationID)
	if err == nil {
		return current
	}

	r.log.Warn("re-read after cancellation failed, returning local copy",
		logger.NewField("donation_id", donationID),
		logger.NewField("error", err),
	)

	return &entities.Donation{
		ID:        donationID,
		Status:    entities.DonationAvailable,
		UpdatedAt: time.Now().UTC(),
	}
}

// ListReservations пожертвования, которые держит НКО, новые резервы первыми.
func (r *Reservation) ListReservations(ctx context.Context, session entities.Session) ([]entities.Donation, error) {
	donations, err := r.repository.ListReservedBy(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return donations, nil
}

// attempt один проход по списку стратегий под общим таймаутом.
func (r *Reservation) attempt(ctx context.Context, donationID, ngoID uuid.UUID) (StrategyName, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
	defer cancel()

	var errs []error
	for _, strategy := range r.strategies {
		reserved, err := strategy.Reserve(attemptCtx, donationID, ngoID)
		if err != nil {
			ReservationAttemptsTotal.WithLabelValues(string(strategy.Name()), outcomeError).Inc()
			r.log.Warn("reservation strategy failed",
				logger.NewField("donation_id", donationID),
				logger.NewField("strategy", string(strategy.Name())),
				logger.NewField("error", err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", strategy.Name(), err))
			if attemptCtx.Err() != nil {
				break
			}
			continue
		}

		if !reserved {
			ReservationAttemptsTotal.WithLabelValues(string(strategy.Name()), outcomePredicateFailed).Inc()
			return strategy.Name(), errPredicateFailed
		}

		ReservationAttemptsTotal.WithLabelValues(string(strategy.Name()), outcomeReserved).Inc()
		return strategy.Name(), nil
	}

	if len(errs) == 0 {
		return "", errors.New("no reservation strategies configured")
	}
	return "", errors.Join(errs...)
}

// classifyLostRace перечитывает строку после неудачного предиката.
// Возвращает строку, если резерв на самом деле наш.
func (r *Reservation) classifyLostRace(ctx context.Context, donationID, ngoID uuid.UUID) (*entities.Donation, error) {
	current, err := r.repository.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, ErrDonationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get donation: %w", ErrTransientFailure, err)
	}

	if current.Status == entities.DonationPending && current.IsReservedBy(ngoID) {
		return current, nil
	}
	return nil, alreadyTaken(current)
}

func (r *Reservation) reread(ctx context.Context, before *entities.Donation, ngoID uuid.UUID) *entities.Donation {
	current, err := r.repository.GetByID(ctx, before.ID)
	if err == nil {
		return current
	}

	r.log.Warn("re-read after reservation failed, returning local copy",
		logger.NewField("donation_id", before.ID),
		logger.NewField("error", err),
	)

	now := time.Now().UTC()
	patched := *before
	patched.Status = entities.DonationPending
	patched.ReservedBy = &ngoID
	if patched.ReservedAt == nil {
		patched.ReservedAt = &now
	}
	patched.UpdatedAt = now
	return &patched
}

func (r *Reservation) notifyDonor(ctx context.Context, donation *entities.Donation) {
	related := entities.RelatedDonation
	_, err := r.notifier.Notify(ctx, entities.NotificationCreate{
		UserID:    donation.DonorID,
		Title:     reservedTitle,
		Message:   fmt.Sprintf("Your donation %q has been reserved by an NGO.", donation.FoodName),
		RelatedTo: &related,
		RelatedID: &donation.ID,
	})
	if err != nil {
		r.log.Error("notify donor about reservation",
			logger.NewField("donation_id", donation.ID),
			logger.NewField("donor_id", donation.DonorID),
			logger.NewField("error", err),
		)
	}
}

func (r *Reservation) publish(ctx context.Context, donation *entities.Donation) {
	event := entities.NewDonationStatusChanged(*donation, time.Now().UTC())
	if err := r.publisher.PublishDonationStatusChanged(ctx, event); err != nil {
		r.log.Error("publish donation status changed",
			logger.NewField("donation_id", donation.ID),
			logger.NewField("status", donation.Status.String()),
			logger.NewField("error", err),
		)
	}
}

func (r *Reservation) result(err error) error {
	var label string
	switch {
	case err == nil:
		label = "reserved"
	case errors.Is(err, ErrDonationNotFound):
		label = "not_found"
	case errors.Is(err, ErrAlreadyTaken):
		label = "already_taken"
	case errors.Is(err, ErrTransientFailure):
		label = "transient_failure"
	default:
		label = "error"
	}
	ReservationResultsTotal.WithLabelValues(label).Inc()
	return err
}

func isRetryable(err error) bool {
	return !errors.Is(err, errPredicateFailed) &&
		!errors.Is(err, context.Canceled)
}
