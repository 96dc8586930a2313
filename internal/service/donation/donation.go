package donation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodshare/internal/entities"
	"foodshare/internal/pkg/authz"

	"github.com/google/uuid"
)

type Donation struct {
	repository Repository
	authorizer Authorizer
}

func New(repository Repository, authorizer Authorizer) *Donation {
	return &Donation{
		repository: repository,
		authorizer: authorizer,
	}
}

func (d *Donation) Create(ctx context.Context, session entities.Session, create entities.DonationCreate) (*entities.Donation, error) {
	err := d.authorizer.Authorize(ctx, session, authz.ActionDonationCreate, authz.Resource{})
	if err != nil {
		return nil, err
	}

	create.DonorID = session.UserID
	create.FoodName = strings.TrimSpace(create.FoodName)
	create.PickupAddress = strings.TrimSpace(create.PickupAddress)
	create.Description = trimOptional(create.Description)
	create.DietaryInfo = trimOptional(create.DietaryInfo)
	create.TemperatureRequirements = trimOptional(create.TemperatureRequirements)
	create.AdditionalNotes = trimOptional(create.AdditionalNotes)

	if err := validateCreate(create, time.Now()); err != nil {
		return nil, err
	}

	donation, err := d.repository.Create(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}
	return donation, nil
}

func (d *Donation) Get(ctx context.Context, id uuid.UUID) (*entities.Donation, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidDonationID
	}

	donation, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}
	return donation, nil
}

func (d *Donation) ListAvailable(ctx context.Context, filter entities.DonationFilter) ([]entities.Donation, error) {
	if filter.Unit != nil && !filter.Unit.Valid() {
		return nil, ErrInvalidUnit
	}

	donations, err := d.repository.ListAvailable(ctx, normalizeFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("list available donations: %w", err)
	}
	return donations, nil
}

func (d *Donation) ListByDonor(ctx context.Context, session entities.Session) ([]entities.Donation, error) {
	donations, err := d.repository.ListByDonor(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("list donor donations: %w", err)
	}
	return donations, nil
}

// Stats счетчики по всем статусам, отсутствующие статусы заполняются нулем.
func (d *Donation) Stats(ctx context.Context) (entities.DonationStats, error) {
	counts, err := d.repository.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count donations by status: %w", err)
	}

	stats := make(entities.DonationStats, len(entities.AllDonationStatuses))
	for _, status := range entities.AllDonationStatuses {
		stats[status] = counts[status]
	}
	return stats, nil
}

// Delete удаляет пожертвование донора, пока оно в статусе available.
// При отказе строка не меняется.
func (d *Donation) Delete(ctx context.Context, session entities.Session, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidDonationID
	}

	donation, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get donation: %w", err)
	}

	err = d.authorizer.Authorize(ctx, session, authz.ActionDonationDelete, authz.Resource{
		ID:      donation.ID,
		OwnerID: &donation.DonorID,
	})
	if err != nil {
		return err
	}

	if donation.Status != entities.DonationAvailable {
		return notDeletable(donation)
	}

	deleted, err := d.repository.DeleteAvailable(ctx, id, donation.DonorID)
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}
	if deleted {
		return nil
	}

	// между чтением и удалением пожертвование успели зарезервировать или удалить
	current, err := d.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDonationNotFound) {
			return err
		}
		return fmt.Errorf("get donation: %w", err)
	}
	return notDeletable(current)
}

// ExpireStale переводит просроченные available пожертвования в cancelled.
func (d *Donation) ExpireStale(ctx context.Context) (int64, error) {
	expired, err := d.repository.ExpireStale(ctx, time.Now().UTC())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("expire stale donations timed out: %w", err)
		}
		return 0, fmt.Errorf("expire stale donations: %w", err)
	}
	return expired, nil
}
