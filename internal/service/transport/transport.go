package transport

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/entities"

	"github.com/google/uuid"
)

// Service превращает смену статуса пожертвования в действия над доставкой.
type Service struct {
	donations     DonationReader
	deliveries    DeliveryService
	statusFactory HandlerFactory
}

func New(donations DonationReader, deliveries DeliveryService, statusFactory HandlerFactory) *Service {
	return &Service{
		donations:     donations,
		deliveries:    deliveries,
		statusFactory: statusFactory,
	}
}

// ProcessDonationStatusChange перечитывает пожертвование и действует по его
// текущему статусу, а не по статусу из события: события могут прийти с опозданием.
func (s *Service) ProcessDonationStatusChange(ctx context.Context, event entities.DonationStatusChanged) (*entities.Donation, error) {
	if event.DonationID == uuid.Nil {
		return nil, ErrInvalidEvent
	}

	donation, err := s.donations.Get(ctx, event.DonationID)
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}

	executeFn, err := s.statusFactory.GetHandler(donation.Status)
	if err != nil {
		// необрабатываемые статусы пропускаем
		if errors.Is(err, ErrUndefinedStatus) {
			return donation, nil
		}
		return donation, err
	}

	if err := executeFn(ctx, *donation); err != nil {
		return nil, err
	}

	if donation.Status != event.Status {
		return donation, fmt.Errorf("%w: event %s, current %s", ErrStatusMismatch, event.Status, donation.Status)
	}

	return donation, nil
}
