package donation_event_handle

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/entities"
	"foodshare/internal/service/delivery"
	"foodshare/internal/service/transport"
)

type StatusHandlerFactory struct {
	deliveryService transport.DeliveryService
}

func NewStatusHandlerFactory(deliveryService transport.DeliveryService) *StatusHandlerFactory {
	return &StatusHandlerFactory{
		deliveryService: deliveryService,
	}
}

func (f *StatusHandlerFactory) GetHandler(status entities.DonationStatus) (transport.ExecuteFn, error) {
	switch status {
	case entities.DonationPending:
		return f.reservedHandler, nil
	case entities.DonationAvailable:
		return f.releasedHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", transport.ErrUndefinedStatus, status)
	}
}

// reservedHandler заводит доставку.
func (f *StatusHandlerFactory) reservedHandler(ctx context.Context, donation entities.Donation) error {
	_, err := f.deliveryService.CreateForDonation(ctx, donation.ID, donation.ReservedBy)
	if err != nil {
		// повтор события или резерв уже снят к моменту обработки
		if errors.Is(err, delivery.ErrDeliveryAlreadyExists) || errors.Is(err, delivery.ErrDonationNotReserved) {
			return nil
		}
		return fmt.Errorf("create delivery for reserved donation %s: %w", donation.ID, err)
	}
	return nil
}

func (f *StatusHandlerFactory) releasedHandler(ctx context.Context, donation entities.Donation) error {
	_, err := f.deliveryService.CancelForDonation(ctx, donation.ID)
	if err != nil {
		return fmt.Errorf("cancel delivery for released donation %s: %w", donation.ID, err)
	}
	return nil
}
