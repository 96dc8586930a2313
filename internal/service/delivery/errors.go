package delivery

import (
	"errors"
	"fmt"

	"foodshare/internal/entities"
)

var (
	ErrInvalidDeliveryID = errors.New("invalid delivery id")
	ErrInvalidDonationID = errors.New("invalid donation id")
	ErrInvalidAction     = errors.New("unknown delivery action")

	ErrDeliveryNotFound      = errors.New("delivery not found")
	ErrDonationNotFound      = errors.New("donation not found")
	ErrDeliveryAlreadyExists = errors.New("donation already has an active delivery")
	ErrDonationNotReserved   = errors.New("donation is not reserved by this ngo")
	ErrNotAssignedVolunteer  = errors.New("delivery is assigned to another volunteer")
	ErrInvalidTransition     = errors.New("invalid delivery transition")
	// ErrDonationStateConflict пожертвование не в том статусе, который ожидает доставка.
	ErrDonationStateConflict = errors.New("donation is not in the expected state")
)

func invalidTransition(current entities.DeliveryStatus, target entities.DeliveryStatus) error {
	return fmt.Errorf("%w: delivery is %s, cannot move to %s", ErrInvalidTransition, current, target)
}
