package donation

import (
	"errors"
	"fmt"

	"foodshare/internal/entities"
)

var (
	ErrInvalidDonationID  = errors.New("invalid donation id")
	ErrInvalidFoodName    = errors.New("food name must be at least 2 characters")
	ErrInvalidQuantity    = errors.New("quantity must be a positive number")
	ErrInvalidUnit        = errors.New("unknown unit")
	ErrInvalidExpiryDate  = errors.New("expiry date must not be in the past")
	ErrInvalidAddress     = errors.New("please provide a valid pickup address")
	ErrInvalidOptionalTxt = errors.New("optional text field is too long")

	ErrInvalidDonation  = errors.New("donation rejected by storage constraints")
	ErrDonorNotFound    = errors.New("donor profile not found")
	ErrDonationNotFound = errors.New("donation not found")
	ErrNotDeletable     = errors.New("donation cannot be deleted")
)

var deletionReasons = map[entities.DonationStatus]string{
	entities.DonationPending:   "reserved",
	entities.DonationInTransit: "picked up",
	entities.DonationCompleted: "completed",
	entities.DonationCancelled: "cancelled",
}

func notDeletable(d *entities.Donation) error {
	reason, ok := deletionReasons[d.Status]
	if !ok {
		reason = d.Status.String()
	}
	return fmt.Errorf("%w: %q cannot be deleted because it has already been %s", ErrNotDeletable, d.FoodName, reason)
}
