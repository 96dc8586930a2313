package reservation

import (
	"errors"
	"fmt"

	"foodshare/internal/entities"
)

var (
	ErrInvalidDonationID = errors.New("invalid donation id")

	ErrDonationNotFound = errors.New("donation not found")
	ErrAlreadyTaken     = errors.New("donation is no longer available")
	ErrNotOwner         = errors.New("donation is not reserved by you")
	ErrAlreadyMoved     = errors.New("reservation can no longer be cancelled")
	ErrTransientFailure = errors.New("reservation temporarily failed, please try again")

	// ErrStatusLiteralRejected хранилище не приняло литерал статуса
	// (check constraint или enum). Стратегия считается упавшей, пробуем следующую.
	ErrStatusLiteralRejected = errors.New("status literal rejected by storage")
	// ErrRoutineUnavailable в базе нет процедуры reserve_donation.
	ErrRoutineUnavailable = errors.New("reserve routine unavailable")
)

func alreadyTaken(d *entities.Donation) error {
	return fmt.Errorf("%w: %q is already %s", ErrAlreadyTaken, d.FoodName, d.Status)
}

func alreadyMoved(d *entities.Donation) error {
	return fmt.Errorf("%w: %q is already %s", ErrAlreadyMoved, d.FoodName, d.Status)
}
