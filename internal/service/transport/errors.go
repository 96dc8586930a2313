package transport

import "errors"

var (
	ErrInvalidEvent = errors.New("donation event has no donation id")
	// ErrUndefinedStatus статус, на который воркер не реагирует.
	ErrUndefinedStatus = errors.New("no handler for donation status")
	ErrStatusMismatch  = errors.New("event status differs from current donation status")
)
