package session

import "errors"

var (
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("profile has unknown user type")
)
