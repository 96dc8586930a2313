package notification

import "errors"

var (
	ErrInvalidRecipient    = errors.New("invalid recipient")
	ErrInvalidTitle        = errors.New("invalid title")
	ErrInvalidMessage      = errors.New("invalid message")
	ErrInvalidRelation     = errors.New("invalid related entity")
	ErrInvalidNotification = errors.New("invalid notification id")

	ErrNotificationNotFound = errors.New("notification not found")
)
