package entities

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	Read      bool
	RelatedTo *RelatedKind
	RelatedID *uuid.UUID
	CreatedAt time.Time
}

type NotificationCreate struct {
	UserID    uuid.UUID
	Title     string
	Message   string
	RelatedTo *RelatedKind
	RelatedID *uuid.UUID
}

type NotificationFilter struct {
	UnreadOnly bool
	Limit      uint64
	Offset     uint64
}

// RelatedKind слабая ссылка уведомления: объект может быть уже удален.
type RelatedKind string

const (
	RelatedDonation RelatedKind = "donation"
	RelatedDelivery RelatedKind = "delivery"
)

func (k RelatedKind) String() string {
	return string(k)
}

func (k RelatedKind) Valid() bool {
	return k == RelatedDonation || k == RelatedDelivery
}
