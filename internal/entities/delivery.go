package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Delivery struct {
	ID           uuid.UUID
	DonationID   uuid.UUID
	VolunteerID  *uuid.UUID
	NgoID        *uuid.UUID
	Status       DeliveryStatus
	PickupTime   *time.Time
	DeliveryTime *time.Time
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (d Delivery) IsAssignedTo(volunteerID uuid.UUID) bool {
	return d.VolunteerID != nil && *d.VolunteerID == volunteerID
}

type DeliveryStatus uint8

const (
	DeliveryStatusUnknown DeliveryStatus = iota
	DeliveryPending
	DeliveryAssigned
	DeliveryInProgress
	DeliveryCompleted
	DeliveryCancelled
)

var deliveryStatusNames = map[DeliveryStatus]string{
	DeliveryPending:    "pending",
	DeliveryAssigned:   "assigned",
	DeliveryInProgress: "in_progress",
	DeliveryCompleted:  "completed",
	DeliveryCancelled:  "cancelled",
}

// deliveryTransitions допустимые переходы. cancelled достижим из любого
// нетерминального состояния.
var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPending:    {DeliveryAssigned, DeliveryCancelled},
	DeliveryAssigned:   {DeliveryInProgress, DeliveryCancelled},
	DeliveryInProgress: {DeliveryCompleted, DeliveryCancelled},
}

func (s DeliveryStatus) String() string {
	if name, ok := deliveryStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryStatusNames[s]
	return ok
}

func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryCompleted || s == DeliveryCancelled
}

// CanTransition сообщает, разрешен ли переход from -> to.
func CanTransition(from, to DeliveryStatus) bool {
	for _, next := range deliveryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SourcesOf состояния, из которых можно попасть в to.
func SourcesOf(to DeliveryStatus) []DeliveryStatus {
	var sources []DeliveryStatus
	for _, from := range []DeliveryStatus{DeliveryPending, DeliveryAssigned, DeliveryInProgress} {
		if CanTransition(from, to) {
			sources = append(sources, from)
		}
	}
	return sources
}

func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	for status, name := range deliveryStatusNames {
		if name == s {
			return status, nil
		}
	}
	return DeliveryStatusUnknown, fmt.Errorf("unknown delivery status %q", s)
}

func (s DeliveryStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid delivery status %d", s)
	}
	return []byte(s.String()), nil
}

func (s *DeliveryStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseDeliveryStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DeliveryAction действие волонтера над доставкой.
type DeliveryAction string

const (
	DeliveryActionClaim    DeliveryAction = "claim"
	DeliveryActionPickup   DeliveryAction = "pickup"
	DeliveryActionComplete DeliveryAction = "complete"
	DeliveryActionCancel   DeliveryAction = "cancel"
)

// Target состояние, в которое ведет действие.
func (a DeliveryAction) Target() (DeliveryStatus, bool) {
	switch a {
	case DeliveryActionClaim:
		return DeliveryAssigned, true
	case DeliveryActionPickup:
		return DeliveryInProgress, true
	case DeliveryActionComplete:
		return DeliveryCompleted, true
	case DeliveryActionCancel:
		return DeliveryCancelled, true
	default:
		return DeliveryStatusUnknown, false
	}
}
