package delivery

import (
	"time"

	"github.com/google/uuid"
)

var columns = []string{
	"id",
	"donation_id",
	"volunteer_id",
	"ngo_id",
	"status",
	"pickup_time",
	"delivery_time",
	"notes",
	"created_at",
	"updated_at",
}

type DeliveryDB struct {
	ID           uuid.UUID
	DonationID   uuid.UUID
	VolunteerID  *uuid.UUID
	NgoID        *uuid.UUID
	Status       string
	PickupTime   *time.Time
	DeliveryTime *time.Time
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner) (*DeliveryDB, error) {
	var d DeliveryDB
	err := row.Scan(
		&d.ID,
		&d.DonationID,
		&d.VolunteerID,
		&d.NgoID,
		&d.Status,
		&d.PickupTime,
		&d.DeliveryTime,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
