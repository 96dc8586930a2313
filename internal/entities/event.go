package entities

import (
	"time"

	"github.com/google/uuid"
)

// DonationStatusChanged событие топика donation.status.changed.
type DonationStatusChanged struct {
	DonationID uuid.UUID      `json:"donation_id"`
	Status     DonationStatus `json:"status"`
	ReservedBy *uuid.UUID     `json:"reserved_by,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewDonationStatusChanged(d Donation, now time.Time) DonationStatusChanged {
	return DonationStatusChanged{
		DonationID: d.ID,
		Status:     d.Status,
		ReservedBy: d.ReservedBy,
		OccurredAt: now,
	}
}
