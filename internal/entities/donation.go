package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Donation struct {
	ID                      uuid.UUID
	DonorID                 uuid.UUID
	FoodName                string
	Quantity                float64
	Unit                    Unit
	ExpiryDate              time.Time
	PickupAddress           string
	Description             *string
	DietaryInfo             *string
	TemperatureRequirements *string
	AdditionalNotes         *string
	Status                  DonationStatus
	ReservedBy              *uuid.UUID
	ReservedAt              *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsReservedBy true, если пожертвование удерживает именно эта НКО.
func (d Donation) IsReservedBy(ngoID uuid.UUID) bool {
	return d.ReservedBy != nil && *d.ReservedBy == ngoID
}

type DonationCreate struct {
	DonorID                 uuid.UUID
	FoodName                string
	Quantity                float64
	Unit                    Unit
	ExpiryDate              time.Time
	PickupAddress           string
	Description             *string
	DietaryInfo             *string
	TemperatureRequirements *string
	AdditionalNotes         *string
}

type DonationFilter struct {
	Unit   *Unit
	Limit  uint64
	Offset uint64
}

// DonationStats количество пожертвований по статусам.
type DonationStats map[DonationStatus]int64

// DonationStatus закрытый набор статусов. Строковые литералы живут только
// в String/ParseDonationStatus и на границе с хранилищем.
type DonationStatus uint8

const (
	DonationStatusUnknown DonationStatus = iota
	DonationAvailable
	DonationPending
	DonationInTransit
	DonationCompleted
	DonationCancelled
)

// PendingLegacyLiteral старое написание pending в таблице donations.
const PendingLegacyLiteral = "reserved"

var donationStatusNames = map[DonationStatus]string{
	DonationAvailable: "available",
	DonationPending:   "pending",
	DonationInTransit: "in_transit",
	DonationCompleted: "completed",
	DonationCancelled: "cancelled",
}

var AllDonationStatuses = []DonationStatus{
	DonationAvailable,
	DonationPending,
	DonationInTransit,
	DonationCompleted,
	DonationCancelled,
}

func (s DonationStatus) String() string {
	if name, ok := donationStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s DonationStatus) Valid() bool {
	_, ok := donationStatusNames[s]
	return ok
}

// PendingLiterals все написания pending, которые может вернуть хранилище.
func PendingLiterals() []string {
	return []string{DonationPending.String(), PendingLegacyLiteral}
}

func ParseDonationStatus(s string) (DonationStatus, error) {
	if s == PendingLegacyLiteral {
		return DonationPending, nil
	}
	for status, name := range donationStatusNames {
		if name == s {
			return status, nil
		}
	}
	return DonationStatusUnknown, fmt.Errorf("unknown donation status %q", s)
}

func (s DonationStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid donation status %d", s)
	}
	return []byte(s.String()), nil
}

func (s *DonationStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseDonationStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Unit string

const (
	UnitKg       Unit = "kg"
	UnitG        Unit = "g"
	UnitLb       Unit = "lb"
	UnitL        Unit = "l"
	UnitMl       Unit = "ml"
	UnitPcs      Unit = "pcs"
	UnitBoxes    Unit = "boxes"
	UnitCans     Unit = "cans"
	UnitBags     Unit = "bags"
	UnitPortions Unit = "portions"
)

var units = []Unit{UnitKg, UnitG, UnitLb, UnitL, UnitMl, UnitPcs, UnitBoxes, UnitCans, UnitBags, UnitPortions}

func (u Unit) String() string {
	return string(u)
}

func (u Unit) Valid() bool {
	for _, known := range units {
		if u == known {
			return true
		}
	}
	return false
}
