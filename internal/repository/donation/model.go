package donation

import (
	"time"

	"github.com/google/uuid"
)

// Columns порядок колонок, который ожидает Scan.
var Columns = []string{
	"id",
	"donor_id",
	"food_name",
	"description",
	"quantity",
	"unit",
	"expiry_date",
	"pickup_address",
	"dietary_info",
	"temperature_requirements",
	"additional_notes",
	"status",
	"reserved_by",
	"reserved_at",
	"created_at",
	"updated_at",
}

type DonationDB struct {
	ID                      uuid.UUID
	DonorID                 uuid.UUID
	FoodName                string
	Description             *string
	Quantity                float64
	Unit                    string
	ExpiryDate              time.Time
	PickupAddress           string
	DietaryInfo             *string
	TemperatureRequirements *string
	AdditionalNotes         *string
	Status                  string
	ReservedBy              *uuid.UUID
	ReservedAt              *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

type RowScanner interface {
	Scan(dest ...any) error
}

func Scan(row RowScanner) (*DonationDB, error) {
	var d DonationDB
	err := row.Scan(
		&d.ID,
		&d.DonorID,
		&d.FoodName,
		&d.Description,
		&d.Quantity,
		&d.Unit,
		&d.ExpiryDate,
		&d.PickupAddress,
		&d.DietaryInfo,
		&d.TemperatureRequirements,
		&d.AdditionalNotes,
		&d.Status,
		&d.ReservedBy,
		&d.ReservedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
