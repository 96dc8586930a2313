package donation

import (
	"fmt"

	"foodshare/internal/entities"

	"github.com/jackc/pgx/v5"
)

func ToDomain(d *DonationDB) (*entities.Donation, error) {
	if d == nil {
		return nil, nil
	}

	status, err := entities.ParseDonationStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("donation %s: %w", d.ID, err)
	}

	return &entities.Donation{
		ID:                      d.ID,
		DonorID:                 d.DonorID,
		FoodName:                d.FoodName,
		Quantity:                d.Quantity,
		Unit:                    entities.Unit(d.Unit),
		ExpiryDate:              d.ExpiryDate,
		PickupAddress:           d.PickupAddress,
		Description:             d.Description,
		DietaryInfo:             d.DietaryInfo,
		TemperatureRequirements: d.TemperatureRequirements,
		AdditionalNotes:         d.AdditionalNotes,
		Status:                  status,
		ReservedBy:              d.ReservedBy,
		ReservedAt:              d.ReservedAt,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}, nil
}

// CollectDomain вычитывает все строки и закрывает rows.
func CollectDomain(rows pgx.Rows) ([]entities.Donation, error) {
	defer rows.Close()

	donations := make([]entities.Donation, 0)
	for rows.Next() {
		donationDB, err := Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		donation, err := ToDomain(donationDB)
		if err != nil {
			return nil, err
		}
		donations = append(donations, *donation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return donations, nil
}
