package delivery

import (
	"fmt"

	"foodshare/internal/entities"
)

func ToDomain(d *DeliveryDB) (*entities.Delivery, error) {
	if d == nil {
		return nil, nil
	}

	status, err := entities.ParseDeliveryStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("delivery %s: %w", d.ID, err)
	}

	return &entities.Delivery{
		ID:           d.ID,
		DonationID:   d.DonationID,
		VolunteerID:  d.VolunteerID,
		NgoID:        d.NgoID,
		Status:       status,
		PickupTime:   d.PickupTime,
		DeliveryTime: d.DeliveryTime,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func statusLiterals(statuses []entities.DeliveryStatus) []string {
	literals := make([]string, 0, len(statuses))
	for _, s := range statuses {
		literals = append(literals, s.String())
	}
	return literals
}

// donationLiterals раскрывает pending в оба написания из таблицы donations.
func donationLiterals(status entities.DonationStatus) []string {
	if status == entities.DonationPending {
		return entities.PendingLiterals()
	}
	return []string{status.String()}
}
