package converters

import (
	"foodshare/internal/entities"
	"foodshare/internal/generated/dto"
)

func Donation(d entities.Donation) dto.Donation {
	return dto.Donation{
		ID:                      d.ID,
		DonorID:                 d.DonorID,
		FoodName:                d.FoodName,
		Quantity:                d.Quantity,
		Unit:                    d.Unit.String(),
		ExpiryDate:              d.ExpiryDate,
		PickupAddress:           d.PickupAddress,
		Description:             d.Description,
		DietaryInfo:             d.DietaryInfo,
		TemperatureRequirements: d.TemperatureRequirements,
		AdditionalNotes:         d.AdditionalNotes,
		Status:                  d.Status.String(),
		ReservedBy:              d.ReservedBy,
		ReservedAt:              d.ReservedAt,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
}

func Donations(donations []entities.Donation) []dto.Donation {
	out := make([]dto.Donation, 0, len(donations))
	for _, d := range donations {
		out = append(out, Donation(d))
	}
	return out
}

func DonationCreate(session entities.Session, in dto.DonationCreate) entities.DonationCreate {
	return entities.DonationCreate{
		DonorID:                 session.UserID,
		FoodName:                in.FoodName,
		Quantity:                in.Quantity,
		Unit:                    entities.Unit(in.Unit),
		ExpiryDate:              in.ExpiryDate,
		PickupAddress:           in.PickupAddress,
		Description:             in.Description,
		DietaryInfo:             in.DietaryInfo,
		TemperatureRequirements: in.TemperatureRequirements,
		AdditionalNotes:         in.AdditionalNotes,
	}
}

func DonationStats(stats entities.DonationStats) dto.DonationStats {
	out := dto.DonationStats{
		Available: stats[entities.DonationAvailable],
		Pending:   stats[entities.DonationPending],
		InTransit: stats[entities.DonationInTransit],
		Completed: stats[entities.DonationCompleted],
		Cancelled: stats[entities.DonationCancelled],
	}
	out.Total = out.Available + out.Pending + out.InTransit + out.Completed + out.Cancelled
	return out
}

func Delivery(d entities.Delivery) dto.Delivery {
	return dto.Delivery{
		ID:           d.ID,
		DonationID:   d.DonationID,
		VolunteerID:  d.VolunteerID,
		NgoID:        d.NgoID,
		Status:       d.Status.String(),
		PickupTime:   d.PickupTime,
		DeliveryTime: d.DeliveryTime,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func Deliveries(deliveries []entities.Delivery) []dto.Delivery {
	out := make([]dto.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, Delivery(d))
	}
	return out
}

func Notification(n entities.Notification) dto.Notification {
	var relatedTo *string
	if n.RelatedTo != nil {
		kind := n.RelatedTo.String()
		relatedTo = &kind
	}

	return dto.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		RelatedTo: relatedTo,
		RelatedID: n.RelatedID,
		CreatedAt: n.CreatedAt,
	}
}

func Notifications(notifications []entities.Notification) []dto.Notification {
	out := make([]dto.Notification, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, Notification(n))
	}
	return out
}
