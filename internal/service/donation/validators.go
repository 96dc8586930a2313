package donation

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"foodshare/internal/entities"
)

const (
	minFoodNameLength = 2
	maxFoodNameLength = 200
	minAddressLength  = 5
	maxAddressLength  = 500
	maxOptionalLength = 2000

	defaultListLimit = 50
	maxListLimit     = 200
)

func validateCreate(create entities.DonationCreate, now time.Time) error {
	if !lengthBetween(create.FoodName, minFoodNameLength, maxFoodNameLength) {
		return ErrInvalidFoodName
	}
	if create.Quantity <= 0 || math.IsNaN(create.Quantity) || math.IsInf(create.Quantity, 0) {
		return ErrInvalidQuantity
	}
	if !create.Unit.Valid() {
		return ErrInvalidUnit
	}
	// срок годности задается датой: сегодняшняя дата допустима
	today := now.UTC().Truncate(24 * time.Hour)
	if create.ExpiryDate.IsZero() || create.ExpiryDate.UTC().Before(today) {
		return ErrInvalidExpiryDate
	}
	if !lengthBetween(create.PickupAddress, minAddressLength, maxAddressLength) {
		return ErrInvalidAddress
	}
	for _, optional := range []*string{
		create.Description,
		create.DietaryInfo,
		create.TemperatureRequirements,
		create.AdditionalNotes,
	} {
		if optional != nil && utf8.RuneCountInString(*optional) > maxOptionalLength {
			return ErrInvalidOptionalTxt
		}
	}
	return nil
}

func lengthBetween(s string, minLen, maxLen int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= minLen && n <= maxLen
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeFilter(filter entities.DonationFilter) entities.DonationFilter {
	if filter.Limit == 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return filter
}
