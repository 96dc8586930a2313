package notification

import (
	"strings"
	"unicode/utf8"

	"foodshare/internal/entities"

	"github.com/google/uuid"
)

const (
	maxTitleLength   = 200
	maxMessageLength = 2000

	defaultListLimit = 50
	maxListLimit     = 100
)

func validateCreate(create entities.NotificationCreate) error {
	if create.UserID == uuid.Nil {
		return ErrInvalidRecipient
	}
	if !isValidText(create.Title, maxTitleLength) {
		return ErrInvalidTitle
	}
	if !isValidText(create.Message, maxMessageLength) {
		return ErrInvalidMessage
	}
	if create.RelatedTo != nil && !create.RelatedTo.Valid() {
		return ErrInvalidRelation
	}
	// ссылка без типа бессмысленна
	if create.RelatedID != nil && create.RelatedTo == nil {
		return ErrInvalidRelation
	}
	return nil
}

func isValidText(s string, maxLen int) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed != "" && utf8.RuneCountInString(trimmed) <= maxLen
}

func normalizeFilter(filter entities.NotificationFilter) entities.NotificationFilter {
	if filter.Limit == 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return filter
}
