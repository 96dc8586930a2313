package notification

import (
	"time"

	"github.com/google/uuid"
)

var columns = []string{"id", "user_id", "title", "message", "read", "related_to", "related_id", "created_at"}

type NotificationDB struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	Read      bool
	RelatedTo *string
	RelatedID *uuid.UUID
	CreatedAt time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner) (*NotificationDB, error) {
	var n NotificationDB
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Read, &n.RelatedTo, &n.RelatedID, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
