package notification

import "foodshare/internal/entities"

func ToDomain(n *NotificationDB) *entities.Notification {
	if n == nil {
		return nil
	}

	notification := &entities.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		RelatedID: n.RelatedID,
		CreatedAt: n.CreatedAt,
	}
	if n.RelatedTo != nil {
		kind := entities.RelatedKind(*n.RelatedTo)
		notification.RelatedTo = &kind
	}
	return notification
}

func relatedToDB(kind *entities.RelatedKind) *string {
	if kind == nil {
		return nil
	}
	s := kind.String()
	return &s
}
