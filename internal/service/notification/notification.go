package notification

import (
	"context"
	"fmt"
	"strings"

	"foodshare/internal/entities"

	"github.com/google/uuid"
)

// Notification единственная точка создания уведомлений.
type Notification struct {
	repository Repository
}

func New(repository Repository) *Notification {
	return &Notification{
		repository: repository,
	}
}

func (n *Notification) Notify(ctx context.Context, create entities.NotificationCreate) (*entities.Notification, error) {
	create.Title = strings.TrimSpace(create.Title)
	create.Message = strings.TrimSpace(create.Message)

	if err := validateCreate(create); err != nil {
		return nil, err
	}

	created, err := n.repository.Create(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return created, nil
}

// MarkRead идемпотентен: повторный вызов для прочитанного уведомления не ошибка.
func (n *Notification) MarkRead(ctx context.Context, session entities.Session, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidNotification
	}

	if err := n.repository.MarkRead(ctx, id, session.UserID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (n *Notification) MarkAllRead(ctx context.Context, session entities.Session) (int64, error) {
	updated, err := n.repository.MarkAllRead(ctx, session.UserID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return updated, nil
}

func (n *Notification) List(
	ctx context.Context,
	session entities.Session,
	filter entities.NotificationFilter,
) ([]entities.Notification, error) {
	notifications, err := n.repository.List(ctx, session.UserID, normalizeFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (n *Notification) UnreadCount(ctx context.Context, session entities.Session) (int64, error) {
	count, err := n.repository.CountUnread(ctx, session.UserID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
