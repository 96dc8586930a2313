package notification

import (
	"context"
	"fmt"
	"strings"

	"foodshare/internal/entities"
	"foodshare/internal/repository"
	"foodshare/internal/service/notification"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "notifications"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, create entities.NotificationCreate) (*entities.Notification, error) {
	query, args, err := qb.
		Insert(table).
		Columns("user_id", "title", "message", "related_to", "related_id").
		Values(create.UserID, create.Title, create.Message, relatedToDB(create.RelatedTo), create.RelatedID).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected notification repository build create query error: %w", err)
	}

	notificationDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, notification.ErrInvalidRecipient
		}
		return nil, fmt.Errorf("unexpected notification repository create error: %w", err)
	}

	return ToDomain(notificationDB), nil
}

// MarkRead идемпотентна: повторная отметка не ошибка, чужое уведомление не найдено.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.querier.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("unexpected notification repository mark read error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

func (r *Repository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE user_id = $1 AND NOT read
	`

	result, err := r.querier.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("unexpected notification repository mark all read error: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID, filter entities.NotificationFilter) ([]entities.Notification, error) {
	builder := qb.
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID})

	if filter.UnreadOnly {
		builder = builder.Where(sq.Eq{"read": false})
	}

	query, args, err := builder.
		OrderBy("created_at DESC", "id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected notification repository build list query error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected notification repository list error: %w", err)
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0)
	for rows.Next() {
		notificationDB, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, *ToDomain(notificationDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return notifications, nil
}

func (r *Repository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1 AND NOT read
	`

	var count int64
	if err := r.querier.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("unexpected notification repository count unread error: %w", err)
	}

	return count, nil
}
