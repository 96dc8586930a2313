package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodshare/internal/entities"
	"foodshare/internal/repository"
	donationrepo "foodshare/internal/repository/donation"
	"foodshare/internal/service/delivery"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "deliveries"

// in_progress не трогаем: пожертвование уже у волонтера
var cancellableOrphans = []entities.DeliveryStatus{entities.DeliveryPending, entities.DeliveryAssigned}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create заводит pending доставку, только пока пожертвование зарезервировано
// этой НКО. Иначе ErrDonationNotReserved.
func (r *Repository) Create(ctx context.Context, donationID uuid.UUID, ngoID uuid.UUID) (*entities.Delivery, error) {
	reserved := sq.
		Select("id", "reserved_by").
		Column(sq.Expr("?::text", entities.DeliveryPending.String())).
		From("donations").
		Where(sq.Eq{
			"id":          donationID,
			"status":      entities.PendingLiterals(),
			"reserved_by": ngoID,
		})

	query, args, err := qb.
		Insert(table).
		Columns("donation_id", "ngo_id", "status").
		Select(reserved).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository build create query error: %w", err)
	}

	deliveryDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDonationNotReserved
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, delivery.ErrDeliveryAlreadyExists
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	return ToDomain(deliveryDB)
}

// CancelOrphaned снимает pending и assigned доставки, чье пожертвование
// больше не зарезервировано их НКО. uuid.Nil проходит по всем пожертвованиям.
func (r *Repository) CancelOrphaned(ctx context.Context, donationID uuid.UUID) (int64, error) {
	builder := qb.
		Update(table+" AS d").
		Set("status", entities.DeliveryCancelled.String()).
		Set("updated_at", sq.Expr("NOW()")).
		From("donations AS dn").
		Where("d.donation_id = dn.id").
		Where(sq.Eq{"d.status": statusLiterals(cancellableOrphans)}).
		Where(sq.Or{
			sq.NotEq{"dn.status": entities.PendingLiterals()},
			sq.Expr("dn.reserved_by IS DISTINCT FROM d.ngo_id"),
		})

	if donationID != uuid.Nil {
		builder = builder.Where(sq.Eq{"d.donation_id": donationID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected delivery repository build cancel orphaned query error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("unexpected delivery repository cancel orphaned error: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Delivery, error) {
	return r.get(ctx, qb.Select(columns...).From(table).Where(sq.Eq{"id": id}))
}

// GetByIDForUpdate блокирует строку до конца транзакции из контекста.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Delivery, error) {
	return r.get(ctx, qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *Repository) get(ctx context.Context, builder sq.SelectBuilder) (*entities.Delivery, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository build get query error: %w", err)
	}

	deliveryDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository get error: %w", err)
	}

	return ToDomain(deliveryDB)
}

func (r *Repository) ListByStatus(ctx context.Context, status entities.DeliveryStatus) ([]entities.Delivery, error) {
	return r.list(ctx, qb.
		Select(columns...).
		From(table).
		Where(sq.Eq{"status": status.String()}).
		OrderBy("created_at", "id"))
}

func (r *Repository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]entities.Delivery, error) {
	return r.list(ctx, qb.
		Select(columns...).
		From(table).
		Where(sq.Eq{"volunteer_id": volunteerID}).
		OrderBy("created_at DESC", "id"))
}

func (r *Repository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Delivery, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository build list query error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	defer rows.Close()

	deliveries := make([]entities.Delivery, 0)
	for rows.Next() {
		deliveryDB, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d, err := ToDomain(deliveryDB)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}

	return deliveries, nil
}

func (r *Repository) Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (bool, error) {
	return r.exec(ctx, "claim", qb.
		Update(table).
		Set("status", entities.DeliveryAssigned.String()).
		Set("volunteer_id", volunteerID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":           id,
			"status":       entities.DeliveryPending.String(),
			"volunteer_id": nil,
		}))
}

func (r *Repository) StartPickup(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (bool, error) {
	return r.exec(ctx, "start pickup", qb.
		Update(table).
		Set("status", entities.DeliveryInProgress.String()).
		Set("pickup_time", sq.Expr("NOW()")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":           id,
			"status":       entities.DeliveryAssigned.String(),
			"volunteer_id": volunteerID,
		}))
}

func (r *Repository) Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (bool, error) {
	return r.exec(ctx, "complete", qb.
		Update(table).
		Set("status", entities.DeliveryCompleted.String()).
		// часы базы могли уйти назад относительно pickup_time
		Set("delivery_time", sq.Expr("GREATEST(NOW(), pickup_time)")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":           id,
			"status":       entities.DeliveryInProgress.String(),
			"volunteer_id": volunteerID,
		}))
}

func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, from entities.DeliveryStatus) (bool, error) {
	return r.exec(ctx, "cancel", qb.
		Update(table).
		Set("status", entities.DeliveryCancelled.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     id,
			"status": from.String(),
		}))
}

func (r *Repository) CancelByDonation(ctx context.Context, donationID uuid.UUID, from []entities.DeliveryStatus) (int64, error) {
	query, args, err := qb.
		Update(table).
		Set("status", entities.DeliveryCancelled.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"donation_id": donationID,
			"status":      statusLiterals(from),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected delivery repository build cancel by donation query error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("unexpected delivery repository cancel by donation error: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *Repository) GetDonation(ctx context.Context, donationID uuid.UUID) (*entities.Donation, error) {
	query, args, err := qb.
		Select(donationrepo.Columns...).
		From("donations").
		Where(sq.Eq{"id": donationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository build get donation query error: %w", err)
	}

	donationDB, err := donationrepo.Scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDonationNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository get donation error: %w", err)
	}

	return donationrepo.ToDomain(donationDB)
}

// ListAwaitingDelivery зарезервированные с since пожертвования без активной
// доставки, по возрастанию reserved_at.
func (r *Repository) ListAwaitingDelivery(ctx context.Context, since time.Time, limit uint64) ([]entities.Donation, error) {
	query, args, err := qb.
		Select(donationrepo.Columns...).
		From("donations").
		Where(sq.Eq{"status": entities.PendingLiterals()}).
		Where(sq.GtOrEq{"reserved_at": since}).
		Where(sq.Expr(
			"NOT EXISTS (SELECT 1 FROM deliveries d WHERE d.donation_id = donations.id AND d.status IN (?, ?, ?))",
			entities.DeliveryPending.String(),
			entities.DeliveryAssigned.String(),
			entities.DeliveryInProgress.String(),
		)).
		OrderBy("reserved_at", "id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository build list awaiting query error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list awaiting error: %w", err)
	}

	return donationrepo.CollectDomain(rows)
}

// AdvanceDonation двигает статус пожертвования, только если он равен from.
// Резерв при этом не трогается, кроме возврата в available.
func (r *Repository) AdvanceDonation(
	ctx context.Context,
	donationID uuid.UUID,
	from entities.DonationStatus,
	to entities.DonationStatus,
) (bool, error) {
	builder := qb.
		Update("donations").
		Set("status", to.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     donationID,
			"status": donationLiterals(from),
		})

	if to == entities.DonationAvailable {
		builder = builder.Set("reserved_by", nil).Set("reserved_at", nil)
	}

	return r.exec(ctx, "advance donation", builder)
}

func (r *Repository) exec(ctx context.Context, op string, builder sq.UpdateBuilder) (bool, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("unexpected delivery repository build %s query error: %w", op, err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("unexpected delivery repository %s error: %w", op, err)
	}

	return result.RowsAffected() == 1, nil
}
