package donation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodshare/internal/entities"
	"foodshare/internal/repository"
	"foodshare/internal/service/donation"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "donations"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, create entities.DonationCreate) (*entities.Donation, error) {
	query, args, err := qb.
		Insert(table).
		Columns(
			"donor_id",
			"food_name",
			"description",
			"quantity",
			"unit",
			"expiry_date",
			"pickup_address",
			"dietary_info",
			"temperature_requirements",
			"additional_notes",
			"status",
		).
		Values(
			create.DonorID,
			create.FoodName,
			create.Description,
			create.Quantity,
			create.Unit.String(),
			create.ExpiryDate,
			create.PickupAddress,
			create.DietaryInfo,
			create.TemperatureRequirements,
			create.AdditionalNotes,
			entities.DonationAvailable.String(),
		).
		Suffix("RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected donation repository build create query error: %w", err)
	}

	donationDB, err := Scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("%w: %w", donation.ErrInvalidDonation, err)
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, donation.ErrDonorNotFound
		}
		return nil, fmt.Errorf("unexpected donation repository create error: %w", err)
	}

	return ToDomain(donationDB)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Donation, error) {
	query, args, err := qb.
		Select(Columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected donation repository build get query error: %w", err)
	}

	donationDB, err := Scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, donation.ErrDonationNotFound
		}
		return nil, fmt.Errorf("unexpected donation repository get error: %w", err)
	}

	return ToDomain(donationDB)
}

func (r *Repository) ListAvailable(ctx context.Context, filter entities.DonationFilter) ([]entities.Donation, error) {
	builder := qb.
		Select(Columns...).
		From(table).
		Where(sq.Eq{"status": entities.DonationAvailable.String()})

	// опциональный фильтр
	if filter.Unit != nil {
		builder = builder.Where(sq.Eq{"unit": filter.Unit.String()})
	}

	query, args, err := builder.
		OrderBy("created_at DESC", "id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected donation repository build list query error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected donation repository list available error: %w", err)
	}

	return CollectDomain(rows)
}

func (r *Repository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]entities.Donation, error) {
	query, args, err := qb.
		Select(Columns...).
		From(table).
		Where(sq.Eq{"donor_id": donorID}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected donation repository build list query error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected donation repository list by donor error: %w", err)
	}

	return CollectDomain(rows)
}

func (r *Repository) CountByStatus(ctx context.Context) (entities.DonationStats, error) {
	query := `
		SELECT status, COUNT(*)
		FROM donations
		GROUP BY status
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected donation repository count by status error: %w", err)
	}
	defer rows.Close()

	stats := make(entities.DonationStats)
	for rows.Next() {
		var (
			literal string
			count   int64
		)
		if err := rows.Scan(&literal, &count); err != nil {
			return nil, fmt.Errorf("scan donation status count: %w", err)
		}

		status, err := entities.ParseDonationStatus(literal)
		if err != nil {
			return nil, err
		}
		// pending и reserved складываются
		stats[status] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donation status counts: %w", err)
	}

	return stats, nil
}

func (r *Repository) DeleteAvailable(ctx context.Context, id uuid.UUID, donorID uuid.UUID) (bool, error) {
	query, args, err := qb.
		Delete(table).
		Where(sq.Eq{
			"id":       id,
			"donor_id": donorID,
			"status":   entities.DonationAvailable.String(),
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("unexpected donation repository build delete query error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("unexpected donation repository delete error: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *Repository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE donations
		SET status = $1,
		    updated_at = NOW()
		WHERE status = $2
		  AND expiry_date < date_trunc('day', $3::timestamptz AT TIME ZONE 'UTC') AT TIME ZONE 'UTC'
	`

	result, err := r.querier.Exec(
		ctx,
		query,
		entities.DonationCancelled.String(),
		entities.DonationAvailable.String(),
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("unexpected donation repository expire stale error: %w", err)
	}

	return result.RowsAffected(), nil
}

func returning() string {
	return strings.Join(Columns, ", ")
}
