package reservation

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/entities"
	"foodshare/internal/repository"
	donationrepo "foodshare/internal/repository/donation"
	"foodshare/internal/service/reservation"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Donation, error) {
	query, args, err := qb.
		Select(donationrepo.Columns...).
		From("donations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected reservation repository build get query error: %w", err)
	}

	donationDB, err := donationrepo.Scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reservation.ErrDonationNotFound
		}
		return nil, fmt.Errorf("unexpected reservation repository get error: %w", err)
	}

	return donationrepo.ToDomain(donationDB)
}

// ReserveViaRoutine вызывает хранимую процедуру reserve_donation.
func (r *Repository) ReserveViaRoutine(ctx context.Context, donationID uuid.UUID, ngoID uuid.UUID) (bool, error) {
	query := `SELECT reserve_donation($1, $2)`

	var reserved bool
	err := r.querier.QueryRow(ctx, query, donationID, ngoID).Scan(&reserved)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUndefinedFunction) {
			return false, fmt.Errorf("%w: %w", reservation.ErrRoutineUnavailable, err)
		}
		return false, fmt.Errorf("unexpected reservation repository routine error: %w", err)
	}

	return reserved, nil
}

// ReserveConditional пишет резерв только если строка еще available.
// statusLiteral пишется в колонку как есть.
func (r *Repository) ReserveConditional(ctx context.Context, donationID uuid.UUID, ngoID uuid.UUID, statusLiteral string) (bool, error) {
	query := `
		UPDATE donations
		SET status = $1,
		    reserved_by = $2,
		    reserved_at = NOW(),
		    updated_at = NOW()
		WHERE id = $3
		  AND status = $4
	`

	result, err := r.querier.Exec(ctx, query, statusLiteral, ngoID, donationID, entities.DonationAvailable.String())
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) ||
			repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextValue) {
			return false, fmt.Errorf("%w: %q: %w", reservation.ErrStatusLiteralRejected, statusLiteral, err)
		}
		return false, fmt.Errorf("unexpected reservation repository conditional update error: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *Repository) CancelReservation(ctx context.Context, donationID uuid.UUID, ngoID uuid.UUID) (bool, error) {
	query, args, err := qb.
		Update("donations").
		Set("status", entities.DonationAvailable.String()).
		Set("reserved_by", nil).
		Set("reserved_at", nil).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":          donationID,
			"reserved_by": ngoID,
			"status":      entities.PendingLiterals(),
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("unexpected reservation repository build cancel query error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("unexpected reservation repository cancel error: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *Repository) ListReservedBy(ctx context.Context, ngoID uuid.UUID) ([]entities.Donation, error) {
	statuses := append(entities.PendingLiterals(), entities.DonationInTransit.String())

	query, args, err := qb.
		Select(donationrepo.Columns...).
		From("donations").
		Where(sq.Eq{
			"reserved_by": ngoID,
			"status":      statuses,
		}).
		OrderBy("reserved_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected reservation repository build list query error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected reservation repository list error: %w", err)
	}

	return donationrepo.CollectDomain(rows)
}
