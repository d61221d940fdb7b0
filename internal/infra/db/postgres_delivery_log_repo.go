package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-weather-notify/internal/domain"
	"telegram-weather-notify/internal/domain/model"
	"telegram-weather-notify/internal/domain/ports/repository"
)

var _ repository.DeliveryLogRepository = (*deliveryLogRepo)(nil)

// deliveryLogRepo persists one audit row per send attempt:
//
//	notification_deliveries(id text PK, user_id bigint, local_date date,
//	      status text, error text, sent_at timestamptz)
//
// with a partial unique index on (user_id, local_date) WHERE status = 'sent'.
type deliveryLogRepo struct {
	pool *pgxpool.Pool
}

func NewDeliveryLogRepo(pool *pgxpool.Pool) repository.DeliveryLogRepository {
	return &deliveryLogRepo{pool: pool}
}

func (r *deliveryLogRepo) Save(ctx context.Context, rec *model.DeliveryRecord) error {
	const q = `
INSERT INTO notification_deliveries (id, user_id, local_date, status, error, sent_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	// The partial unique index is the real duplicate guard; a second 'sent'
	// row for the same local day surfaces here as a unique violation.
	_, err := r.pool.Exec(ctx, q, rec.ID, rec.UserID, rec.LocalDate, rec.Status, rec.Error, rec.SentAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyDelivered
		}
		return fmt.Errorf("postgres: saving delivery record: %w", err)
	}
	return nil
}

func (r *deliveryLogRepo) ExistsForDay(ctx context.Context, userID int64, localDate string) (bool, error) {
	const q = `
SELECT EXISTS(
    SELECT 1 FROM notification_deliveries
    WHERE user_id = $1 AND local_date = $2 AND status = 'sent'
)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, userID, localDate).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("postgres: checking delivery: %w", err)
	}
	return exists, nil
}
