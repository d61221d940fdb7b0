package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-weather-notify/internal/domain"
	"telegram-weather-notify/internal/domain/model"
	"telegram-weather-notify/internal/domain/ports/repository"
)

var _ repository.UserDirectory = (*profileRepo)(nil)

// profileRepo reads notification profiles from the users table:
//
//	users(user_id bigint PK, city_name text, city_lat double precision,
//	      city_lon double precision, notify_at time, notifications_enabled bool,
//	      language text)
type profileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) repository.UserDirectory {
	return &profileRepo{pool: pool}
}

// ListEligibleForNotification pre-filters server-side; the matcher re-checks
// the invariant on whatever comes back.
func (r *profileRepo) ListEligibleForNotification(ctx context.Context) ([]*model.NotificationProfile, error) {
	const q = `
SELECT user_id, city_name, city_lat, city_lon, to_char(notify_at, 'HH24:MI'), notifications_enabled, language
  FROM users
 WHERE notifications_enabled
   AND city_lat IS NOT NULL
   AND city_lon IS NOT NULL
   AND notify_at IS NOT NULL`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.NotificationProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepo) FindByUserID(ctx context.Context, userID int64) (*model.NotificationProfile, error) {
	const q = `
SELECT user_id, city_name, city_lat, city_lon, to_char(notify_at, 'HH24:MI'), notifications_enabled, language
  FROM users
 WHERE user_id = $1`

	row := r.pool.QueryRow(ctx, q, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: querying profile: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*model.NotificationProfile, error) {
	var (
		p        model.NotificationProfile
		cityName *string
		notifyAt *string
		language *string
	)
	if err := row.Scan(&p.UserID, &cityName, &p.CityLat, &p.CityLon, &notifyAt, &p.Enabled, &language); err != nil {
		return nil, err
	}
	if cityName != nil {
		p.CityName = *cityName
	}
	if language != nil {
		p.Language = *language
	}
	if notifyAt != nil {
		var hour, minute int
		if _, err := fmt.Sscanf(*notifyAt, "%d:%d", &hour, &minute); err != nil {
			return nil, fmt.Errorf("bad notify_at %q: %w", *notifyAt, err)
		}
		t, err := model.NewTimeOfDay(hour, minute)
		if err != nil {
			return nil, fmt.Errorf("bad notify_at %q: %w", *notifyAt, err)
		}
		p.NotifyAt = &t
	}
	return &p, nil
}
