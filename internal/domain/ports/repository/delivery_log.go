package repository

import (
	"context"

	"telegram-weather-notify/internal/domain/model"
)

// -----------------------------
// Delivery log
// -----------------------------

type DeliveryLogRepository interface {
	// Save records one send attempt, successful or not.
	Save(ctx context.Context, rec *model.DeliveryRecord) error
	// ExistsForDay checks whether a successful delivery is already recorded
	// for the user on the given city-local date.
	ExistsForDay(ctx context.Context, userID int64, localDate string) (bool, error)
}
