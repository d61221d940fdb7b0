package repository

import (
	"context"

	"telegram-weather-notify/internal/domain/model"
)

// -----------------------------
// User directory
// -----------------------------

// UserDirectory is the external store of notification profiles. An
// implementation may pre-filter server-side or return everything; the
// matcher re-checks eligibility either way.
type UserDirectory interface {
	ListEligibleForNotification(ctx context.Context) ([]*model.NotificationProfile, error)
	FindByUserID(ctx context.Context, userID int64) (*model.NotificationProfile, error)
}
