package repository

import "context"

// -----------------------------
// Daily sent marker
// -----------------------------

// SentMarkerRepository remembers that a user was already notified on a given
// city-local date, so overlapping ticks and process restarts cannot deliver
// twice. Markers expire on their own; the store is advisory.
type SentMarkerRepository interface {
	// MarkIfFirst atomically records the (user, local date) pair and reports
	// whether this call was the first one to do so.
	MarkIfFirst(ctx context.Context, userID int64, localDate string) (bool, error)
	// Clear removes the marker, used when a send fails after marking.
	Clear(ctx context.Context, userID int64, localDate string) error
}
