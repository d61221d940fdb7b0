package model

import (
	"fmt"

	"telegram-weather-notify/internal/domain"
)

// TimeOfDay is a civil wall-clock time (no date, no zone). A user's
// notification time is interpreted in their city's local timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, domain.ErrInvalidArgument
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// NotificationProfile is a read-only snapshot of one user's notification
// settings, fetched fresh from the directory on every tick. The scheduler
// never mutates it.
type NotificationProfile struct {
	UserID   int64
	CityName string
	CityLat  *float64
	CityLon  *float64
	NotifyAt *TimeOfDay
	Enabled  bool
	Language string
}

// Eligible reports whether the profile can take part in matching at all:
// notifications on, both coordinates present, notification time set.
// Ineligible profiles are skipped silently, they are not an error.
func (p *NotificationProfile) Eligible() bool {
	if p == nil || !p.Enabled {
		return false
	}
	if p.CityLat == nil || p.CityLon == nil {
		return false
	}
	return p.NotifyAt != nil
}
