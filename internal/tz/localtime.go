package tz

import (
	"fmt"
	"time"

	"telegram-weather-notify/internal/domain"
)

// LocalTime is a civil wall-clock instant in some resolved timezone.
type LocalTime struct {
	Hour   int
	Minute int
	Year   int
	Month  time.Month
	Day    int
}

// DateString returns the civil date as YYYY-MM-DD.
func (lt LocalTime) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", lt.Year, lt.Month, lt.Day)
}

// ToLocal converts a UTC instant to civil time in the given zone using the
// IANA database (DST-aware). An unknown zone id yields ErrUnknownTimezone;
// callers fall back to UTC comparison instead of dropping the user.
func ToLocal(zoneID string, atUTC time.Time) (LocalTime, error) {
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return LocalTime{}, fmt.Errorf("load location %q: %w", zoneID, domain.ErrUnknownTimezone)
	}
	local := atUTC.In(loc)
	return LocalTime{
		Hour:   local.Hour(),
		Minute: local.Minute(),
		Year:   local.Year(),
		Month:  local.Month(),
		Day:    local.Day(),
	}, nil
}

// LocalDateAt resolves coordinates and returns the city-local civil date for
// the instant, falling back to the UTC date when the zone cannot be loaded.
func LocalDateAt(lat, lon float64, atUTC time.Time) string {
	lt, err := ToLocal(Resolve(lat, lon), atUTC)
	if err != nil {
		u := atUTC.UTC()
		return fmt.Sprintf("%04d-%02d-%02d", u.Year(), u.Month(), u.Day())
	}
	return lt.DateString()
}
