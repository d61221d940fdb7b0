package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-notify/internal/domain"
	"telegram-weather-notify/internal/domain/model"
	"telegram-weather-notify/internal/domain/ports/repository"
	"telegram-weather-notify/internal/tz"
)

// Compile-time check
var _ MatcherUseCase = (*matcherUC)(nil)

type MatcherUseCase interface {
	// MatchAt pulls a fresh snapshot from the directory and returns the
	// profiles whose city-local wall time equals their notification time.
	MatchAt(ctx context.Context, atUTC time.Time) ([]*model.NotificationProfile, error)
	// MatchProfiles runs the same matching over an already-fetched snapshot.
	MatchProfiles(profiles []*model.NotificationProfile, atUTC time.Time) []*model.NotificationProfile
}

type matcherUC struct {
	dir repository.UserDirectory
	log *zerolog.Logger

	// convert is tz.ToLocal in production; a seam for failure-path tests.
	convert func(zoneID string, atUTC time.Time) (tz.LocalTime, error)
}

func NewMatcherUseCase(dir repository.UserDirectory, logger *zerolog.Logger) *matcherUC {
	compLog := logger.With().Str("component", "Matcher").Logger()
	return &matcherUC{dir: dir, log: &compLog, convert: tz.ToLocal}
}

func (m *matcherUC) MatchAt(ctx context.Context, atUTC time.Time) ([]*model.NotificationProfile, error) {
	profiles, err := m.dir.ListEligibleForNotification(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", domain.ErrDirectoryUnavailable)
	}
	return m.MatchProfiles(profiles, atUTC), nil
}

// MatchProfiles is O(profiles) per call and deterministic: membership depends
// only on each profile and the instant, never on snapshot order.
func (m *matcherUC) MatchProfiles(profiles []*model.NotificationProfile, atUTC time.Time) []*model.NotificationProfile {
	atUTC = atUTC.UTC()
	var matched []*model.NotificationProfile
	for _, p := range profiles {
		if !p.Eligible() {
			continue
		}
		hour, minute := m.localWallTime(p, atUTC)
		if hour == p.NotifyAt.Hour && minute == p.NotifyAt.Minute {
			matched = append(matched, p)
		}
	}
	return matched
}

// localWallTime resolves the profile's city zone and converts the instant.
// When the zone cannot be loaded it compares against plain UTC instead, so a
// resolver failure degrades to a shifted notification, not a missing one.
func (m *matcherUC) localWallTime(p *model.NotificationProfile, atUTC time.Time) (int, int) {
	zone := tz.Resolve(*p.CityLat, *p.CityLon)
	lt, err := m.convert(zone, atUTC)
	if err != nil {
		m.log.Warn().Err(err).
			Int64("user_id", p.UserID).
			Str("zone", zone).
			Msg("local time conversion failed, comparing against UTC")
		return atUTC.Hour(), atUTC.Minute()
	}
	return lt.Hour, lt.Minute
}
