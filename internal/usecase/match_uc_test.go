package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"telegram-weather-notify/internal/domain"
	"telegram-weather-notify/internal/domain/model"
	"telegram-weather-notify/internal/tz"
)

func matchedIDs(profiles []*model.NotificationProfile) map[int64]bool {
	out := make(map[int64]bool, len(profiles))
	for _, p := range profiles {
		out[p.UserID] = true
	}
	return out
}

func TestMatcher_ExactMinute(t *testing.T) {
	m := NewMatcherUseCase(newMemDirectory(), newTestLogger())
	p := kyivProfile(1, 8, 0)

	// Kyiv is UTC+2 on this date.
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"exact minute", time.Date(2024, time.January, 15, 6, 0, 0, 0, time.UTC), true},
		{"one minute early", time.Date(2024, time.January, 15, 5, 59, 0, 0, time.UTC), false},
		{"one minute late", time.Date(2024, time.January, 15, 6, 1, 0, 0, time.UTC), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.MatchProfiles([]*model.NotificationProfile{p}, tc.at)
			if (len(got) == 1) != tc.want {
				t.Fatalf("at %s: matched=%v, want %v", tc.at, len(got) == 1, tc.want)
			}
		})
	}
}

func TestMatcher_DSTShiftsTheUTCInstant(t *testing.T) {
	m := NewMatcherUseCase(newMemDirectory(), newTestLogger())
	p := kyivProfile(1, 8, 0)

	// Same stored 08:00, but in July Kyiv is UTC+3: the matching UTC
	// instant moves an hour earlier with no profile change.
	summerHit := time.Date(2024, time.July, 15, 5, 0, 0, 0, time.UTC)
	if got := m.MatchProfiles([]*model.NotificationProfile{p}, summerHit); len(got) != 1 {
		t.Fatalf("expected match at %s under DST", summerHit)
	}
	winterInstant := time.Date(2024, time.July, 15, 6, 0, 0, 0, time.UTC)
	if got := m.MatchProfiles([]*model.NotificationProfile{p}, winterInstant); len(got) != 0 {
		t.Fatalf("expected no match at %s under DST", winterInstant)
	}
}

func TestMatcher_IneligibleProfilesNeverMatch(t *testing.T) {
	m := NewMatcherUseCase(newMemDirectory(), newTestLogger())

	disabled := kyivProfile(1, 8, 0)
	disabled.Enabled = false

	noCoords := kyivProfile(2, 8, 0)
	noCoords.CityLat = nil
	noCoords.CityLon = nil

	noTime := kyivProfile(3, 8, 0)
	noTime.NotifyAt = nil

	profiles := []*model.NotificationProfile{disabled, noCoords, noTime}
	for hour := 0; hour < 24; hour++ {
		at := time.Date(2024, time.January, 15, hour, 0, 0, 0, time.UTC)
		if got := m.MatchProfiles(profiles, at); len(got) != 0 {
			t.Fatalf("ineligible profile matched at %s", at)
		}
	}
}

func TestMatcher_DeterministicAndOrderIndependent(t *testing.T) {
	m := NewMatcherUseCase(newMemDirectory(), newTestLogger())
	at := time.Date(2024, time.January, 15, 6, 0, 0, 0, time.UTC)

	a := kyivProfile(1, 8, 0)
	b := kyivProfile(2, 8, 0) // same city, same time: both match, no dedup
	c := kyivProfile(3, 9, 30)

	forward := m.MatchProfiles([]*model.NotificationProfile{a, b, c}, at)
	reversed := m.MatchProfiles([]*model.NotificationProfile{c, b, a}, at)
	repeat := m.MatchProfiles([]*model.NotificationProfile{a, b, c}, at)

	want := map[int64]bool{1: true, 2: true}
	for _, got := range [][]*model.NotificationProfile{forward, reversed, repeat} {
		ids := matchedIDs(got)
		if len(ids) != len(want) {
			t.Fatalf("got %v, want %v", ids, want)
		}
		for id := range want {
			if !ids[id] {
				t.Fatalf("missing user %d in %v", id, ids)
			}
		}
	}
}

func TestMatcher_ConversionFailureFallsBackToUTC(t *testing.T) {
	m := NewMatcherUseCase(newMemDirectory(), newTestLogger())
	m.convert = func(zoneID string, atUTC time.Time) (tz.LocalTime, error) {
		return tz.LocalTime{}, domain.ErrUnknownTimezone
	}

	p := kyivProfile(1, 6, 0)
	// Kyiv local would be 08:00 here; with conversion broken the profile
	// must be judged against plain UTC, not dropped.
	at := time.Date(2024, time.January, 15, 6, 0, 0, 0, time.UTC)
	if got := m.MatchProfiles([]*model.NotificationProfile{p}, at); len(got) != 1 {
		t.Fatal("expected UTC fallback match")
	}
	off := time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)
	if got := m.MatchProfiles([]*model.NotificationProfile{p}, off); len(got) != 0 {
		t.Fatal("UTC fallback must still require exact minute equality")
	}
}

func TestMatcher_DirectoryFailureAbortsMatch(t *testing.T) {
	dir := newMemDirectory()
	dir.listErr = errors.New("connection refused")
	m := NewMatcherUseCase(dir, newTestLogger())

	_, err := m.MatchAt(context.Background(), time.Now().UTC())
	if !errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatalf("want ErrDirectoryUnavailable, got %v", err)
	}
}
