package model

import (
	"errors"
	"testing"

	"telegram-weather-notify/internal/domain"
)

func f64(v float64) *float64 { return &v }

func TestNewTimeOfDay(t *testing.T) {
	if _, err := NewTimeOfDay(23, 59); err != nil {
		t.Fatalf("valid time rejected: %v", err)
	}
	for _, bad := range [][2]int{{24, 0}, {-1, 0}, {0, 60}, {0, -1}} {
		if _, err := NewTimeOfDay(bad[0], bad[1]); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument for %v, got %v", bad, err)
		}
	}
	at, _ := NewTimeOfDay(7, 5)
	if at.String() != "07:05" {
		t.Fatalf("want 07:05, got %s", at.String())
	}
}

func TestProfileEligible(t *testing.T) {
	at, _ := NewTimeOfDay(8, 0)
	base := func() *NotificationProfile {
		return &NotificationProfile{
			UserID:   1,
			CityLat:  f64(50.45),
			CityLon:  f64(30.52),
			NotifyAt: &at,
			Enabled:  true,
		}
	}

	if !base().Eligible() {
		t.Fatal("complete profile must be eligible")
	}

	tests := []struct {
		name   string
		mutate func(p *NotificationProfile)
	}{
		{"disabled", func(p *NotificationProfile) { p.Enabled = false }},
		{"no latitude", func(p *NotificationProfile) { p.CityLat = nil }},
		{"no longitude", func(p *NotificationProfile) { p.CityLon = nil }},
		{"no time", func(p *NotificationProfile) { p.NotifyAt = nil }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := base()
			tc.mutate(p)
			if p.Eligible() {
				t.Fatal("expected ineligible")
			}
		})
	}

	var nilProfile *NotificationProfile
	if nilProfile.Eligible() {
		t.Fatal("nil profile must be ineligible")
	}
}
