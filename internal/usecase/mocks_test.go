package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-notify/internal/domain"
	"telegram-weather-notify/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func f64(v float64) *float64 { return &v }

// kyivProfile builds an eligible profile located in Kyiv with the given
// notification time.
func kyivProfile(userID int64, hour, minute int) *model.NotificationProfile {
	at, _ := model.NewTimeOfDay(hour, minute)
	return &model.NotificationProfile{
		UserID:   userID,
		CityName: "Kyiv",
		CityLat:  f64(50.45),
		CityLon:  f64(30.52),
		NotifyAt: &at,
		Enabled:  true,
		Language: "uk",
	}
}

// memDirectory is a small in-memory UserDirectory used by unit tests.
type memDirectory struct {
	mu       sync.RWMutex
	profiles []*model.NotificationProfile
	listErr  error
}

func newMemDirectory(profiles ...*model.NotificationProfile) *memDirectory {
	return &memDirectory{profiles: profiles}
}

func (m *memDirectory) ListEligibleForNotification(ctx context.Context) ([]*model.NotificationProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*model.NotificationProfile, len(m.profiles))
	copy(out, m.profiles)
	return out, nil
}

func (m *memDirectory) FindByUserID(ctx context.Context, userID int64) (*model.NotificationProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// memDeliveryLog records audit rows in memory.
type memDeliveryLog struct {
	mu      sync.Mutex
	recs    []*model.DeliveryRecord
	saveErr error
}

func (m *memDeliveryLog) Save(ctx context.Context, rec *model.DeliveryRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memDeliveryLog) ExistsForDay(ctx context.Context, userID int64, localDate string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.UserID == userID && r.LocalDate == localDate && r.Status == model.DeliveryStatusSent {
			return true, nil
		}
	}
	return false, nil
}

func (m *memDeliveryLog) byStatus(status string) []*model.DeliveryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.DeliveryRecord
	for _, r := range m.recs {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// memSentMarker is an in-memory stand-in for the Redis sent marker.
type memSentMarker struct {
	mu     sync.Mutex
	marked map[string]bool
	err    error
}

func newMemSentMarker() *memSentMarker {
	return &memSentMarker{marked: make(map[string]bool)}
}

func markerKey(userID int64, localDate string) string {
	return fmt.Sprintf("%d:%s", userID, localDate)
}

func (m *memSentMarker) MarkIfFirst(ctx context.Context, userID int64, localDate string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := markerKey(userID, localDate)
	if m.marked[key] {
		return false, nil
	}
	m.marked[key] = true
	return true, nil
}

func (m *memSentMarker) Clear(ctx context.Context, userID int64, localDate string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.marked, markerKey(userID, localDate))
	return nil
}

func (m *memSentMarker) has(userID int64, localDate string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.marked[markerKey(userID, localDate)]
}

type sentMsg struct {
	UserID int64
	Text   string
}

// mockSender records sends and can fail selected users.
type mockSender struct {
	mu      sync.Mutex
	sent    []sentMsg
	failFor map[int64]error
}

func (m *mockSender) SendMessage(ctx context.Context, userID int64, text string) error {
	if err := m.failFor[userID]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMsg{UserID: userID, Text: text})
	return nil
}

func (m *mockSender) sentTo(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sent {
		if s.UserID == userID {
			return true
		}
	}
	return false
}

func (m *mockSender) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// mockWeather serves a fixed forecast unless overridden.
type mockWeather struct {
	ForecastFunc func(ctx context.Context, lat, lon float64) (*model.Forecast, error)
}

func (m *mockWeather) Forecast(ctx context.Context, lat, lon float64) (*model.Forecast, error) {
	if m.ForecastFunc != nil {
		return m.ForecastFunc(ctx, lat, lon)
	}
	return &model.Forecast{CurrentTemp: 21, FeelsLike: 20, MinTemp: 15, MaxTemp: 24, Description: "clear sky"}, nil
}

// mockRenderer keeps messages trivially inspectable.
type mockRenderer struct{}

func (mockRenderer) Render(p *model.NotificationProfile, fc *model.Forecast, localDate string) string {
	return fmt.Sprintf("forecast for %d on %s", p.UserID, localDate)
}

// fakeClock pins NowUTC.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) NowUTC() time.Time { return c.now }
