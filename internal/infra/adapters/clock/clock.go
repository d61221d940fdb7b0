package clock

import (
	"time"

	"telegram-weather-notify/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.Clock = (*UTCClock)(nil)

// UTCClock is the production clock.
type UTCClock struct{}

func New() *UTCClock { return &UTCClock{} }

func (UTCClock) NowUTC() time.Time { return time.Now().UTC() }
