package telegram

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-notify/internal/domain/ports/adapter"
)

// NoopSenderAdapter implements adapter.NotificationSender for local/dev runs.
// It logs messages instead of talking to Telegram.
type NoopSenderAdapter struct {
	log *zerolog.Logger
}

func NewNoopSenderAdapter(logger *zerolog.Logger) *NoopSenderAdapter {
	compLog := logger.With().Str("component", "NoopSender").Logger()
	return &NoopSenderAdapter{log: &compLog}
}

// SendMessage logs the message and simulates a small delay.
func (b *NoopSenderAdapter) SendMessage(ctx context.Context, userID int64, text string) error {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	b.log.Info().Int64("user_id", userID).Str("text", text).Msg("noop send")
	return nil
}

// Ensure interface compliance
var _ adapter.NotificationSender = (*NoopSenderAdapter)(nil)
