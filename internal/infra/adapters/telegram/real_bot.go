package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-weather-notify/internal/config"
	"telegram-weather-notify/internal/domain/ports/adapter"
	"telegram-weather-notify/internal/infra/metrics"
	red "telegram-weather-notify/internal/infra/redis"
)

// Compile-time check
var _ adapter.NotificationSender = (*RealSenderAdapter)(nil)

// RealSenderAdapter delivers messages through the Telegram Bot API. A Redis
// fixed-window limiter keeps per-chat sends under the Bot API ceiling; the
// HTTP client timeout bounds every send.
type RealSenderAdapter struct {
	bot     *tgbotapi.BotAPI
	limiter *red.RateLimiter
	limit   int
	window  time.Duration
	log     *zerolog.Logger
}

func NewRealSenderAdapter(cfg *config.BotConfig, limiter *red.RateLimiter, logger *zerolog.Logger) (*RealSenderAdapter, error) {
	if cfg == nil || cfg.Token == "" {
		return nil, errors.New("bot token is required")
	}

	client := &http.Client{Timeout: cfg.SendTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}

	compLog := logger.With().Str("component", "TelegramSender").Logger()
	compLog.Info().Str("bot", bot.Self.UserName).Msg("telegram bot authorized")

	return &RealSenderAdapter{
		bot:     bot,
		limiter: limiter,
		limit:   cfg.RateLimit,
		window:  cfg.RateWindow,
		log:     &compLog,
	}, nil
}

func (r *RealSenderAdapter) SendMessage(ctx context.Context, userID int64, text string) error {
	if err := r.waitForSlot(ctx, userID); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(userID, text)
	start := time.Now()
	_, err := r.bot.Send(msg)
	metrics.ObserveSendLatencyMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncDelivery("failed")
		return fmt.Errorf("telegram send: %w", err)
	}
	metrics.IncDelivery("sent")
	return nil
}

// waitForSlot polls the limiter a few times before giving up, so a briefly
// saturated window delays the send instead of failing it.
func (r *RealSenderAdapter) waitForSlot(ctx context.Context, userID int64) error {
	for i := 0; i < 5; i++ {
		allowed, err := r.limiter.Allow(ctx, red.ChatSendKey(userID), r.limit, r.window)
		if err != nil {
			// Limiter store down: send anyway rather than drop the day.
			r.log.Warn().Err(err).Int64("user_id", userID).Msg("rate limiter unavailable")
			return nil
		}
		if allowed {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(300 * time.Millisecond):
		}
	}
	return fmt.Errorf("rate limit exhausted for chat %d", userID)
}
