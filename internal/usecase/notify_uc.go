package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-notify/internal/domain"
	"telegram-weather-notify/internal/domain/model"
	"telegram-weather-notify/internal/domain/ports/adapter"
	"telegram-weather-notify/internal/domain/ports/repository"
	"telegram-weather-notify/internal/tz"
)

// Compile-time check
var _ NotificationUseCase = (*notificationUC)(nil)

type NotificationUseCase interface {
	// CheckAndNotify runs one full tick: match the snapshot against the
	// instant, then deliver to every matched user. Errors mean the whole
	// tick produced nothing; partial delivery failures do not surface here.
	CheckAndNotify(ctx context.Context, atUTC time.Time) (DispatchResult, error)
	// NotifyUser sends one immediate notification, bypassing both the
	// minute matching and the daily sent marker. Operator resend path.
	NotifyUser(ctx context.Context, userID int64) error
	// PreviewAt reports which users would match at the given instant
	// without sending anything.
	PreviewAt(ctx context.Context, atUTC time.Time) ([]int64, error)
}

type notificationUC struct {
	matcher    MatcherUseCase
	dispatcher DispatcherUseCase
	dir        repository.UserDirectory
	deliveries repository.DeliveryLogRepository
	marks      repository.SentMarkerRepository
	sender     adapter.NotificationSender
	weather    adapter.WeatherProvider
	renderer   adapter.ContentRenderer
	clock      adapter.Clock
	log        *zerolog.Logger
}

func NewNotificationUseCase(
	matcher MatcherUseCase,
	dispatcher DispatcherUseCase,
	dir repository.UserDirectory,
	deliveries repository.DeliveryLogRepository,
	marks repository.SentMarkerRepository,
	sender adapter.NotificationSender,
	weather adapter.WeatherProvider,
	renderer adapter.ContentRenderer,
	clock adapter.Clock,
	logger *zerolog.Logger,
) *notificationUC {
	compLog := logger.With().Str("component", "Notification").Logger()
	return &notificationUC{
		matcher:    matcher,
		dispatcher: dispatcher,
		dir:        dir,
		deliveries: deliveries,
		marks:      marks,
		sender:     sender,
		weather:    weather,
		renderer:   renderer,
		clock:      clock,
		log:        &compLog,
	}
}

func (n *notificationUC) CheckAndNotify(ctx context.Context, atUTC time.Time) (DispatchResult, error) {
	matched, err := n.matcher.MatchAt(ctx, atUTC)
	if err != nil {
		return DispatchResult{}, err
	}
	if len(matched) == 0 {
		return DispatchResult{}, nil
	}
	n.log.Info().Int("matched", len(matched)).
		Str("minute", atUTC.UTC().Format("15:04")).
		Msg("processing notifications")

	return n.dispatcher.Dispatch(ctx, matched, n.sendFunc(atUTC, false)), nil
}

func (n *notificationUC) NotifyUser(ctx context.Context, userID int64) error {
	p, err := n.dir.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user %d: %w", userID, err)
	}
	if p.CityLat == nil || p.CityLon == nil {
		return fmt.Errorf("user %d has no city set: %w", userID, domain.ErrInvalidArgument)
	}
	return n.sendFunc(n.clock.NowUTC(), true)(ctx, p)
}

func (n *notificationUC) PreviewAt(ctx context.Context, atUTC time.Time) ([]int64, error) {
	matched, err := n.matcher.MatchAt(ctx, atUTC)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(matched))
	for _, p := range matched {
		ids = append(ids, p.UserID)
	}
	return ids, nil
}

// sendFunc builds the render-and-send closure the dispatcher drives. When
// force is false the daily sent marker turns duplicate sends into no-ops.
func (n *notificationUC) sendFunc(atUTC time.Time, force bool) SendFunc {
	return func(ctx context.Context, p *model.NotificationProfile) error {
		localDate := tz.LocalDateAt(*p.CityLat, *p.CityLon, atUTC)

		if !force {
			first, err := n.marks.MarkIfFirst(ctx, p.UserID, localDate)
			if err != nil {
				// Marker store down: deliver anyway, a rare duplicate beats
				// a silent miss.
				n.log.Warn().Err(err).Int64("user_id", p.UserID).Msg("sent marker unavailable")
			} else if !first {
				n.log.Debug().Int64("user_id", p.UserID).Str("local_date", localDate).
					Msg("already delivered today, skipping")
				return nil
			}
		}

		if err := n.deliverOne(ctx, p, localDate); err != nil {
			if !force {
				// Free the marker so a retry or manual resend can go through.
				if cerr := n.marks.Clear(ctx, p.UserID, localDate); cerr != nil {
					n.log.Warn().Err(cerr).Int64("user_id", p.UserID).Msg("sent marker clear failed")
				}
			}
			n.logDelivery(ctx, p.UserID, localDate, model.DeliveryStatusFailed, err.Error())
			return err
		}
		n.logDelivery(ctx, p.UserID, localDate, model.DeliveryStatusSent, "")
		return nil
	}
}

func (n *notificationUC) deliverOne(ctx context.Context, p *model.NotificationProfile, localDate string) error {
	forecast, err := n.weather.Forecast(ctx, *p.CityLat, *p.CityLon)
	if err != nil {
		return fmt.Errorf("forecast for user %d: %w", p.UserID, err)
	}
	text := n.renderer.Render(p, forecast, localDate)
	if err := n.sender.SendMessage(ctx, p.UserID, text); err != nil {
		return fmt.Errorf("send to user %d: %w", p.UserID, err)
	}
	return nil
}

// logDelivery writes the audit row; a failed write only loses the audit
// trail, never the notification.
func (n *notificationUC) logDelivery(ctx context.Context, userID int64, localDate, status, errMsg string) {
	rec := model.NewDeliveryRecord(userID, localDate, status, errMsg, n.clock.NowUTC())
	if err := n.deliveries.Save(ctx, rec); err != nil {
		n.log.Warn().Err(err).Int64("user_id", userID).Msg("delivery log write failed")
	}
}
