package sched

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-weather-notify/internal/domain/ports/adapter"
	"telegram-weather-notify/internal/infra/logging"
	"telegram-weather-notify/internal/infra/metrics"
	"telegram-weather-notify/internal/usecase"
)

// Compile-time check
var _ StatusReporter = (*NotifyWorker)(nil)

// NotifyWorker fires the notification check once per minute, aligned to
// second 0 of the wall-clock minute. One periodic tick plus O(users)
// matching replaces any per-user or per-time-slot job registration.
type NotifyWorker struct {
	notifUC usecase.NotificationUseCase
	clock   adapter.Clock
	log     *zerolog.Logger

	// processing is the re-entrancy guard: a tick that overruns its minute
	// makes the next tick a logged no-op, never a concurrent run.
	processing atomic.Bool

	mu        sync.Mutex
	running   bool
	lastRun   time.Time
	nextRun   time.Time
	lastError string
}

func NewNotifyWorker(notifUC usecase.NotificationUseCase, clk adapter.Clock, logger *zerolog.Logger) *NotifyWorker {
	compLog := logger.With().Str("component", "NotifyWorker").Logger()
	return &NotifyWorker{
		notifUC: notifUC,
		clock:   clk,
		log:     &compLog,
	}
}

// Run blocks until ctx is cancelled. An in-flight tick is abandoned
// best-effort on shutdown, there is no drain guarantee.
func (w *NotifyWorker) Run(ctx context.Context) error {
	w.setRunning(true)
	defer w.setRunning(false)
	w.log.Info().Msg("Starting notification worker")

	for {
		// Recomputing the boundary every lap keeps ticks glued to second 0
		// regardless of how long the previous tick took.
		next := w.clock.NowUTC().Truncate(time.Minute).Add(time.Minute)
		w.setNextRun(next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.Info().Msg("Stopping notification worker")
			return ctx.Err()
		case <-timer.C:
		}
		w.Tick(ctx, next)
	}
}

// Tick runs one matching+dispatch cycle for the given minute. Exported so
// the admin surface can trigger it and tests can drive it directly.
func (w *NotifyWorker) Tick(ctx context.Context, atUTC time.Time) {
	if !w.processing.CompareAndSwap(false, true) {
		w.log.Info().Str("minute", atUTC.Format("15:04")).
			Msg("previous tick still running, skipping this minute")
		metrics.IncTick("skipped")
		return
	}
	defer w.processing.Store(false)

	tickID := uuid.NewString()[:8]
	tickLog := w.log.With().Str("tick_id", tickID).Logger()
	ctx = logging.WithTickID(ctx, tickID)

	res, err := w.notifUC.CheckAndNotify(ctx, atUTC)
	w.recordRun(atUTC, err)
	if err != nil {
		// The tick is sacrificed, the flag is cleared by the defer and the
		// next minute retries naturally.
		tickLog.Error().Err(err).Msg("notification tick failed")
		metrics.IncTick("error")
		return
	}
	metrics.IncTick("run")
	metrics.SetMatchedUsers(res.Attempted)
	if res.Attempted > 0 {
		tickLog.Info().
			Int("matched", res.Attempted).
			Int("sent", res.Sent).
			Int("failed", res.Failed).
			Msg("tick finished")
	}
}

func (w *NotifyWorker) Status() JobStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return JobStatus{
		Name:       "notification_checker",
		Running:    w.running,
		Processing: w.processing.Load(),
		LastRun:    w.lastRun,
		NextRun:    w.nextRun,
		LastError:  w.lastError,
	}
}

func (w *NotifyWorker) setRunning(v bool) {
	w.mu.Lock()
	w.running = v
	w.mu.Unlock()
}

func (w *NotifyWorker) setNextRun(t time.Time) {
	w.mu.Lock()
	w.nextRun = t
	w.mu.Unlock()
}

func (w *NotifyWorker) recordRun(t time.Time, err error) {
	w.mu.Lock()
	w.lastRun = t
	w.lastError = ""
	if err != nil {
		w.lastError = err.Error()
	}
	w.mu.Unlock()
}
