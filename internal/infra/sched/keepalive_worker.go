package sched

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-notify/internal/infra/metrics"
)

// Compile-time check
var _ StatusReporter = (*KeepAliveWorker)(nil)

// KeepAliveWorker periodically probes the service's own health endpoint.
// Hosting platforms that idle out quiet processes stay warm this way.
// Failures are logged and counted, never fatal.
type KeepAliveWorker struct {
	interval  time.Duration
	healthURL string
	client    *http.Client
	log       *zerolog.Logger

	mu        sync.Mutex
	running   bool
	lastRun   time.Time
	lastError string
}

func NewKeepAliveWorker(interval time.Duration, healthURL string, logger *zerolog.Logger) *KeepAliveWorker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	compLog := logger.With().Str("component", "KeepAliveWorker").Logger()
	return &KeepAliveWorker{
		interval:  interval,
		healthURL: healthURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       &compLog,
	}
}

func (w *KeepAliveWorker) Run(ctx context.Context) error {
	if w.healthURL == "" {
		w.log.Info().Msg("no health url configured, keep-alive disabled")
		return nil
	}
	w.setRunning(true)
	defer w.setRunning(false)
	w.log.Info().Dur("interval", w.interval).Msg("Starting keep-alive worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping keep-alive worker")
			return ctx.Err()
		case <-ticker.C:
			w.ping(ctx)
		}
	}
}

func (w *KeepAliveWorker) ping(ctx context.Context) {
	err := w.probe(ctx)
	w.record(err)
	if err != nil {
		metrics.IncHeartbeat("error")
		w.log.Error().Err(err).Msg("keep-alive ping failed")
		return
	}
	metrics.IncHeartbeat("ok")
	w.log.Debug().Msg("keep-alive ping successful")
}

func (w *KeepAliveWorker) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.healthURL, nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned status %d", resp.StatusCode)
	}
	return nil
}

func (w *KeepAliveWorker) Status() JobStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return JobStatus{
		Name:      "keep_alive",
		Running:   w.running,
		LastRun:   w.lastRun,
		LastError: w.lastError,
	}
}

func (w *KeepAliveWorker) setRunning(v bool) {
	w.mu.Lock()
	w.running = v
	w.mu.Unlock()
}

func (w *KeepAliveWorker) record(err error) {
	w.mu.Lock()
	w.lastRun = time.Now().UTC()
	w.lastError = ""
	if err != nil {
		w.lastError = err.Error()
	}
	w.mu.Unlock()
}
