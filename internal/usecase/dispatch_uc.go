package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-notify/internal/domain/model"
)

// Compile-time check
var _ DispatcherUseCase = (*dispatcherUC)(nil)

// SendFunc renders and delivers one notification. The dispatcher treats it
// as opaque; failures are attributed to the user and never abort the batch.
type SendFunc func(ctx context.Context, p *model.NotificationProfile) error

type DispatchResult struct {
	Attempted int
	Sent      int
	Failed    int
}

type DispatcherUseCase interface {
	// Dispatch delivers to all profiles in fixed-size batches. Sends within
	// a batch run concurrently and all settle before the next batch starts.
	Dispatch(ctx context.Context, profiles []*model.NotificationProfile, send SendFunc) DispatchResult
}

type dispatcherUC struct {
	batchSize  int
	batchPause time.Duration
	log        *zerolog.Logger
}

func NewDispatcherUseCase(batchSize int, batchPause time.Duration, logger *zerolog.Logger) *dispatcherUC {
	if batchSize <= 0 {
		batchSize = 10
	}
	if batchPause < 0 {
		batchPause = 0
	}
	compLog := logger.With().Str("component", "Dispatcher").Logger()
	return &dispatcherUC{batchSize: batchSize, batchPause: batchPause, log: &compLog}
}

func (d *dispatcherUC) Dispatch(ctx context.Context, profiles []*model.NotificationProfile, send SendFunc) DispatchResult {
	res := DispatchResult{Attempted: len(profiles)}
	for start := 0; start < len(profiles); start += d.batchSize {
		end := start + d.batchSize
		if end > len(profiles) {
			end = len(profiles)
		}
		sent, failed := d.dispatchBatch(ctx, profiles[start:end], send)
		res.Sent += sent
		res.Failed += failed

		if end < len(profiles) {
			select {
			case <-ctx.Done():
				d.log.Warn().Err(ctx.Err()).Int("remaining", len(profiles)-end).
					Msg("dispatch cancelled between batches")
				res.Failed += len(profiles) - end
				return res
			case <-time.After(d.batchPause):
			}
		}
	}
	return res
}

func (d *dispatcherUC) dispatchBatch(ctx context.Context, batch []*model.NotificationProfile, send SendFunc) (sent, failed int) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, p := range batch {
		wg.Add(1)
		go func(p *model.NotificationProfile) {
			defer wg.Done()
			// One user's failure must not touch anyone else's send.
			if err := send(ctx, p); err != nil {
				d.log.Error().Err(err).Int64("user_id", p.UserID).Msg("notification send failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}(p)
	}
	wg.Wait()
	return sent, failed
}
