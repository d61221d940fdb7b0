package redis

import (
	"context"
	"fmt"
	"time"

	"telegram-weather-notify/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.SentMarkerRepository = (*SentMarker)(nil)

// SentMarker keeps one key per (user, city-local date). SETNX makes the
// first marking atomic; the TTL lets keys age out on their own, two days is
// enough to outlive any local-date window on the planet.
type SentMarker struct {
	client RedisClient
	ttl    time.Duration
}

func NewSentMarker(client RedisClient, ttl time.Duration) *SentMarker {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &SentMarker{client: client, ttl: ttl}
}

func (s *SentMarker) MarkIfFirst(ctx context.Context, userID int64, localDate string) (bool, error) {
	return s.client.SetNX(ctx, sentKey(userID, localDate), 1, s.ttl)
}

func (s *SentMarker) Clear(ctx context.Context, userID int64, localDate string) error {
	return s.client.Del(ctx, sentKey(userID, localDate))
}

func sentKey(userID int64, localDate string) string {
	return fmt.Sprintf("sent:%d:%s", userID, localDate)
}
