package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const PositionsCacheKey = "icequeen:positions:latest"

func (s *Storage) SetCache(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return s.rds.Set(ctx, key, value, exp).Err()
}

func (s *Storage) GetCache(ctx context.Context, key string) *redis.StringCmd {
	return s.rds.Get(ctx, key)
}

// CachePositions stores the JSON form of v under the latest-positions key
func (s *Storage) CachePositions(ctx context.Context, v interface{}, exp time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal positions: %w", err)
	}
	if err := s.SetCache(ctx, PositionsCacheKey, b, exp); err != nil {
		return fmt.Errorf("cache positions: %w", err)
	}
	return nil
}

// CachedPositions returns the cached JSON. ok is false on a miss.
func (s *Storage) CachedPositions(ctx context.Context) (json.RawMessage, bool, error) {
	b, err := s.GetCache(ctx, PositionsCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(b), true, nil
}
