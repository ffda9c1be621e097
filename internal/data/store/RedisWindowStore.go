package store

import (
	"context"
	"time"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/data/redisStore"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

// RedisWindowStore backs the admission controller's fixed windows with an
// atomically incrementing counter, which keeps limits correct when more
// than one instance serves the same user.
type RedisWindowStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisWindowStore returns nil when redis is unreachable; the caller
// falls back to the in-memory store.
func GetRedisWindowStore(ctx context.Context) *RedisWindowStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisWindowStore)
	if inner == nil {
		return nil
	}
	return &RedisWindowStore{
		store:  inner,
		logger: logger_i.NewLogger("WindowStore"),
	}
}

func (s *RedisWindowStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	count, resetAt, err := s.store.IncrWindow(ctx, "ratewindow:"+key, window)
	if err != nil {
		s.logger.Error("window increment failed", "key", key, "error", err)
		return 0, time.Time{}, err
	}
	return int(count), resetAt, nil
}

func TestRedisWindowStore(inner *redisStore.Store) *RedisWindowStore {
	return &RedisWindowStore{
		store:  inner,
		logger: logger_i.NewLogger("test window store"),
	}
}
