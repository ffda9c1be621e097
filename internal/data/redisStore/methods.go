package redisStore

import (
	"context"
	"time"
)

// IncrWindow bumps the fixed-window counter for key, starting the window's
// TTL when the key is fresh. INCR is atomic across replicas, so concurrent
// instances never lose counts. Returns the post-increment count and the
// instant the window expires.
func (s *Store) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if ttl < 0 {
		// Key exists without a TTL: a previous Expire never landed. Repair
		// it so the window cannot live forever.
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
		ttl = window
	}

	return count, time.Now().Add(ttl), nil
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}
