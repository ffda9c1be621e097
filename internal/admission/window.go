package admission

import (
	"context"
	"sync"
	"time"
)

// WindowStore is the injected counter behind the fixed-window limiter.
// Increment bumps the window's counter for key, rolling the window over
// first when it has expired, and reports the post-increment count and the
// instant the window resets. Single-instance deployments use the in-memory
// store below; multi-instance deployments use the redis-backed store so
// counts stay atomic across replicas.
type WindowStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

type InMemoryWindowStore struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	now     func() time.Time
}

func InitInMemoryWindowStore() *InMemoryWindowStore {
	return &InMemoryWindowStore{
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// TestWindowStore exposes the clock so tests can cross window boundaries.
func TestWindowStore(now func() time.Time) *InMemoryWindowStore {
	return &InMemoryWindowStore{
		windows: make(map[string]*rateWindow),
		now:     now,
	}
}

func (s *InMemoryWindowStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, exists := s.windows[key]
	if !exists || !now.Before(w.resetAt) {
		// Lazy create, or roll over an expired window. No backlog credit:
		// the new window starts now regardless of how long ago the old one
		// expired.
		w = &rateWindow{count: 0, resetAt: now.Add(window)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}
