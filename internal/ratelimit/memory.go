package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start  time.Time
	period time.Duration
	count  int
}

func (w *window) expired(now time.Time) bool {
	return now.Sub(w.start) >= w.period
}

// MemoryLimiter is a process-local fixed-window limiter. Expired windows are
// swept at most once per period so idle keys do not accumulate.
type MemoryLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, max int, period time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= period {
		l.sweep(now)
	}

	w, ok := l.windows[key]
	if !ok || w.expired(now) {
		l.windows[key] = &window{start: now, period: period, count: 1}
		return max > 0, nil
	}

	w.count++
	return w.count <= max, nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for key, w := range l.windows {
		if w.expired(now) {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}
