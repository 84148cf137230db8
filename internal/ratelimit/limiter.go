// Package ratelimit provides fixed-window request counters keyed by caller.
package ratelimit

import (
	"context"
	"time"
)

// Limiter reports whether another request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error)
}
