package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowLimiter counts requests per key inside a fixed time window.
// Counters for a key expire one window after the key's first request.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	frame   time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

func NewFixedWindowLimiter(limit int, frame time.Duration) *FixedWindowLimiter {
	rl := &FixedWindowLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		frame:   frame,
	}
	go rl.sweep()
	return rl
}

// sweep drops expired windows so the map does not grow with every client
// address ever seen.
func (rl *FixedWindowLimiter) sweep() {
	ticker := time.NewTicker(rl.frame)
	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for key, w := range rl.windows {
			if now.After(w.resetAt) {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *FixedWindowLimiter) Allow(key string) (bool, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.After(w.resetAt) {
		rl.windows[key] = &window{count: 1, resetAt: now.Add(rl.frame)}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	return false, time.Until(w.resetAt)
}
