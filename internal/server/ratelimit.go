package server

import (
	"sync"
	"time"
)

// RateLimiter admits at most limit events within any sliding window of the
// given length. It is safe for concurrent use.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time
	now    func() time.Time
}

// NewRateLimiter creates a limiter. A limit of zero or less admits
// everything.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records an event and reports true if fewer than limit events
// happened in the last window; otherwise it records nothing and reports
// false.
func (r *RateLimiter) Allow() bool {
	if r.limit <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.prune(now)
	if len(r.stamps) >= r.limit {
		return false
	}
	r.stamps = append(r.stamps, now)
	return true
}

// Remaining returns how long until the oldest event in the window expires,
// or zero when no event is being held.
func (r *RateLimiter) Remaining() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.prune(now)
	if len(r.stamps) == 0 {
		return 0
	}
	return r.stamps[0].Add(r.window).Sub(now)
}

// prune drops events older than the window. Caller holds mu.
func (r *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-r.window)
	i := 0
	for i < len(r.stamps) && !r.stamps[i].After(cutoff) {
		i++
	}
	r.stamps = r.stamps[i:]
}
