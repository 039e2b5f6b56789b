package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type entry struct {
	submissions []time.Time
	resetAt     time.Time
}

// SlidingWindowLimiter tracks submission timestamps per caller identifier
// (wallet address, IP or email). Decisions are made against the window at read
// time, so a delayed sweep can never change an accept/reject outcome; the
// sweep only bounds memory.
type SlidingWindowLimiter struct {
	sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewSlidingWindowLimiter(sweepEvery time.Duration) *SlidingWindowLimiter {
	rl := &SlidingWindowLimiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
	go rl.sweep(sweepEvery)
	return rl
}

func (rl *SlidingWindowLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	for range ticker.C {
		now := rl.now()
		rl.Lock()
		for id, e := range rl.entries {
			if e.resetAt.Before(now) {
				delete(rl.entries, id)
			}
		}
		rl.Unlock()
	}
}

// IsRateLimited records a submission for id, prunes timestamps older than the
// window and reports whether the recorded count now exceeds maxRequests. The
// first submission for a fresh or fully expired identifier always passes.
func (rl *SlidingWindowLimiter) IsRateLimited(id string, maxRequests int, window time.Duration) bool {
	now := rl.now()

	rl.Lock()
	defer rl.Unlock()

	e, ok := rl.entries[id]
	if !ok {
		e = &entry{}
		rl.entries[id] = e
	}

	cutoff := now.Add(-window)
	kept := e.submissions[:0]
	for _, ts := range e.submissions {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	e.submissions = append(kept, now)
	e.resetAt = now.Add(window)

	return len(e.submissions) > maxRequests
}

// IsTooFast reports whether the two most recent submissions for id are closer
// together than minInterval. It never records anything itself.
func (rl *SlidingWindowLimiter) IsTooFast(id string, minInterval time.Duration) bool {
	rl.Lock()
	defer rl.Unlock()

	e, ok := rl.entries[id]
	if !ok || len(e.submissions) < 2 {
		return false
	}

	last := e.submissions[len(e.submissions)-1]
	prev := e.submissions[len(e.submissions)-2]

	return last.Sub(prev) < minInterval
}
