package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with a controllable clock and no sweep
// goroutine, so tests are deterministic.
func newTestLimiter(start time.Time) (*SlidingWindowLimiter, *time.Time) {
	now := start
	rl := &SlidingWindowLimiter{
		entries: make(map[string]*entry),
		now:     func() time.Time { return now },
	}
	return rl, &now
}

func TestIsRateLimited_FourthCallBlocked(t *testing.T) {
	rl, now := newTestLimiter(time.Now())

	window := time.Hour
	for i := 0; i < 3; i++ {
		require.False(t, rl.IsRateLimited("caller", 3, window), "call %d should pass", i+1)
		*now = now.Add(time.Minute)
	}
	require.True(t, rl.IsRateLimited("caller", 3, window), "fourth call should be limited")
}

func TestIsRateLimited_WindowExpiryResets(t *testing.T) {
	rl, now := newTestLimiter(time.Now())

	window := time.Minute
	for i := 0; i < 3; i++ {
		rl.IsRateLimited("caller", 3, window)
	}
	require.True(t, rl.IsRateLimited("caller", 3, window))

	// After the window passes, the identifier behaves like a fresh one.
	*now = now.Add(window + time.Second)
	require.False(t, rl.IsRateLimited("caller", 3, window))
}

func TestIsRateLimited_IdentifiersAreIsolated(t *testing.T) {
	rl, _ := newTestLimiter(time.Now())

	for i := 0; i < 4; i++ {
		rl.IsRateLimited("a", 3, time.Hour)
	}
	require.True(t, rl.IsRateLimited("a", 3, time.Hour))
	require.False(t, rl.IsRateLimited("b", 3, time.Hour))
}

func TestIsTooFast(t *testing.T) {
	rl, now := newTestLimiter(time.Now())

	require.False(t, rl.IsTooFast("caller", 5*time.Minute), "no submissions yet")

	rl.IsRateLimited("caller", 100, time.Hour)
	require.False(t, rl.IsTooFast("caller", 5*time.Minute), "single submission")

	*now = now.Add(10 * time.Second)
	rl.IsRateLimited("caller", 100, time.Hour)
	require.True(t, rl.IsTooFast("caller", 5*time.Minute), "10s apart with 5m minimum")

	*now = now.Add(10 * time.Minute)
	rl.IsRateLimited("caller", 100, time.Hour)
	require.False(t, rl.IsTooFast("caller", 5*time.Minute), "10m apart with 5m minimum")
}

func TestIsRateLimited_ConcurrentBurstSameIdentifier(t *testing.T) {
	rl := NewSlidingWindowLimiter(time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	limited := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.IsRateLimited("burst", 10, time.Hour) {
				mu.Lock()
				limited++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// No lost updates: exactly the overflow is rejected.
	require.Equal(t, 10, limited)
}
