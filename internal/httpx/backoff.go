package httpx

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Backoff computes exponential retry delays with optional jitter.
type Backoff struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// Jitter scales each delay by a random factor in [1-Jitter, 1+Jitter].
	Jitter float64

	mu   sync.Mutex
	rand *rand.Rand
}

func NewBackoff(base, maxDelay time.Duration, jitter float64) *Backoff {
	if base <= 0 {
		base = DefaultRetryPolicy.BaseDelay
	}
	if maxDelay < base {
		maxDelay = base
	}
	jitter = min(max(jitter, 0), 1)
	now := uint64(time.Now().UnixNano())
	return &Backoff{
		BaseDelay: base,
		MaxDelay:  maxDelay,
		Jitter:    jitter,
		rand:      rand.New(rand.NewPCG(now, now>>17)),
	}
}

// ForAttempt returns the delay before retry number attempt (0-indexed).
func (b *Backoff) ForAttempt(attempt int) time.Duration {
	delay := b.MaxDelay
	if attempt < 32 {
		d := time.Duration(float64(b.BaseDelay) * math.Exp2(float64(max(attempt, 0))))
		if d > 0 && d < b.MaxDelay {
			delay = d
		}
	}
	if b.Jitter == 0 {
		return delay
	}
	b.mu.Lock()
	factor := 1 + (b.rand.Float64()*2-1)*b.Jitter
	b.mu.Unlock()
	return time.Duration(float64(delay) * factor)
}
