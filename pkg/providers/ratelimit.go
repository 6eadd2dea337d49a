package providers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Completer with a per-sender limiter: at most one
// completion per sender per minimum interval. An over-limit call blocks
// the calling goroutine for the remainder of the interval; it never
// drops the request.
type RateLimited struct {
	inner    Completer
	interval time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	usage    map[string]int
}

func NewRateLimited(inner Completer, minInterval time.Duration) *RateLimited {
	return &RateLimited{
		inner:    inner,
		interval: minInterval,
		limiters: make(map[string]*rate.Limiter),
		usage:    make(map[string]int),
	}
}

// CompleteAs applies sender's rate limit, then delegates to the wrapped
// Completer.
func (c *RateLimited) CompleteAs(ctx context.Context, sender, prompt string, contextLines []string) (string, error) {
	if err := c.limiterFor(sender).Wait(ctx); err != nil {
		return "", err
	}
	return c.inner.Complete(ctx, prompt, contextLines)
}

// Usage returns a snapshot of completion counts per sender.
func (c *RateLimited) Usage() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int, len(c.usage))
	for k, v := range c.usage {
		out[k] = v
	}
	return out
}

func (c *RateLimited) limiterFor(sender string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.usage[sender]++
	lim, ok := c.limiters[sender]
	if !ok {
		if c.interval <= 0 {
			lim = rate.NewLimiter(rate.Inf, 1)
		} else {
			lim = rate.NewLimiter(rate.Every(c.interval), 1)
		}
		c.limiters[sender] = lim
	}
	return lim
}
