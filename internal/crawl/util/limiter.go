package util

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spreads requests out per portal hostname, so paginating
// one portal never eats into another portal's budget.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(reqPerSec),
		burst:    burst,
	}
}

// WaitURL blocks until the URL's host may be hit again. Unparseable
// URLs share one fallback bucket.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	host := "_"
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		host = u.Host
	}
	return hl.limiterFor(host).Wait(ctx)
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	lim, ok := hl.limiters[host]
	if !ok {
		lim = rate.NewLimiter(hl.rps, hl.burst)
		hl.limiters[host] = lim
	}
	return lim
}
