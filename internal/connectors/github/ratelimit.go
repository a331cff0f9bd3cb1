package github

import (
	"context"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/issuesync/internal/logger"
)

const (
	// GitHubRateLimit is the authenticated rate limit (5000/hour).
	GitHubRateLimit = 5000

	// ProactiveRate is the proactive throttle rate (~1.2 req/sec = 4320/hr).
	ProactiveRate = 1.2

	// MinBuffer is the quota kept in reserve; below it Wait blocks until
	// the window resets.
	MinBuffer = 100
)

// RateLimiter throttles issue listing. A token bucket spaces requests out
// and the quota reported by the last response holds requests back once
// the reserve is reached.
type RateLimiter struct {
	mu     sync.Mutex
	quota  gh.Rate
	bucket *rate.Limiter
}

// NewRateLimiter creates a new rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithRate(rate.Limit(ProactiveRate))
}

// NewRateLimiterWithRate creates a rate limiter with a custom proactive rate.
// rate.Inf disables proactive throttling.
func NewRateLimiterWithRate(limit rate.Limit) *RateLimiter {
	return &RateLimiter{
		quota:  gh.Rate{Limit: GitHubRateLimit, Remaining: GitHubRateLimit},
		bucket: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the next request may be sent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	quota := r.Quota()
	if quota.Remaining >= MinBuffer || !time.Now().Before(quota.Reset.Time) {
		return nil
	}

	waitDuration := time.Until(quota.Reset.Time)
	logger.Warn("GitHub quota low (%d remaining), waiting %s for reset", quota.Remaining, waitDuration.Round(time.Second))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(waitDuration):
		return nil
	}
}

// Observe records the quota go-github parsed from a response. Responses
// without rate headers carry a zero limit and are ignored.
func (r *RateLimiter) Observe(quota gh.Rate) {
	if quota.Limit == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quota = quota
}

// Quota returns the last observed quota.
func (r *RateLimiter) Quota() gh.Rate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota
}
