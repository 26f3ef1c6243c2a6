package ratelimit

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between requests to the same domain.
// Each domain's state is independent, so callers working on different
// domains never block each other.
type Limiter struct {
	minDelay time.Duration

	mu      sync.Mutex
	domains map[string]*domainState
}

// domainState serializes waiters for one domain. The lock is held across
// the sleep so the timestamp update is atomic with respect to concurrent
// callers on the same domain.
type domainState struct {
	mu   sync.Mutex
	last time.Time
}

// New creates a limiter with the given minimum per-domain delay
func New(minDelay time.Duration) *Limiter {
	return &Limiter{
		minDelay: minDelay,
		domains:  make(map[string]*domainState),
	}
}

// Wait blocks until at least the minimum delay has elapsed since the last
// request for the URL's domain, then records the new timestamp.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	state := l.state(Domain(rawURL))

	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.last.IsZero() {
		if wait := l.minDelay - time.Since(state.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	state.last = time.Now()
	return nil
}

func (l *Limiter) state(domain string) *domainState {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.domains[domain]
	if !ok {
		state = &domainState{}
		l.domains[domain] = state
	}
	return state
}

// Domain extracts the network host from a URL. Unparsable URLs fall back to
// the raw string so they still rate-limit against themselves.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return parsed.Host
}
