// Package ratelimit caps how many AI generations a user may run per UTC day.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDailyLimitExceeded is returned once a user has used up the day's quota.
var ErrDailyLimitExceeded = errors.New("daily AI generation limit reached")

const (
	DefaultDailyLimit = 15
	dayLayout         = "2006-01-02"
)

// Store holds per-user per-day counters.
type Store interface {
	// Acquire increments the counter for userID on day if it is below limit.
	// A rejected call leaves the counter unchanged.
	Acquire(ctx context.Context, userID int, day string, limit int) (bool, error)
}

// Limiter gates requests against a Store.
type Limiter struct {
	store Store
	limit int
	now   func() time.Time
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func New(store Store, limit int, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	l := &Limiter{store: store, limit: limit, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit is the per-day quota.
func (l *Limiter) Limit() int { return l.limit }

// CheckAndIncrement records one request for userID today, or fails with
// ErrDailyLimitExceeded when the quota is used up.
func (l *Limiter) CheckAndIncrement(ctx context.Context, userID int) error {
	day := l.now().UTC().Format(dayLayout)
	ok, err := l.store.Acquire(ctx, userID, day, l.limit)
	if err != nil {
		return fmt.Errorf("rate limit store: %w", err)
	}
	if !ok {
		return ErrDailyLimitExceeded
	}
	return nil
}
