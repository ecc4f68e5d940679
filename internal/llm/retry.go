package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 2 * time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Retrier wraps a Generator with bounded linear backoff.
// Before retry n it waits n*baseDelay.
type Retrier struct {
	gen         Generator
	maxAttempts int
	baseDelay   time.Duration
	sleep       SleepFunc
	log         zerolog.Logger
}

// RetryOption customizes a Retrier.
type RetryOption func(*Retrier)

func WithMaxAttempts(n int) RetryOption {
	return func(r *Retrier) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

func WithSleep(fn SleepFunc) RetryOption {
	return func(r *Retrier) {
		if fn != nil {
			r.sleep = fn
		}
	}
}

func NewRetrier(gen Generator, log zerolog.Logger, opts ...RetryOption) *Retrier {
	r := &Retrier{
		gen:         gen,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		sleep:       sleepContext,
		log:         log.With().Str("component", "llm_retry").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WorstCase is the longest a GenerateParsed call can take when every
// attempt runs to perCall and fails.
func (r *Retrier) WorstCase(perCall time.Duration) time.Duration {
	total := time.Duration(r.maxAttempts) * perCall
	for n := 1; n < r.maxAttempts; n++ {
		total += time.Duration(n) * r.baseDelay
	}
	return total
}

// GenerateWithRetry returns the first successful raw reply.
func (r *Retrier) GenerateWithRetry(ctx context.Context, prompt string) (string, error) {
	return GenerateParsed(ctx, r, prompt, func(raw string) (string, error) { return raw, nil })
}

// GenerateParsed calls the model and parses its reply, retrying both the call
// and the parse. A missing credential is never retried.
func GenerateParsed[T any](ctx context.Context, r *Retrier, prompt string, parse func(raw string) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * r.baseDelay
			r.log.Info().Int("retry", attempt).Dur("delay", delay).Msg("Waiting before retry")
			if err := r.sleep(ctx, delay); err != nil {
				lastErr = err
				break
			}
		}

		raw, err := r.gen.Generate(ctx, prompt)
		if err == nil {
			v, perr := parse(raw)
			if perr == nil {
				return v, nil
			}
			err = perr
		}

		lastErr = err
		r.log.Warn().Err(err).Int("attempt", attempt+1).Msg("AI generation attempt failed")
		if errors.Is(err, ErrMissingCredential) {
			break
		}
	}

	return zero, fmt.Errorf("%w: %w", ErrGenerationFailed, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
