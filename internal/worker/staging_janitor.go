package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// StaleSweeper removes staged uploads older than a cutoff.
type StaleSweeper interface {
	SweepStale(cutoff time.Time) (int, error)
}

// StagingJanitor periodically clears uploads orphaned in the staging directory.
type StagingJanitor struct {
	stager   StaleSweeper
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewStagingJanitor creates a new StagingJanitor.
func NewStagingJanitor(stager StaleSweeper, interval, maxAge time.Duration, log zerolog.Logger) *StagingJanitor {
	return &StagingJanitor{
		stager:   stager,
		interval: interval,
		maxAge:   maxAge,
		now:      time.Now,
		log:      log.With().Str("component", "staging_janitor").Logger(),
	}
}

// Start sweeps once immediately, then every interval until ctx is done.
// Call in a goroutine.
func (w *StagingJanitor) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Dur("max_age", w.maxAge).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep()
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *StagingJanitor) sweep() int {
	n, err := w.stager.SweepStale(w.now().Add(-w.maxAge))
	if err != nil {
		w.log.Error().Err(err).Int("removed", n).Msg("Staging sweep failed")
		return n
	}
	if n > 0 {
		w.log.Info().Int("removed", n).Msg("Removed orphaned uploads")
	}
	return n
}
