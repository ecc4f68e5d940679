package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// retention is how long a day's counters are kept before Sweep drops them.
const retention = 48 * time.Hour

type memoryEntry struct {
	count int
	day   time.Time
}

// MemoryStore keeps counters in process. Suitable for a single instance.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *MemoryStore) Acquire(_ context.Context, userID int, day string, limit int) (bool, error) {
	d, err := time.Parse(dayLayout, day)
	if err != nil {
		return false, fmt.Errorf("invalid day %q: %w", day, err)
	}
	key := fmt.Sprintf("%d:%s", userID, day)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &memoryEntry{day: d}
		s.entries[key] = e
	}
	if e.count >= limit {
		return false, nil
	}
	e.count++
	return true, nil
}

// Sweep removes counters for days more than two days before now.
// It returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	cutoff := now.UTC().Truncate(24 * time.Hour).Add(-retention)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if e.day.Before(cutoff) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Len is the number of live counters.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// ScheduleSweep registers an hourly Sweep on c.
func (s *MemoryStore) ScheduleSweep(c *cron.Cron, log zerolog.Logger) (cron.EntryID, error) {
	return c.AddFunc("@hourly", func() {
		if n := s.Sweep(time.Now()); n > 0 {
			log.Debug().Int("removed", n).Msg("Swept expired AI usage counters")
		}
	})
}
