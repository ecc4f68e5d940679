package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestLimiter_DailyBoundary(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)}
	l := New(NewMemoryStore(), 15, WithClock(clock.Now))
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		if err := l.CheckAndIncrement(ctx, 7); err != nil {
			t.Fatalf("request %d: unexpected error %v", i, err)
		}
	}
	if err := l.CheckAndIncrement(ctx, 7); !errors.Is(err, ErrDailyLimitExceeded) {
		t.Fatalf("request 16: expected ErrDailyLimitExceeded, got %v", err)
	}

	if err := l.CheckAndIncrement(ctx, 8); err != nil {
		t.Fatalf("other user should not be limited: %v", err)
	}

	clock.t = clock.t.Add(time.Hour)
	if err := l.CheckAndIncrement(ctx, 7); err != nil {
		t.Fatalf("next day should be allowed: %v", err)
	}
}

func TestLimiter_UsesUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 2026-03-11 05:00 local is still 2026-03-10 in UTC.
	clock := &fakeClock{t: time.Date(2026, 3, 11, 5, 0, 0, 0, loc)}
	store := NewMemoryStore()
	l := New(store, 1, WithClock(clock.Now))

	if err := l.CheckAndIncrement(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.entries["1:2026-03-10"]; !ok {
		t.Fatalf("expected UTC day key, have %v", store.entries)
	}
}

func TestLimiter_RejectedRequestDoesNotCount(t *testing.T) {
	store := NewMemoryStore()
	l := New(store, 2)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = l.CheckAndIncrement(ctx, 3)
	}
	for _, e := range store.entries {
		if e.count != 2 {
			t.Fatalf("count = %d, want 2", e.count)
		}
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	if got := New(NewMemoryStore(), 0).Limit(); got != DefaultDailyLimit {
		t.Fatalf("Limit() = %d, want %d", got, DefaultDailyLimit)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := New(NewMemoryStore(), 15)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.CheckAndIncrement(ctx, 42) == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 15 {
		t.Fatalf("allowed = %d, want 15", allowed)
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, day := range []string{"2026-03-05", "2026-03-07", "2026-03-08", "2026-03-09", "2026-03-10"} {
		if _, err := store.Acquire(ctx, 1, day, 15); err != nil {
			t.Fatal(err)
		}
	}

	removed := store.Sweep(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", store.Len())
	}
}

func TestMemoryStore_InvalidDay(t *testing.T) {
	if _, err := NewMemoryStore().Acquire(context.Background(), 1, "yesterday", 15); err == nil {
		t.Fatal("expected error for malformed day")
	}
}

func TestMemoryStore_ScheduleSweep(t *testing.T) {
	c := cron.New()
	id, err := NewMemoryStore().ScheduleSweep(c, zerolog.Nop())
	if err != nil {
		t.Fatalf("ScheduleSweep: %v", err)
	}
	if c.Entry(id).ID != id {
		t.Fatal("sweep entry not registered")
	}
}
