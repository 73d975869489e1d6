package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failingStore struct{}

func (failingStore) Get(ctx context.Context) (*Record, error) {
	return nil, errors.New("corrupted")
}

func (failingStore) Set(ctx context.Context, rec Record) error {
	return nil
}

func fixedClock(day string) func() time.Time {
	t, _ := time.Parse(DateLayout, day)
	return func() time.Time { return t }
}

func TestTryConsumeWithinCap(t *testing.T) {
	store := NewMemoryStore()
	l := New(store, 3).WithClock(fixedClock("2026-09-01"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.TryConsume(ctx)
		if err != nil {
			t.Fatalf("TryConsume #%d: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("TryConsume #%d denied, want allowed", i+1)
		}
	}

	ok, err := l.TryConsume(ctx)
	if err != nil {
		t.Fatalf("TryConsume over cap: %v", err)
	}
	if ok {
		t.Errorf("TryConsume over cap allowed, want denied")
	}

	// Denial must not mutate the record.
	used, cap, _ := l.Usage(ctx)
	if used != 3 || cap != 3 {
		t.Errorf("usage = %d/%d, want 3/3", used, cap)
	}
}

func TestNewDayResetsCount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	l := New(store, 1).WithClock(fixedClock("2026-09-01"))
	if ok, _ := l.TryConsume(ctx); !ok {
		t.Fatal("first call of the day denied")
	}
	if ok, _ := l.TryConsume(ctx); ok {
		t.Fatal("second call should hit the cap")
	}

	l.WithClock(fixedClock("2026-09-02"))
	ok, err := l.TryConsume(ctx)
	if err != nil {
		t.Fatalf("next day: %v", err)
	}
	if !ok {
		t.Errorf("call on a new day denied, want allowed regardless of prior count")
	}

	used, _, _ := l.Usage(ctx)
	if used != 1 {
		t.Errorf("new day usage = %d, want 1", used)
	}
}

func TestCorruptedStoreNeverBlocks(t *testing.T) {
	l := New(failingStore{}, 1).WithClock(fixedClock("2026-09-01"))
	ok, _ := l.TryConsume(context.Background())
	if !ok {
		t.Errorf("unreadable store must be treated as no prior usage today")
	}
}

func TestZeroCapDisablesLimiting(t *testing.T) {
	l := New(NewMemoryStore(), 0)
	for i := 0; i < 100; i++ {
		if ok, _ := l.TryConsume(context.Background()); !ok {
			t.Fatal("disabled limiter denied a call")
		}
	}
}
