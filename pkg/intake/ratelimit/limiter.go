package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DateLayout is the calendar-day key format of persisted usage records.
const DateLayout = "2006-01-02"

// Record is the persisted daily usage counter, keyed process-wide.
type Record struct {
	Date  string
	Count int
}

// UsageStore is the persistence port for the daily counter. Implementations
// must make Get/Set an atomic read-modify-write from the limiter's point of
// view; in this single-user design there is no concurrent-writer contention.
type UsageStore interface {
	Get(ctx context.Context) (*Record, error)
	Set(ctx context.Context, rec Record) error
}

// Limiter caps the number of intake sessions started per calendar day.
type Limiter struct {
	store UsageStore
	cap   int
	now   func() time.Time
}

// New creates a limiter over the given store. A non-positive cap disables
// limiting entirely.
func New(store UsageStore, dailyCap int) *Limiter {
	return &Limiter{store: store, cap: dailyCap, now: time.Now}
}

// TryConsume reports whether one more session may start today, incrementing
// the persisted counter when it does. A missing or unreadable record is
// treated as no prior usage today, so a corrupted store never blocks the
// user. The returned error reports store write failures; the bool result is
// authoritative either way.
func (l *Limiter) TryConsume(ctx context.Context) (bool, error) {
	if l.cap <= 0 {
		return true, nil
	}

	today := l.now().Format(DateLayout)

	rec, err := l.store.Get(ctx)
	if err != nil || rec == nil || rec.Date != today {
		// New day or unusable state: reset to 1 and allow.
		return true, l.store.Set(ctx, Record{Date: today, Count: 1})
	}

	if rec.Count >= l.cap {
		return false, nil
	}

	return true, l.store.Set(ctx, Record{Date: today, Count: rec.Count + 1})
}

// Usage returns today's consumed count and the configured cap.
func (l *Limiter) Usage(ctx context.Context) (used, cap int, err error) {
	today := l.now().Format(DateLayout)
	rec, err := l.store.Get(ctx)
	if err != nil {
		return 0, l.cap, err
	}
	if rec == nil || rec.Date != today {
		return 0, l.cap, nil
	}
	return rec.Count, l.cap, nil
}

// WithClock overrides the limiter's clock. Test hook.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// MemoryStore is an in-process UsageStore for tests and single-run tools.
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(ctx context.Context) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return nil, nil
	}
	cp := *m.rec
	return &cp, nil
}

func (m *MemoryStore) Set(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = &rec
	return nil
}
