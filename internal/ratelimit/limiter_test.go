package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/apratama/letter-seal/internal/logger"
)

func newTestLimiter(cfg Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := NewLimiter(NewMemoryStore(), cfg, logger.Nop())
	l.now = clock.Now
	return l, clock
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestRecordAttempt_ThresholdBlocks(t *testing.T) {
	l, _ := newTestLimiter(Config{})
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		status, err := l.RecordAttempt(ctx, "u1", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status.Blocked {
			t.Fatalf("blocked after %d attempts, want threshold 5", i)
		}
		if status.Attempts != i {
			t.Fatalf("attempts = %d, want %d", status.Attempts, i)
		}
	}

	remaining, err := l.RemainingAttempts(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("remaining attempts = %d, want 1", remaining)
	}

	status, err := l.RecordAttempt(ctx, "u1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Blocked {
		t.Fatal("5th failure must block")
	}
	if status.RemainingSeconds != 900 {
		t.Fatalf("remaining = %ds, want 900", status.RemainingSeconds)
	}
}

func TestRecordAttempt_SuccessForgivesAll(t *testing.T) {
	l, _ := newTestLimiter(Config{})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := l.RecordAttempt(ctx, "u1", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	status, err := l.RecordAttempt(ctx, "u1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Blocked || status.Attempts != 0 {
		t.Fatalf("success must clear the entry, got %+v", status)
	}

	remaining, _ := l.RemainingAttempts(ctx, "u1")
	if remaining != 5 {
		t.Fatalf("remaining attempts = %d, want full threshold", remaining)
	}
}

func TestIsBlocked_ReportsRemainingAndExpires(t *testing.T) {
	l, clock := newTestLimiter(Config{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := l.RecordAttempt(ctx, "u1", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	clock.Advance(10 * time.Minute)
	status, err := l.IsBlocked(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Blocked {
		t.Fatal("still inside the window, must be blocked")
	}
	if status.RemainingSeconds != 300 {
		t.Fatalf("remaining = %ds, want 300", status.RemainingSeconds)
	}

	clock.Advance(5*time.Minute + time.Second)
	status, err = l.IsBlocked(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Blocked {
		t.Fatal("block lapsed, must report not blocked")
	}

	// lapsed entry was purged: the counter starts over
	remaining, _ := l.RemainingAttempts(ctx, "u1")
	if remaining != 5 {
		t.Fatalf("remaining attempts = %d, want full threshold after purge", remaining)
	}
}

func TestIsBlocked_RemainingSecondsCeiling(t *testing.T) {
	l, clock := newTestLimiter(Config{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := l.RecordAttempt(ctx, "u1", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	clock.Advance(14*time.Minute + 59*time.Second + 500*time.Millisecond)
	status, _ := l.IsBlocked(ctx, "u1")
	if !status.Blocked || status.RemainingSeconds != 1 {
		t.Fatalf("got %+v, want blocked with 1s remaining (ceiling)", status)
	}
}

func TestClear_ForcesReset(t *testing.T) {
	l, _ := newTestLimiter(Config{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := l.RecordAttempt(ctx, "u1", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := l.Clear(ctx, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, _ := l.IsBlocked(ctx, "u1")
	if status.Blocked {
		t.Fatal("Clear must unblock immediately")
	}
}

func TestRecordAttempt_CustomConfig(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxAttempts: 2, BlockDuration: time.Minute})
	ctx := context.Background()

	if _, err := l.RecordAttempt(ctx, "u1", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status, _ := l.RecordAttempt(ctx, "u1", false)
	if !status.Blocked || status.RemainingSeconds != 60 {
		t.Fatalf("got %+v, want blocked for 60s", status)
	}
}

// Concurrent failures for the same identity must not lose increments.
func TestRecordAttempt_NoLostUpdates(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxAttempts: 1000})
	ctx := context.Background()

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if _, err := l.RecordAttempt(ctx, "u1", false); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	remaining, _ := l.RemainingAttempts(ctx, "u1")
	if got := 1000 - remaining; got != goroutines {
		t.Fatalf("recorded %d attempts, want %d", got, goroutines)
	}
}

func TestPurgeExpired(t *testing.T) {
	l, clock := newTestLimiter(Config{MaxAttempts: 1, BlockDuration: time.Minute})
	ctx := context.Background()

	if _, err := l.RecordAttempt(ctx, "u1", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := l.RecordAttempt(ctx, "u2", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Advance(2 * time.Minute)
	purged, err := l.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purged != 2 {
		t.Fatalf("purged %d entries, want 2", purged)
	}
}
