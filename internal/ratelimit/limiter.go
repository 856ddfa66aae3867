// Package ratelimit implements the failed-attempt limiter that guards the
// secret-key check on the login and signing paths.
//
// Each identity (user ID) moves through three logical states: clear,
// tracking(attempts), blocked(until). A single success forgives all prior
// failures; reaching the attempt threshold blocks the identity for the
// configured window. Entries live in a pluggable [EntryStore] so deployments
// can share block state between processes.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/apratama/letter-seal/internal/logger"
)

// Defaults applied by NewLimiter when the corresponding Config field is zero.
const (
	DefaultMaxAttempts   = 5
	DefaultBlockDuration = 15 * time.Minute
)

// Config carries the limiter tunables. Zero values select the defaults.
type Config struct {
	// MaxAttempts is the number of consecutive failures that triggers a
	// block.
	MaxAttempts int

	// BlockDuration is how long an identity stays blocked after crossing
	// the threshold.
	BlockDuration time.Duration
}

// Status reports the limiter's decision for one identity.
type Status struct {
	// Blocked reports whether the identity is currently blocked.
	Blocked bool `json:"blocked"`

	// Attempts is the current consecutive-failure count.
	Attempts int `json:"attempts,omitempty"`

	// RemainingSeconds is how long the block still holds (ceiling).
	// Zero when not blocked.
	RemainingSeconds int `json:"remaining_seconds,omitempty"`
}

// Limiter tracks failed attempts per identity over an [EntryStore].
//
// All read-modify-write sequences run under one mutex: two concurrent
// failures for the same identity must produce two increments, never one.
type Limiter struct {
	store         EntryStore
	maxAttempts   int
	blockDuration time.Duration

	// now is injectable for tests.
	now func() time.Time

	mu     sync.Mutex
	logger *logger.Logger
}

// NewLimiter constructs a Limiter over store with the given tunables.
func NewLimiter(store EntryStore, cfg Config, log *logger.Logger) *Limiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BlockDuration <= 0 {
		cfg.BlockDuration = DefaultBlockDuration
	}

	return &Limiter{
		store:         store,
		maxAttempts:   cfg.MaxAttempts,
		blockDuration: cfg.BlockDuration,
		now:           time.Now,
		logger:        log,
	}
}

// IsBlocked reports whether identifier is currently blocked. A block whose
// window has lapsed is purged on the way out, so the entry self-expires.
func (l *Limiter) IsBlocked(ctx context.Context, identifier string) (Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, found, err := l.store.Get(ctx, identifier)
	if err != nil {
		return Status{}, err
	}
	if !found {
		return Status{}, nil
	}

	if !entry.BlockedUntil.IsZero() {
		now := l.now()
		if now.Before(entry.BlockedUntil) {
			return Status{
				Blocked:          true,
				Attempts:         entry.Attempts,
				RemainingSeconds: ceilSeconds(entry.BlockedUntil.Sub(now)),
			}, nil
		}

		// block lapsed
		if err := l.store.Delete(ctx, identifier); err != nil {
			return Status{}, err
		}
		return Status{}, nil
	}

	return Status{Attempts: entry.Attempts}, nil
}

// RecordAttempt records the outcome of one secret-key check.
//
// On success the entry is purged unconditionally: one success forgives all
// prior failures. On failure the counter is incremented; reaching the
// threshold blocks the identity and the returned status carries the full
// window as remaining time.
func (l *Limiter) RecordAttempt(ctx context.Context, identifier string, success bool) (Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if success {
		if err := l.store.Delete(ctx, identifier); err != nil {
			return Status{}, err
		}
		return Status{}, nil
	}

	now := l.now()
	entry, found, err := l.store.Get(ctx, identifier)
	if err != nil {
		return Status{}, err
	}
	if !found {
		entry = Entry{Identifier: identifier}
	}

	entry.Attempts++
	entry.LastAttempt = now

	if entry.Attempts >= l.maxAttempts {
		entry.BlockedUntil = now.Add(l.blockDuration)
		if err := l.store.Set(ctx, entry); err != nil {
			return Status{}, err
		}

		l.logger.Warn().
			Str("identifier", identifier).
			Int("attempts", entry.Attempts).
			Time("blocked_until", entry.BlockedUntil).
			Msg("identity blocked after repeated failed attempts")

		return Status{
			Blocked:          true,
			Attempts:         entry.Attempts,
			RemainingSeconds: ceilSeconds(l.blockDuration),
		}, nil
	}

	if err := l.store.Set(ctx, entry); err != nil {
		return Status{}, err
	}

	return Status{Attempts: entry.Attempts}, nil
}

// RemainingAttempts returns how many failures identifier has left before a
// block, floored at zero. An unknown identifier has the full threshold.
func (l *Limiter) RemainingAttempts(ctx context.Context, identifier string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, found, err := l.store.Get(ctx, identifier)
	if err != nil {
		return 0, err
	}
	if !found {
		return l.maxAttempts, nil
	}

	remaining := l.maxAttempts - entry.Attempts
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Clear force-resets identifier to the clear state, bypassing the success
// path. Administrative use.
func (l *Limiter) Clear(ctx context.Context, identifier string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.store.Delete(ctx, identifier)
}

// PurgeExpired removes every entry whose block window has lapsed. Called
// periodically by the janitor worker.
func (l *Limiter) PurgeExpired(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.store.PurgeExpired(ctx, l.now())
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
