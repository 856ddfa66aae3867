package store

import (
	"context"
	"fmt"

	"github.com/apratama/letter-seal/internal/logger"
)

// Storages bundles every repository behind one handle. It is the unit
// passed through RunAtomic: inside a transaction the callback receives a
// Storages whose repositories all share the open transaction.
type Storages struct {
	Letters      LetterRepository
	Signatures   SignatureRepository
	Users        UserRepository
	Events       EventRepository
	Claims       ClaimRepository
	ActivityLogs ActivityLogRepository

	atomic AtomicRunner
}

// RunAtomic executes fn atomically. With no runner configured it degrades
// to a plain call, which is what transaction-scoped Storages use: a nested
// RunAtomic joins the transaction already in flight.
func (s Storages) RunAtomic(ctx context.Context, fn func(ctx context.Context, s Storages) error) error {
	if s.atomic == nil {
		return fn(ctx, s)
	}

	return s.atomic.RunAtomic(ctx, fn)
}

// NewPostgresStorages wires every repository to the connection pool and
// installs the transactional runner.
func NewPostgresStorages(db *DB, log *logger.Logger) Storages {
	s := newRepositorySet(db, log)
	s.atomic = &postgresAtomic{db: db, logger: log}
	return s
}

func newRepositorySet(db dbtx, log *logger.Logger) Storages {
	return Storages{
		Letters:      NewLetterRepository(db, log),
		Signatures:   NewSignatureRepository(db, log),
		Users:        NewUserRepository(db, log),
		Events:       NewEventRepository(db, log),
		Claims:       NewClaimRepository(db, log),
		ActivityLogs: NewActivityLogRepository(db, log),
	}
}

// maxAtomicAttempts bounds retries of transactions that failed with a
// retryable driver error (serialization failure, dropped connection).
const maxAtomicAttempts = 3

// postgresAtomic implements [AtomicRunner] over database transactions.
type postgresAtomic struct {
	db     *DB
	logger *logger.Logger
}

func (a *postgresAtomic) RunAtomic(ctx context.Context, fn func(ctx context.Context, s Storages) error) error {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= maxAtomicAttempts; attempt++ {
		lastErr = a.runOnce(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if a.db.errorClassifier.Classify(lastErr) != Retryable {
			return lastErr
		}

		log.Warn().Err(lastErr).Int("attempt", attempt).Msg("retrying transaction after retryable error")
	}

	return lastErr
}

func (a *postgresAtomic) runOnce(ctx context.Context, fn func(ctx context.Context, s Storages) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(ctx, newRepositorySet(tx, a.logger)); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			a.logger.Err(rollbackErr).Msg("error rolling back transaction")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
