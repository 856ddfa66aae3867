package ratelimit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/apratama/letter-seal/internal/logger"
)

const (
	createEntriesTable = `CREATE TABLE IF NOT EXISTS rate_limit_entries (
		identifier    TEXT PRIMARY KEY,
		attempts      INTEGER NOT NULL,
		last_attempt  TIMESTAMP NOT NULL,
		blocked_until TIMESTAMP
	);`

	selectEntry = `SELECT identifier, attempts, last_attempt, blocked_until
		FROM rate_limit_entries
		WHERE identifier = ?;`

	upsertEntry = `INSERT INTO rate_limit_entries (identifier, attempts, last_attempt, blocked_until)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(identifier) DO UPDATE SET
			attempts = excluded.attempts,
			last_attempt = excluded.last_attempt,
			blocked_until = excluded.blocked_until;`

	deleteEntry = `DELETE FROM rate_limit_entries WHERE identifier = ?;`

	purgeEntries = `DELETE FROM rate_limit_entries
		WHERE blocked_until IS NOT NULL AND blocked_until <= ?;`
)

// sqliteStore is an [EntryStore] backed by a sqlite file, so multiple
// server processes on one host share block state and blocks survive
// restarts.
type sqliteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteStore opens (creating if necessary) the sqlite database at
// dsn and ensures the entries table exists.
func NewSQLiteStore(ctx context.Context, dsn string, log *logger.Logger) (EntryStore, error) {
	if err := createDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("dsn", dsn).Msg("error creating rate limit database file")
		return nil, fmt.Errorf("error creating rate limit database file: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening rate limit database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error connecting rate limit database (ping): %w", err)
	}

	if _, err := db.ExecContext(ctx, createEntriesTable); err != nil {
		return nil, fmt.Errorf("error creating rate limit table: %w", err)
	}

	log.Debug().Str("dsn", dsn).Msg("rate limit store ready")

	return &sqliteStore{db: db, logger: log}, nil
}

func createDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		return f.Close()
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, identifier string) (Entry, bool, error) {
	var entry Entry
	var blockedUntil sql.NullTime

	row := s.db.QueryRowContext(ctx, selectEntry, identifier)
	err := row.Scan(&entry.Identifier, &entry.Attempts, &entry.LastAttempt, &blockedUntil)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("error reading rate limit entry: %w", err)
	}

	if blockedUntil.Valid {
		entry.BlockedUntil = blockedUntil.Time
	}
	return entry, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, entry Entry) error {
	var blockedUntil any
	if !entry.BlockedUntil.IsZero() {
		blockedUntil = entry.BlockedUntil
	}

	_, err := s.db.ExecContext(ctx, upsertEntry, entry.Identifier, entry.Attempts, entry.LastAttempt, blockedUntil)
	if err != nil {
		return fmt.Errorf("error writing rate limit entry: %w", err)
	}
	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, identifier string) error {
	if _, err := s.db.ExecContext(ctx, deleteEntry, identifier); err != nil {
		return fmt.Errorf("error deleting rate limit entry: %w", err)
	}
	return nil
}

func (s *sqliteStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, purgeEntries, now)
	if err != nil {
		return 0, fmt.Errorf("error purging rate limit entries: %w", err)
	}

	purged, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(purged), nil
}
