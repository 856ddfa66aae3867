package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB wraps the PostgreSQL connection pool together with the error
// classifier used to decide whether a failed transaction may be retried.
type DB struct {
	*sql.DB
	errorClassifier *PostgresErrorClassifier
	logger          *logger.Logger
}

// NewConnectPostgres opens a pgx stdlib connection pool and verifies it
// with a ping before returning.
func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:              conn,
		logger:          log,
		errorClassifier: NewPostgresErrorClassifier(),
	}, nil
}

// postgresError extracts the PostgreSQL error code from a driver error,
// or returns "" when err is not a pg error.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// dbtx is the querying surface shared by *sql.DB and *sql.Tx. Repositories
// are built over it so the same code runs standalone and inside RunAtomic.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
