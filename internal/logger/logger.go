// Package logger wraps zerolog.Logger with the constructors and
// context-aware helpers used across letter-seal. The wrapper embeds
// zerolog.Logger, so the full zerolog API (Debug, Info, Err, Fatal, ...)
// is available directly on *Logger. Request-scoped loggers are attached by
// the trace-id middleware and recovered via FromRequest / FromContext.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a JSON logger writing to stdout. Every entry carries
// a "role" field (e.g. "server", "signctl", "worker") so logs from
// different binaries and components can be filtered apart.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// NewWriterLogger constructs a logger identical to NewLogger but writing to
// w. The signctl console uses it to keep log output away from the terminal
// UI by logging into a file.
func NewWriterLogger(role string, w io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	l := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting all fields of the
// receiver. The child can be enriched with additional context fields
// without affecting the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest extracts the request-scoped logger attached to r's context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the logger stored in ctx. If none was attached,
// zerolog returns its global logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
