// Package adapter provides the transport layer the signctl console uses to
// talk to the letter-seal server.
//
// The primary abstraction is [ServerAdapter], which decouples the terminal
// UI from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// letter-seal server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login authenticates with an email and secret key. On success it stores
	// the returned bearer token via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)

	// ListLetters fetches letters matching filter.
	ListLetters(ctx context.Context, filter store.LetterFilter) ([]models.Letter, error)

	// GetLetter fetches one letter by ID.
	GetLetter(ctx context.Context, id string) (models.Letter, error)

	// SignLetter performs the draft → signed transition for id with the
	// signer's secret key. Returns the sealed letter and its signature.
	SignLetter(ctx context.Context, id string, secretKey string) (models.Letter, models.Signature, error)

	// LetterQR downloads the verification QR PNG of a signed letter.
	LetterQR(ctx context.Context, id string) ([]byte, error)

	// Verify runs the public verification lookup for a document ID.
	Verify(ctx context.Context, id string) (models.VerificationResult, error)
}
