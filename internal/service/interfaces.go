package service

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

import (
	"context"

	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/models"
)

// AuthService authenticates accounts and manages session tokens.
type AuthService interface {
	// Login verifies an email/secret key pair behind the rate limit gate
	// and issues a session token on success.
	Login(ctx context.Context, req models.LoginRequest, ip string) (models.LoginResult, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// LetterService owns the letter lifecycle from draft to sealed.
type LetterService interface {
	Create(ctx context.Context, req models.CreateLetterRequest, userID string) (models.Letter, error)
	Get(ctx context.Context, id string) (models.Letter, error)
	List(ctx context.Context, filter store.LetterFilter) ([]models.Letter, error)
	Update(ctx context.Context, id string, update models.LetterUpdate, userID string) (models.Letter, error)
	Delete(ctx context.Context, id string, userID string) error

	// Sign performs the one-way draft → signed transition: it verifies the
	// signer's secret key behind the rate limit gate, computes the letter
	// fingerprint, and writes the sealed letter together with its
	// signature in one storage transaction.
	Sign(ctx context.Context, id string, userID string, secretKey string, meta models.SignatureMetadata) (models.Letter, models.Signature, error)

	// QRCode renders the verification QR for a signed letter.
	QRCode(ctx context.Context, id string) ([]byte, error)
}

// UserService manages accounts and the one-time secret key reveal.
type UserService interface {
	// Create provisions an account and returns the generated secret key
	// exactly once. The key is not recoverable afterwards.
	Create(ctx context.Context, req models.CreateUserRequest, actorID string) (models.CreatedUser, error)
	Get(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, update models.UserUpdate, actorID string) (models.User, error)
	Delete(ctx context.Context, id string, actorID string) error

	// ResetSecretKey replaces the stored hash with one for a fresh key and
	// reveals that key once. The previous key stops working immediately.
	ResetSecretKey(ctx context.Context, id string, actorID string) (models.CreatedUser, error)
}

// EventService manages events and public certificate claims.
type EventService interface {
	Create(ctx context.Context, req models.CreateEventRequest, actorID string) (models.Event, error)
	Get(ctx context.Context, id string) (models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, id string, update models.EventUpdate, actorID string) (models.Event, error)
	Delete(ctx context.Context, id string, actorID string) error

	// Claim records a certificate claim while the event deadline has not
	// passed. The endpoint is public; no account is required.
	Claim(ctx context.Context, eventID string, req models.ClaimCertificateRequest, ip string) (models.CertificateClaim, error)
	ListClaims(ctx context.Context, eventID string) ([]models.CertificateClaim, error)

	// ClaimQRCode renders the certificate QR for a claim.
	ClaimQRCode(ctx context.Context, claimID string) ([]byte, error)
}

// VerifyService resolves public verification lookups. It never mutates
// state: a verification is a pure read, whatever it finds.
type VerifyService interface {
	Verify(ctx context.Context, documentID string) (models.VerificationResult, error)
}

// ActivityService exposes the audit trail and dashboard counters.
type ActivityService interface {
	List(ctx context.Context, limit int) ([]models.ActivityLog, error)
	Stats(ctx context.Context) (models.Stats, error)
}
