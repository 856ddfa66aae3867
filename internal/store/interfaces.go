package store

import (
	"context"
	"time"

	"github.com/apratama/letter-seal/models"
)

// LetterRepository persists letters and their draft-to-signed transition.
type LetterRepository interface {
	Create(ctx context.Context, letter models.Letter) (models.Letter, error)
	GetByID(ctx context.Context, id string) (models.Letter, error)
	// GetForUpdate reads a letter while holding a row lock until the
	// surrounding transaction ends. Callers that fingerprint letter content
	// before mutating it must read through this method inside RunAtomic, so
	// a concurrent edit cannot slip between the read and the write.
	GetForUpdate(ctx context.Context, id string) (models.Letter, error)
	List(ctx context.Context, filter LetterFilter) ([]models.Letter, error)
	// Update applies a partial update. It must fail with
	// [ErrLetterAlreadySigned] when the letter has left draft state.
	Update(ctx context.Context, id string, update models.LetterUpdate) (models.Letter, error)
	// MarkSigned transitions a draft letter to signed, recording its
	// fingerprint and verification payload. It must fail with
	// [ErrLetterAlreadySigned] when the letter is not a draft, so that
	// concurrent sign attempts resolve to exactly one winner.
	MarkSigned(ctx context.Context, id string, contentHash string, qrPayload string, signedAt time.Time) (models.Letter, error)
	// Delete removes a draft letter. Signed letters are immutable and
	// must be rejected with [ErrLetterAlreadySigned].
	Delete(ctx context.Context, id string) error
}

// LetterFilter narrows List results. Zero values match everything.
type LetterFilter struct {
	Status    models.LetterStatus
	CreatedBy string
}

// SignatureRepository persists signing attestations.
type SignatureRepository interface {
	Create(ctx context.Context, signature models.Signature) (models.Signature, error)
	GetByLetterID(ctx context.Context, letterID string) (models.Signature, error)
}

// UserRepository persists accounts. Only the bcrypt hash of a secret key
// ever reaches this layer.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, update models.UserUpdate) (models.User, error)
	Delete(ctx context.Context, id string) error
}

// EventRepository persists events and their certificate templates.
type EventRepository interface {
	Create(ctx context.Context, event models.Event) (models.Event, error)
	GetByID(ctx context.Context, id string) (models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, id string, update models.EventUpdate) (models.Event, error)
	// Delete removes an event and, by cascade, all of its claims.
	Delete(ctx context.Context, id string) error
}

// ClaimRepository persists certificate claims. Claims are append-only and
// disappear only through their event's cascading delete.
type ClaimRepository interface {
	Create(ctx context.Context, claim models.CertificateClaim) (models.CertificateClaim, error)
	GetByID(ctx context.Context, id string) (models.CertificateClaim, error)
	ListByEventID(ctx context.Context, eventID string) ([]models.CertificateClaim, error)
}

// ActivityLogRepository is the append-only audit trail.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry models.ActivityLog) (models.ActivityLog, error)
	List(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

// AtomicRunner executes a function atomically against a transaction-scoped
// repository set. The Storages passed to fn must only be used inside fn.
type AtomicRunner interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context, s Storages) error) error
}
