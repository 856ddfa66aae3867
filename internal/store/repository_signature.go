package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/models"
	"github.com/jackc/pgerrcode"
)

// signatureRepository is the PostgreSQL-backed implementation of
// [SignatureRepository]. Signature rows are written exactly once, inside the
// same transaction that marks the letter signed.
type signatureRepository struct {
	logger *logger.Logger
	db     dbtx
}

// NewSignatureRepository constructs a [SignatureRepository] backed by the
// provided querying surface.
func NewSignatureRepository(db dbtx, logger *logger.Logger) SignatureRepository {
	logger.Debug().Msg("creating signature repository")
	return &signatureRepository{
		db:     db,
		logger: logger,
	}
}

func scanSignature(row rowScanner) (models.Signature, error) {
	var s models.Signature
	err := row.Scan(&s.ID, &s.LetterID, &s.SignerID, &s.SignerName, &s.SignedAt, &s.ContentHash,
		&s.Metadata.IPAddress, &s.Metadata.UserAgent)
	s.Metadata.Timestamp = s.SignedAt
	return s, err
}

// Create persists the signing attestation. The UNIQUE constraint on
// letter_id backs up the letter-side draft guard: even if both guards were
// raced past, only one signature can ever exist per letter.
func (r *signatureRepository) Create(ctx context.Context, signature models.Signature) (models.Signature, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createSignature,
		signature.ID, signature.LetterID, signature.SignerID, signature.SignerName,
		signature.SignedAt, signature.ContentHash, signature.Metadata.IPAddress, signature.Metadata.UserAgent)

	saved, err := scanSignature(row)
	if err != nil {
		log.Err(err).Str("func", "*signatureRepository.Create").Msg("error saving signature")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Signature{}, ErrLetterAlreadySigned
		case pgerrcode.ForeignKeyViolation:
			return models.Signature{}, ErrLetterNotFound
		default:
			return models.Signature{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

func (r *signatureRepository) GetByLetterID(ctx context.Context, letterID string) (models.Signature, error) {
	log := logger.FromContext(ctx)

	signature, err := scanSignature(r.db.QueryRowContext(ctx, getSignatureByLetterID, letterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Signature{}, ErrSignatureNotFound
		}
		log.Err(err).Str("func", "*signatureRepository.GetByLetterID").Msg("error scanning signature")
		return models.Signature{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return signature, nil
}
