package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/apratama/letter-seal/internal/crypto"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/models"
)

// verifyService is the concrete implementation of VerifyService.
//
// Verification is a pure read: it recomputes the fingerprint from the
// letter's current content and compares it against the hash stored at sign
// time. It never writes, not even to flag a detected tampering.
type verifyService struct {
	letters     store.LetterRepository
	signatures  store.SignatureRepository
	events      store.EventRepository
	claims      store.ClaimRepository
	fingerprint crypto.FingerprintService
	logger      *logger.Logger
}

// NewVerifyService constructs a VerifyService over the given repositories.
func NewVerifyService(letters store.LetterRepository, signatures store.SignatureRepository,
	events store.EventRepository, claims store.ClaimRepository,
	fingerprint crypto.FingerprintService, logger *logger.Logger) VerifyService {
	return &verifyService{
		letters:     letters,
		signatures:  signatures,
		events:      events,
		claims:      claims,
		fingerprint: fingerprint,
		logger:      logger,
	}
}

// Verify resolves a document ID to a letter or a certificate claim and
// reports its validity.
//
// Letters distinguish two axes: IsIntegrityValid is the fingerprint
// comparison alone, IsValid additionally requires signed status and a
// present signature. An unsigned letter is reported invalid but still
// summarized. Certificates are valid by existence.
//
// Returns ErrDocumentNotFound when the ID matches nothing.
func (s *verifyService) Verify(ctx context.Context, documentID string) (models.VerificationResult, error) {
	log := logger.FromContext(ctx)

	letter, err := s.letters.GetByID(ctx, documentID)
	switch {
	case err == nil:
		return s.verifyLetter(ctx, letter)
	case errors.Is(err, store.ErrLetterNotFound):
		// fall through to the certificate lookup
	default:
		log.Err(err).Str("documentID", documentID).Msg("letter lookup failed")
		return models.VerificationResult{}, fmt.Errorf("letter lookup failed: %w", err)
	}

	claim, err := s.claims.GetByID(ctx, documentID)
	switch {
	case err == nil:
		return s.verifyClaim(ctx, claim)
	case errors.Is(err, store.ErrClaimNotFound):
		return models.VerificationResult{}, ErrDocumentNotFound
	default:
		log.Err(err).Str("documentID", documentID).Msg("claim lookup failed")
		return models.VerificationResult{}, fmt.Errorf("claim lookup failed: %w", err)
	}
}

func (s *verifyService) verifyLetter(ctx context.Context, letter models.Letter) (models.VerificationResult, error) {
	log := logger.FromContext(ctx)

	result := models.VerificationResult{
		Type: models.DocumentLetter,
		Letter: &models.LetterSummary{
			ID:           letter.ID,
			LetterNumber: letter.LetterNumber,
			LetterDate:   letter.LetterDate,
			Subject:      letter.Subject,
			Attachment:   letter.Attachment,
			Status:       letter.Status,
			ContentHash:  letter.ContentHash,
		},
	}

	if letter.Status != models.StatusSigned {
		return result, nil
	}

	result.IsIntegrityValid = s.fingerprint.VerifyLetterIntegrity(letter.LetterNumber,
		letter.LetterDate, letter.Subject, letter.Attachment, letter.Content, letter.ContentHash)

	signature, err := s.signatures.GetByLetterID(ctx, letter.ID)
	if err != nil {
		if errors.Is(err, store.ErrSignatureNotFound) {
			// signed letter without a signature: the atomicity guarantee
			// was violated upstream, report invalid rather than fail
			log.Error().Str("letterID", letter.ID).Msg("signed letter has no signature record")
			return result, nil
		}
		return models.VerificationResult{}, fmt.Errorf("signature lookup failed: %w", err)
	}

	result.Signature = &models.SignatureSummary{
		ID:         signature.ID,
		SignerName: signature.SignerName,
		SignedAt:   signature.SignedAt,
	}
	result.IsValid = result.IsIntegrityValid

	return result, nil
}

func (s *verifyService) verifyClaim(ctx context.Context, claim models.CertificateClaim) (models.VerificationResult, error) {
	result := models.VerificationResult{
		Type:    models.DocumentCertificate,
		IsValid: true,
		Claim: &models.ClaimSummary{
			ID:                claim.ID,
			RecipientName:     claim.RecipientName,
			CallSign:          claim.CallSign,
			CertificateNumber: claim.CertificateNumber,
			ClaimedAt:         claim.ClaimedAt,
		},
	}

	event, err := s.events.GetByID(ctx, claim.EventID)
	if err == nil {
		result.Event = &models.EventSummary{
			ID:   event.ID,
			Name: event.Name,
			Date: event.Date,
		}
	}

	return result, nil
}
