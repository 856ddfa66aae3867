package service

import (
	"context"
	"fmt"
	"time"

	"github.com/apratama/letter-seal/internal/crypto"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/qr"
	"github.com/apratama/letter-seal/internal/ratelimit"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/internal/utils"
	"github.com/apratama/letter-seal/models"
)

// letterService is the concrete implementation of LetterService.
//
// Everything before Sign is ordinary CRUD on drafts; Sign is the one-way
// door. The letter row and the signature row are written inside one
// RunAtomic callback so no reader ever observes a sealed letter without
// its signature or the other way around.
type letterService struct {
	storages    store.Storages
	fingerprint crypto.FingerprintService
	credentials crypto.CredentialService
	limiter     *ratelimit.Limiter
	payloads    *qr.PayloadBuilder
	encoder     qr.Encoder
	uuid        *utils.UUIDGenerator
	now         func() time.Time
	logger      *logger.Logger
}

// NewLetterService constructs a LetterService over the given storages and
// crypto services.
func NewLetterService(storages store.Storages, fingerprint crypto.FingerprintService,
	credentials crypto.CredentialService, limiter *ratelimit.Limiter,
	payloads *qr.PayloadBuilder, encoder qr.Encoder, logger *logger.Logger) LetterService {
	return &letterService{
		storages:    storages,
		fingerprint: fingerprint,
		credentials: credentials,
		limiter:     limiter,
		payloads:    payloads,
		encoder:     encoder,
		uuid:        utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      logger,
	}
}

// Create persists a new draft letter. An empty attachment is normalized to
// "-" and an absent body to "", matching the canonical fingerprint form.
func (s *letterService) Create(ctx context.Context, req models.CreateLetterRequest, userID string) (models.Letter, error) {
	log := logger.FromContext(ctx)

	if req.LetterNumber == "" || req.Subject == "" || req.LetterDate.IsZero() {
		return models.Letter{}, ErrInvalidDataProvided
	}

	attachment := req.Attachment
	if attachment == "" {
		attachment = "-"
	}

	now := s.now().UTC()
	letter := models.Letter{
		ID:           s.uuid.Generate(),
		LetterNumber: req.LetterNumber,
		LetterDate:   req.LetterDate,
		Subject:      req.Subject,
		Attachment:   attachment,
		Content:      req.Content,
		Status:       models.StatusDraft,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.storages.Letters.Create(ctx, letter)
	if err != nil {
		log.Err(err).Str("letterNumber", req.LetterNumber).Msg("letter creation ended with error")
		return models.Letter{}, fmt.Errorf("letter creation ended with error: %w", err)
	}

	s.record(ctx, userID, models.ActionCreateLetter,
		fmt.Sprintf("created letter %s", created.LetterNumber),
		map[string]any{"letter_id": created.ID})

	return created, nil
}

func (s *letterService) Get(ctx context.Context, id string) (models.Letter, error) {
	return s.storages.Letters.GetByID(ctx, id)
}

func (s *letterService) List(ctx context.Context, filter store.LetterFilter) ([]models.Letter, error) {
	return s.storages.Letters.List(ctx, filter)
}

// Update edits a draft. The repository enforces the draft guard, so a
// signed letter comes back as store.ErrLetterAlreadySigned.
func (s *letterService) Update(ctx context.Context, id string, update models.LetterUpdate, userID string) (models.Letter, error) {
	log := logger.FromContext(ctx)

	updated, err := s.storages.Letters.Update(ctx, id, update)
	if err != nil {
		log.Err(err).Str("letterID", id).Msg("letter update ended with error")
		return models.Letter{}, fmt.Errorf("letter update ended with error: %w", err)
	}

	s.record(ctx, userID, models.ActionUpdateLetter,
		fmt.Sprintf("updated letter %s", updated.LetterNumber),
		map[string]any{"letter_id": id})

	return updated, nil
}

func (s *letterService) Delete(ctx context.Context, id string, userID string) error {
	log := logger.FromContext(ctx)

	if err := s.storages.Letters.Delete(ctx, id); err != nil {
		log.Err(err).Str("letterID", id).Msg("letter deletion ended with error")
		return fmt.Errorf("letter deletion ended with error: %w", err)
	}

	s.record(ctx, userID, models.ActionDeleteLetter,
		"deleted draft letter",
		map[string]any{"letter_id": id})

	return nil
}

// Sign seals a draft letter.
//
// The signer's secret key is verified behind the same rate limit gate as
// login. The letter is then re-read under a row lock inside the transaction
// and the fingerprint is computed from that locked row, so a concurrent edit
// cannot land between the read and the transition. Under concurrent sign
// attempts exactly one caller wins and the rest receive
// store.ErrLetterAlreadySigned.
func (s *letterService) Sign(ctx context.Context, id string, userID string, secretKey string, meta models.SignatureMetadata) (models.Letter, models.Signature, error) {
	log := logger.FromContext(ctx)

	if secretKey == "" {
		return models.Letter{}, models.Signature{}, ErrInvalidDataProvided
	}

	signer, err := s.storages.Users.GetByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("signer lookup failed")
		return models.Letter{}, models.Signature{}, fmt.Errorf("signer lookup failed: %w", err)
	}
	if !signer.IsActive {
		return models.Letter{}, models.Signature{}, ErrAccountInactive
	}

	// cheap preflight so a missing or sealed letter does not burn a key
	// attempt; nothing below trusts this read
	preflight, err := s.storages.Letters.GetByID(ctx, id)
	if err != nil {
		return models.Letter{}, models.Signature{}, err
	}
	if preflight.Status != models.StatusDraft {
		return models.Letter{}, models.Signature{}, store.ErrLetterAlreadySigned
	}

	if err = s.verifySignerKey(ctx, signer, secretKey, meta.IPAddress); err != nil {
		return models.Letter{}, models.Signature{}, err
	}

	signedAt := s.now().UTC()

	var sealed models.Letter
	var signature models.Signature
	err = s.storages.RunAtomic(ctx, func(ctx context.Context, tx store.Storages) error {
		letter, txErr := tx.Letters.GetForUpdate(ctx, id)
		if txErr != nil {
			return txErr
		}
		if letter.Status != models.StatusDraft {
			return store.ErrLetterAlreadySigned
		}

		contentHash := s.fingerprint.LetterFingerprint(letter.LetterNumber, letter.LetterDate,
			letter.Subject, letter.Attachment, letter.Content)
		qrPayload := s.payloads.VerificationURL(letter.ID)

		signature = models.Signature{
			ID:          s.uuid.Generate(),
			LetterID:    letter.ID,
			SignerID:    signer.ID,
			SignerName:  signer.Name,
			SignedAt:    signedAt,
			ContentHash: contentHash,
			Metadata: models.SignatureMetadata{
				IPAddress: meta.IPAddress,
				UserAgent: meta.UserAgent,
				Timestamp: signedAt,
			},
		}

		if sealed, txErr = tx.Letters.MarkSigned(ctx, id, contentHash, qrPayload, signedAt); txErr != nil {
			return txErr
		}
		_, txErr = tx.Signatures.Create(ctx, signature)
		return txErr
	})
	if err != nil {
		log.Err(err).Str("letterID", id).Msg("sign transaction failed")
		return models.Letter{}, models.Signature{}, err
	}

	s.record(ctx, userID, models.ActionSignLetter,
		fmt.Sprintf("%s signed letter %s", signer.Name, sealed.LetterNumber),
		map[string]any{"letter_id": id, "content_hash": sealed.ContentHash})

	return sealed, signature, nil
}

// verifySignerKey mirrors the login gate for the signing path.
func (s *letterService) verifySignerKey(ctx context.Context, signer models.User, secretKey, ip string) error {
	status, err := s.limiter.IsBlocked(ctx, signer.ID)
	if err != nil {
		return fmt.Errorf("rate limit check failed: %w", err)
	}
	if status.Blocked {
		return &RateLimitedError{RemainingSeconds: status.RemainingSeconds}
	}

	matches := s.credentials.VerifySecretKey(secretKey, signer.SecretKeyHash)

	status, err = s.limiter.RecordAttempt(ctx, signer.ID, matches)
	if err != nil {
		return fmt.Errorf("rate limit recording failed: %w", err)
	}

	if !matches {
		s.record(ctx, signer.ID, models.ActionFailedKeyAttempt,
			fmt.Sprintf("failed secret key attempt for %s", signer.Name), nil)

		if status.Blocked {
			return &RateLimitedError{RemainingSeconds: status.RemainingSeconds}
		}
		return ErrWrongSecretKey
	}

	return nil
}

// QRCode renders the verification QR image for a signed letter.
func (s *letterService) QRCode(ctx context.Context, id string) ([]byte, error) {
	letter, err := s.storages.Letters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if letter.Status != models.StatusSigned || letter.QRPayload == "" {
		return nil, ErrLetterNotSigned
	}

	return s.encoder.EncodePNG(letter.QRPayload, qr.EncodeOptions{})
}

func (s *letterService) record(ctx context.Context, userID string, action models.ActivityAction, description string, metadata map[string]any) {
	entry := models.ActivityLog{
		ID:          s.uuid.Generate(),
		UserID:      userID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   s.now().UTC(),
	}
	if user, err := s.storages.Users.GetByID(ctx, userID); err == nil {
		entry.UserName = user.Name
	}
	if _, err := s.storages.ActivityLogs.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).Str("action", string(action)).Msg("activity log write failed")
	}
}
