package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/apratama/letter-seal/internal/config"
	"github.com/apratama/letter-seal/internal/crypto"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/ratelimit"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/models"
	"golang.org/x/crypto/bcrypt"
)

func newTestServices(t *testing.T) (*Services, store.Storages) {
	t.Helper()
	log := logger.Nop()
	storages := store.NewMemoryStorages()
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), ratelimit.Config{}, log)
	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "letter-seal-test",
			TokenDuration: time.Hour,
			HashCost:      bcrypt.MinCost,
			BaseURL:       "https://letters.example.org",
		},
	}
	return NewServices(storages, limiter, cfg, log), storages
}

// seedSigner provisions an account through the user service and returns it
// together with its one-time secret key.
func seedSigner(t *testing.T, svc *Services) (models.User, string) {
	t.Helper()
	created, err := svc.Users.Create(context.Background(), models.CreateUserRequest{
		Name:  "Budi Santoso",
		Email: "budi@example.org",
		Role:  models.RoleAdmin,
	}, "")
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return created.User, created.SecretKey
}

func seedDraft(t *testing.T, svc *Services, userID string) models.Letter {
	t.Helper()
	letter, err := svc.Letters.Create(context.Background(), models.CreateLetterRequest{
		LetterNumber: "001/A/2024",
		LetterDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Subject:      "Invitation",
		Attachment:   "-",
		Content:      "Please attend.",
	}, userID)
	if err != nil {
		t.Fatalf("seeding letter: %v", err)
	}
	return letter
}

func TestSignLetter_SealsWithSignature(t *testing.T) {
	svc, storages := newTestServices(t)
	signer, key := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	sealed, signature, err := svc.Letters.Sign(context.Background(), draft.ID, signer.ID, key,
		models.SignatureMetadata{IPAddress: "10.0.0.1", UserAgent: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sealed.Status != models.StatusSigned {
		t.Errorf("expected signed status, got %s", sealed.Status)
	}
	if sealed.ContentHash == "" || sealed.QRPayload == "" {
		t.Error("expected content hash and QR payload on sealed letter")
	}
	if signature.ContentHash != sealed.ContentHash {
		t.Error("expected signature hash to match the letter hash")
	}
	if signature.SignerName != signer.Name {
		t.Errorf("expected signer name captured, got %q", signature.SignerName)
	}

	stored, err := storages.Signatures.GetByLetterID(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("expected persisted signature: %v", err)
	}
	if stored.ID != signature.ID {
		t.Error("expected the same signature persisted")
	}
}

func TestSignLetter_WrongKey(t *testing.T) {
	svc, _ := newTestServices(t)
	signer, _ := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	_, _, err := svc.Letters.Sign(context.Background(), draft.ID, signer.ID, "SK-WRONG-KEY", models.SignatureMetadata{})
	if !errors.Is(err, ErrWrongSecretKey) {
		t.Fatalf("expected ErrWrongSecretKey, got %v", err)
	}

	// the draft is untouched
	letter, err := svc.Letters.Get(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if letter.Status != models.StatusDraft {
		t.Errorf("expected draft after failed sign, got %s", letter.Status)
	}
}

func TestSignLetter_RateLimitedAfterRepeatedFailures(t *testing.T) {
	svc, _ := newTestServices(t)
	signer, key := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	ctx := context.Background()
	for i := 0; i < ratelimit.DefaultMaxAttempts-1; i++ {
		_, _, err := svc.Letters.Sign(ctx, draft.ID, signer.ID, "SK-WRONG-KEY", models.SignatureMetadata{})
		if !errors.Is(err, ErrWrongSecretKey) {
			t.Fatalf("attempt %d: expected ErrWrongSecretKey, got %v", i+1, err)
		}
	}

	// the blocking attempt reports the block, not a plain wrong key
	_, _, err := svc.Letters.Sign(ctx, draft.ID, signer.ID, "SK-WRONG-KEY", models.SignatureMetadata{})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	var rateErr *RateLimitedError
	if !errors.As(err, &rateErr) || rateErr.RemainingSeconds <= 0 {
		t.Fatalf("expected remaining seconds on rate limit error, got %v", err)
	}

	// the correct key is rejected too while blocked
	_, _, err = svc.Letters.Sign(ctx, draft.ID, signer.ID, key, models.SignatureMetadata{})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited with correct key while blocked, got %v", err)
	}
}

func TestSignLetter_AlreadySigned(t *testing.T) {
	svc, _ := newTestServices(t)
	signer, key := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	ctx := context.Background()
	if _, _, err := svc.Letters.Sign(ctx, draft.ID, signer.ID, key, models.SignatureMetadata{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Letters.Sign(ctx, draft.ID, signer.ID, key, models.SignatureMetadata{})
	if !errors.Is(err, store.ErrLetterAlreadySigned) {
		t.Fatalf("expected ErrLetterAlreadySigned, got %v", err)
	}
}

func TestSignLetter_ConcurrentAttemptsSignOnce(t *testing.T) {
	svc, storages := newTestServices(t)
	signer, key := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	const attempts = 20

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		losses int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Letters.Sign(context.Background(), draft.ID, signer.ID, key, models.SignatureMetadata{})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, store.ErrLetterAlreadySigned):
				losses++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if losses != attempts-1 {
		t.Fatalf("expected %d losers, got %d", attempts-1, losses)
	}

	if _, err := storages.Signatures.GetByLetterID(context.Background(), draft.ID); err != nil {
		t.Fatalf("expected exactly one signature present: %v", err)
	}
}

// editingLetterRepo rewrites the letter's subject right after the first read
// of the target letter, modeling an edit racing a sign attempt.
type editingLetterRepo struct {
	store.LetterRepository
	targetID string
	once     sync.Once
	edit     func()
}

func (r *editingLetterRepo) GetByID(ctx context.Context, id string) (models.Letter, error) {
	letter, err := r.LetterRepository.GetByID(ctx, id)
	if err == nil && id == r.targetID {
		r.once.Do(r.edit)
	}
	return letter, err
}

func TestSignLetter_SealsCurrentContentUnderConcurrentEdit(t *testing.T) {
	log := logger.Nop()
	storages := store.NewMemoryStorages()
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), ratelimit.Config{}, log)
	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "letter-seal-test",
			TokenDuration: time.Hour,
			HashCost:      bcrypt.MinCost,
			BaseURL:       "https://letters.example.org",
		},
	}

	repo := &editingLetterRepo{LetterRepository: storages.Letters}
	wrapped := storages
	wrapped.Letters = repo
	svc := NewServices(wrapped, limiter, cfg, log)

	signer, key := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	ctx := context.Background()
	subject := "Rescheduled"
	repo.targetID = draft.ID
	repo.edit = func() {
		if _, err := storages.Letters.Update(ctx, draft.ID, models.LetterUpdate{Subject: &subject}); err != nil {
			t.Errorf("racing edit failed: %v", err)
		}
	}

	sealed, signature, err := svc.Letters.Sign(ctx, draft.ID, signer.ID, key, models.SignatureMetadata{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sealed.Subject != subject {
		t.Fatalf("expected sealed letter to carry the edited subject, got %q", sealed.Subject)
	}

	// the fingerprint must cover the row that was sealed, not the one read
	// before the edit landed
	fingerprint := crypto.NewFingerprintService()
	want := fingerprint.LetterFingerprint(sealed.LetterNumber, sealed.LetterDate,
		sealed.Subject, sealed.Attachment, sealed.Content)
	if sealed.ContentHash != want {
		t.Fatalf("sealed hash covers stale content: got %s, want %s", sealed.ContentHash, want)
	}
	if signature.ContentHash != sealed.ContentHash {
		t.Error("expected signature hash to match the letter hash")
	}

	result, err := svc.Verify.Verify(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid || !result.IsIntegrityValid {
		t.Fatalf("expected sealed letter to verify, got valid=%v integrity=%v", result.IsValid, result.IsIntegrityValid)
	}
}

func TestSignedLetter_Immutable(t *testing.T) {
	svc, _ := newTestServices(t)
	signer, key := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	ctx := context.Background()
	if _, _, err := svc.Letters.Sign(ctx, draft.ID, signer.ID, key, models.SignatureMetadata{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject := "Edited"
	_, err := svc.Letters.Update(ctx, draft.ID, models.LetterUpdate{Subject: &subject}, signer.ID)
	if !errors.Is(err, store.ErrLetterAlreadySigned) {
		t.Fatalf("expected update rejection, got %v", err)
	}

	if err = svc.Letters.Delete(ctx, draft.ID, signer.ID); !errors.Is(err, store.ErrLetterAlreadySigned) {
		t.Fatalf("expected delete rejection, got %v", err)
	}
}

func TestLetterQRCode(t *testing.T) {
	svc, _ := newTestServices(t)
	signer, key := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	ctx := context.Background()

	// drafts have no QR
	if _, err := svc.Letters.QRCode(ctx, draft.ID); !errors.Is(err, ErrLetterNotSigned) {
		t.Fatalf("expected ErrLetterNotSigned for draft, got %v", err)
	}

	if _, _, err := svc.Letters.Sign(ctx, draft.ID, signer.ID, key, models.SignatureMetadata{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	png, err := svc.Letters.QRCode(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected PNG bytes")
	}
}

func TestSignThenVerify_EndToEnd(t *testing.T) {
	svc, _ := newTestServices(t)
	signer, key := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	ctx := context.Background()
	sealed, _, err := svc.Letters.Sign(ctx, draft.ID, signer.ID, key, models.SignatureMetadata{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Verify.Verify(ctx, sealed.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != models.DocumentLetter {
		t.Fatalf("expected letter variant, got %s", result.Type)
	}
	if !result.IsValid || !result.IsIntegrityValid {
		t.Fatalf("expected valid verification, got valid=%v integrity=%v", result.IsValid, result.IsIntegrityValid)
	}
	if result.Signature == nil || result.Signature.SignerName != signer.Name {
		t.Fatal("expected signature summary with signer name")
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	svc, storages := newTestServices(t)
	signer, _ := seedSigner(t, svc)
	draft := seedDraft(t, svc, signer.ID)

	// seal the letter with a hash computed over different content,
	// simulating post-signing tampering of the stored row
	fingerprint := crypto.NewFingerprintService()
	foreignHash := fingerprint.LetterFingerprint(draft.LetterNumber, draft.LetterDate,
		"a subject that was never signed", draft.Attachment, draft.Content)

	ctx := context.Background()
	err := storages.RunAtomic(ctx, func(ctx context.Context, tx store.Storages) error {
		if _, err := tx.Letters.MarkSigned(ctx, draft.ID, foreignHash, "payload", time.Now()); err != nil {
			return err
		}
		_, err := tx.Signatures.Create(ctx, models.Signature{
			ID: "s-1", LetterID: draft.ID, SignerID: signer.ID, SignerName: signer.Name,
		})
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Verify.Verify(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.IsIntegrityValid {
		t.Fatalf("expected tampering detected, got valid=%v integrity=%v", result.IsValid, result.IsIntegrityValid)
	}
}

func TestUser_JSONNeverLeaksSecrets(t *testing.T) {
	svc, _ := newTestServices(t)
	signer, key := seedSigner(t, svc)

	data, err := json.Marshal(signer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) == "" {
		t.Fatal("expected JSON output")
	}
	if strings.Contains(string(data), key) || strings.Contains(string(data), signer.SecretKeyHash) {
		t.Fatalf("user JSON leaked secret material: %s", data)
	}
}
