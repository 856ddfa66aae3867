package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/apratama/letter-seal/models"
)

// memoryCore holds all in-memory state behind a single RWMutex. The
// in-memory store backs DSN-less development runs and the service tests;
// it honors the same sentinels and guards as the PostgreSQL repositories.
type memoryCore struct {
	mu sync.RWMutex

	letters    map[string]models.Letter
	letterNums map[string]string // letter number -> letter ID
	signatures map[string]models.Signature // keyed by letter ID
	users      map[string]models.User
	emails     map[string]string // email -> user ID
	events     map[string]models.Event
	claims     map[string]models.CertificateClaim
	logs       []models.ActivityLog
}

// NewMemoryStorages returns a fully in-memory [Storages]. RunAtomic holds
// the write lock for the whole callback, so a transaction observes and
// produces a consistent snapshot.
func NewMemoryStorages() Storages {
	core := &memoryCore{
		letters:    make(map[string]models.Letter),
		letterNums: make(map[string]string),
		signatures: make(map[string]models.Signature),
		users:      make(map[string]models.User),
		emails:     make(map[string]string),
		events:     make(map[string]models.Event),
		claims:     make(map[string]models.CertificateClaim),
	}

	s := newMemoryRepositorySet(core, false)
	s.atomic = &memoryAtomic{core: core}
	return s
}

func newMemoryRepositorySet(core *memoryCore, inTx bool) Storages {
	return Storages{
		Letters:      &memLetterRepo{core: core, inTx: inTx},
		Signatures:   &memSignatureRepo{core: core, inTx: inTx},
		Users:        &memUserRepo{core: core, inTx: inTx},
		Events:       &memEventRepo{core: core, inTx: inTx},
		Claims:       &memClaimRepo{core: core, inTx: inTx},
		ActivityLogs: &memActivityLogRepo{core: core, inTx: inTx},
	}
}

// memoryAtomic serializes transactions under the core write lock. The
// callback receives lock-free repository views; taking the lock again
// inside would deadlock.
type memoryAtomic struct {
	core *memoryCore
}

func (a *memoryAtomic) RunAtomic(ctx context.Context, fn func(ctx context.Context, s Storages) error) error {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()

	return fn(ctx, newMemoryRepositorySet(a.core, true))
}

type memLetterRepo struct {
	core *memoryCore
	inTx bool
}

func (r *memLetterRepo) Create(_ context.Context, letter models.Letter) (models.Letter, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	if _, taken := r.core.letterNums[letter.LetterNumber]; taken {
		return models.Letter{}, ErrLetterNumberExists
	}

	r.core.letters[letter.ID] = letter
	r.core.letterNums[letter.LetterNumber] = letter.ID
	return letter, nil
}

func (r *memLetterRepo) GetByID(_ context.Context, id string) (models.Letter, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	letter, ok := r.core.letters[id]
	if !ok {
		return models.Letter{}, ErrLetterNotFound
	}
	return letter, nil
}

// GetForUpdate is a plain read here: RunAtomic already holds the write lock,
// so nothing can modify the letter while the callback runs.
func (r *memLetterRepo) GetForUpdate(ctx context.Context, id string) (models.Letter, error) {
	return r.GetByID(ctx, id)
}

func (r *memLetterRepo) List(_ context.Context, filter LetterFilter) ([]models.Letter, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	var letters []models.Letter
	for _, letter := range r.core.letters {
		if filter.Status != "" && letter.Status != filter.Status {
			continue
		}
		if filter.CreatedBy != "" && letter.CreatedBy != filter.CreatedBy {
			continue
		}
		letters = append(letters, letter)
	}
	sort.Slice(letters, func(i, j int) bool {
		return letters[i].CreatedAt.After(letters[j].CreatedAt)
	})
	return letters, nil
}

func (r *memLetterRepo) Update(_ context.Context, id string, update models.LetterUpdate) (models.Letter, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	letter, ok := r.core.letters[id]
	if !ok {
		return models.Letter{}, ErrLetterNotFound
	}
	if letter.Status != models.StatusDraft {
		return models.Letter{}, ErrLetterAlreadySigned
	}

	if update.LetterNumber != nil && *update.LetterNumber != letter.LetterNumber {
		if _, taken := r.core.letterNums[*update.LetterNumber]; taken {
			return models.Letter{}, ErrLetterNumberExists
		}
		delete(r.core.letterNums, letter.LetterNumber)
		r.core.letterNums[*update.LetterNumber] = id
		letter.LetterNumber = *update.LetterNumber
	}
	if update.LetterDate != nil {
		letter.LetterDate = *update.LetterDate
	}
	if update.Subject != nil {
		letter.Subject = *update.Subject
	}
	if update.Attachment != nil {
		letter.Attachment = *update.Attachment
	}
	if update.Content != nil {
		letter.Content = *update.Content
	}
	letter.UpdatedAt = time.Now().UTC()

	r.core.letters[id] = letter
	return letter, nil
}

func (r *memLetterRepo) MarkSigned(_ context.Context, id string, contentHash string, qrPayload string, signedAt time.Time) (models.Letter, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	letter, ok := r.core.letters[id]
	if !ok {
		return models.Letter{}, ErrLetterNotFound
	}
	if letter.Status != models.StatusDraft {
		return models.Letter{}, ErrLetterAlreadySigned
	}

	letter.Status = models.StatusSigned
	letter.ContentHash = contentHash
	letter.QRPayload = qrPayload
	letter.UpdatedAt = signedAt

	r.core.letters[id] = letter
	return letter, nil
}

func (r *memLetterRepo) Delete(_ context.Context, id string) error {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	letter, ok := r.core.letters[id]
	if !ok {
		return ErrLetterNotFound
	}
	if letter.Status != models.StatusDraft {
		return ErrLetterAlreadySigned
	}

	delete(r.core.letters, id)
	delete(r.core.letterNums, letter.LetterNumber)
	return nil
}

type memSignatureRepo struct {
	core *memoryCore
	inTx bool
}

func (r *memSignatureRepo) Create(_ context.Context, signature models.Signature) (models.Signature, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	if _, exists := r.core.signatures[signature.LetterID]; exists {
		return models.Signature{}, ErrLetterAlreadySigned
	}
	if _, exists := r.core.letters[signature.LetterID]; !exists {
		return models.Signature{}, ErrLetterNotFound
	}

	r.core.signatures[signature.LetterID] = signature
	return signature, nil
}

func (r *memSignatureRepo) GetByLetterID(_ context.Context, letterID string) (models.Signature, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	signature, ok := r.core.signatures[letterID]
	if !ok {
		return models.Signature{}, ErrSignatureNotFound
	}
	return signature, nil
}

type memUserRepo struct {
	core *memoryCore
	inTx bool
}

func (r *memUserRepo) Create(_ context.Context, user models.User) (models.User, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	if _, taken := r.core.emails[user.Email]; taken {
		return models.User{}, ErrEmailAlreadyExists
	}

	r.core.users[user.ID] = user
	r.core.emails[user.Email] = user.ID
	return user, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (models.User, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	user, ok := r.core.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	id, ok := r.core.emails[email]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return r.core.users[id], nil
}

func (r *memUserRepo) List(_ context.Context) ([]models.User, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	users := make([]models.User, 0, len(r.core.users))
	for _, user := range r.core.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *memUserRepo) Update(_ context.Context, id string, update models.UserUpdate) (models.User, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	user, ok := r.core.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	if update.Email != nil && *update.Email != user.Email {
		if _, taken := r.core.emails[*update.Email]; taken {
			return models.User{}, ErrEmailAlreadyExists
		}
		delete(r.core.emails, user.Email)
		r.core.emails[*update.Email] = id
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if hash, ok := update.SecretKeyHash(); ok {
		user.SecretKeyHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	r.core.users[id] = user
	return user, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	user, ok := r.core.users[id]
	if !ok {
		return ErrUserNotFound
	}

	delete(r.core.users, id)
	delete(r.core.emails, user.Email)
	return nil
}

type memEventRepo struct {
	core *memoryCore
	inTx bool
}

func (r *memEventRepo) Create(_ context.Context, event models.Event) (models.Event, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	r.core.events[event.ID] = event
	return event, nil
}

func (r *memEventRepo) GetByID(_ context.Context, id string) (models.Event, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	event, ok := r.core.events[id]
	if !ok {
		return models.Event{}, ErrEventNotFound
	}
	return event, nil
}

func (r *memEventRepo) List(_ context.Context) ([]models.Event, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	events := make([]models.Event, 0, len(r.core.events))
	for _, event := range r.core.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events, nil
}

func (r *memEventRepo) Update(_ context.Context, id string, update models.EventUpdate) (models.Event, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	event, ok := r.core.events[id]
	if !ok {
		return models.Event{}, ErrEventNotFound
	}

	if update.Name != nil {
		event.Name = *update.Name
	}
	if update.Date != nil {
		event.Date = *update.Date
	}
	if update.ClaimDeadline != nil {
		event.ClaimDeadline = *update.ClaimDeadline
	}
	if update.TemplateRef != nil {
		event.TemplateRef = *update.TemplateRef
	}
	if update.TemplateConfig != nil {
		event.TemplateConfig = *update.TemplateConfig
	}
	event.UpdatedAt = time.Now().UTC()

	r.core.events[id] = event
	return event, nil
}

// Delete removes the event and cascades to its claims, mirroring the SQL
// foreign key.
func (r *memEventRepo) Delete(_ context.Context, id string) error {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	if _, ok := r.core.events[id]; !ok {
		return ErrEventNotFound
	}

	delete(r.core.events, id)
	for claimID, claim := range r.core.claims {
		if claim.EventID == id {
			delete(r.core.claims, claimID)
		}
	}
	return nil
}

type memClaimRepo struct {
	core *memoryCore
	inTx bool
}

func (r *memClaimRepo) Create(_ context.Context, claim models.CertificateClaim) (models.CertificateClaim, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	if _, exists := r.core.events[claim.EventID]; !exists {
		return models.CertificateClaim{}, ErrEventNotFound
	}

	r.core.claims[claim.ID] = claim
	return claim, nil
}

func (r *memClaimRepo) GetByID(_ context.Context, id string) (models.CertificateClaim, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	claim, ok := r.core.claims[id]
	if !ok {
		return models.CertificateClaim{}, ErrClaimNotFound
	}
	return claim, nil
}

func (r *memClaimRepo) ListByEventID(_ context.Context, eventID string) ([]models.CertificateClaim, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	var claims []models.CertificateClaim
	for _, claim := range r.core.claims {
		if claim.EventID == eventID {
			claims = append(claims, claim)
		}
	}
	sort.Slice(claims, func(i, j int) bool {
		return claims[i].ClaimedAt.Before(claims[j].ClaimedAt)
	})
	return claims, nil
}

type memActivityLogRepo struct {
	core *memoryCore
	inTx bool
}

func (r *memActivityLogRepo) Append(_ context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
	if !r.inTx {
		r.core.mu.Lock()
		defer r.core.mu.Unlock()
	}

	r.core.logs = append(r.core.logs, entry)
	return entry, nil
}

func (r *memActivityLogRepo) List(_ context.Context, limit int) ([]models.ActivityLog, error) {
	if !r.inTx {
		r.core.mu.RLock()
		defer r.core.mu.RUnlock()
	}

	if limit <= 0 {
		limit = 100
	}

	entries := make([]models.ActivityLog, len(r.core.logs))
	copy(entries, r.core.logs)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
