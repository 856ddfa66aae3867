package service

import (
	"context"
	"fmt"
	"time"

	"github.com/apratama/letter-seal/internal/crypto"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/ratelimit"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/internal/utils"
	"github.com/apratama/letter-seal/models"
)

// userService is the concrete implementation of UserService. It is the only
// code path that ever sees a raw secret key on the server side, and only
// between generation and the response that reveals it.
type userService struct {
	users       store.UserRepository
	logs        store.ActivityLogRepository
	credentials crypto.CredentialService
	limiter     *ratelimit.Limiter
	uuid        *utils.UUIDGenerator
	now         func() time.Time
	logger      *logger.Logger
}

// NewUserService constructs a UserService over the given repositories.
func NewUserService(users store.UserRepository, logs store.ActivityLogRepository,
	credentials crypto.CredentialService, limiter *ratelimit.Limiter, logger *logger.Logger) UserService {
	return &userService{
		users:       users,
		logs:        logs,
		credentials: credentials,
		limiter:     limiter,
		uuid:        utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      logger,
	}
}

// Create provisions an account with a freshly generated secret key. The raw
// key exists only in the returned CreatedUser; the store receives the hash.
func (s *userService) Create(ctx context.Context, req models.CreateUserRequest, actorID string) (models.CreatedUser, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" || req.Email == "" || req.Role == "" {
		return models.CreatedUser{}, ErrInvalidDataProvided
	}

	secretKey, err := s.credentials.GenerateSecretKey()
	if err != nil {
		log.Err(err).Msg("secret key generation failed")
		return models.CreatedUser{}, fmt.Errorf("secret key generation failed: %w", err)
	}

	hash, err := s.credentials.HashSecretKey(secretKey)
	if err != nil {
		log.Err(err).Msg("secret key hashing failed")
		return models.CreatedUser{}, fmt.Errorf("secret key hashing failed: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.now().UTC()
	user := models.User{
		ID:            s.uuid.Generate(),
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		SecretKeyHash: hash,
		IsActive:      isActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.CreatedUser{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	s.record(ctx, actorID, models.ActionCreateUser,
		fmt.Sprintf("created user %s (%s)", created.Name, created.Email),
		map[string]any{"user_id": created.ID})

	return models.CreatedUser{User: created, SecretKey: secretKey}, nil
}

func (s *userService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Update(ctx context.Context, id string, update models.UserUpdate, actorID string) (models.User, error) {
	log := logger.FromContext(ctx)

	updated, err := s.users.Update(ctx, id, update)
	if err != nil {
		log.Err(err).Str("userID", id).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	s.record(ctx, actorID, models.ActionUpdateUser,
		fmt.Sprintf("updated user %s", updated.Name),
		map[string]any{"user_id": id})

	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id string, actorID string) error {
	log := logger.FromContext(ctx)

	if err := s.users.Delete(ctx, id); err != nil {
		log.Err(err).Str("userID", id).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	s.record(ctx, actorID, models.ActionDeleteUser,
		"deleted user",
		map[string]any{"user_id": id})

	return nil
}

// ResetSecretKey replaces the account's stored hash with one for a new key
// and reveals that key once. Clearing the rate limit entry lets the owner
// use the fresh key immediately even if the old one was being brute-forced.
func (s *userService) ResetSecretKey(ctx context.Context, id string, actorID string) (models.CreatedUser, error) {
	log := logger.FromContext(ctx)

	secretKey, err := s.credentials.GenerateSecretKey()
	if err != nil {
		log.Err(err).Msg("secret key generation failed")
		return models.CreatedUser{}, fmt.Errorf("secret key generation failed: %w", err)
	}

	hash, err := s.credentials.HashSecretKey(secretKey)
	if err != nil {
		log.Err(err).Msg("secret key hashing failed")
		return models.CreatedUser{}, fmt.Errorf("secret key hashing failed: %w", err)
	}

	updated, err := s.users.Update(ctx, id, models.UserUpdate{}.WithSecretKeyHash(hash))
	if err != nil {
		log.Err(err).Str("userID", id).Msg("secret key reset ended with error")
		return models.CreatedUser{}, fmt.Errorf("secret key reset ended with error: %w", err)
	}

	if err = s.limiter.Clear(ctx, id); err != nil {
		log.Err(err).Str("userID", id).Msg("rate limit clear failed")
	}

	s.record(ctx, actorID, models.ActionResetSecretKey,
		fmt.Sprintf("reset secret key for %s", updated.Name),
		map[string]any{"user_id": id})

	return models.CreatedUser{User: updated, SecretKey: secretKey}, nil
}

func (s *userService) record(ctx context.Context, actorID string, action models.ActivityAction, description string, metadata map[string]any) {
	entry := models.ActivityLog{
		ID:          s.uuid.Generate(),
		UserID:      actorID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   s.now().UTC(),
	}
	if actor, err := s.users.GetByID(ctx, actorID); err == nil {
		entry.UserName = actor.Name
	}
	if _, err := s.logs.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).Str("action", string(action)).Msg("activity log write failed")
	}
}
