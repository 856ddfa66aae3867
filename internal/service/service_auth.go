package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apratama/letter-seal/internal/config"
	"github.com/apratama/letter-seal/internal/crypto"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/ratelimit"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/internal/utils"
	"github.com/apratama/letter-seal/models"
	"github.com/golang-jwt/jwt/v5"
)

// authService is the concrete implementation of AuthService. It verifies
// secret keys against their bcrypt hashes behind the shared rate limit
// gate, and owns the JWT token lifecycle.
type authService struct {
	// users is the data-access layer used to look up accounts.
	users store.UserRepository

	// logs receives audit records for logins and failed key attempts.
	logs store.ActivityLogRepository

	// credentials verifies presented secret keys against stored hashes.
	credentials crypto.CredentialService

	// limiter tracks failed attempts per account. Login and letter signing
	// share it: both present the same secret key.
	limiter *ratelimit.Limiter

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	uuid   *utils.UUIDGenerator
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, logs store.ActivityLogRepository,
	credentials crypto.CredentialService, limiter *ratelimit.Limiter,
	cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:         users,
		logs:          logs,
		credentials:   credentials,
		limiter:       limiter,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		uuid:          utils.NewUUIDGenerator(),
		logger:        logger,
	}
}

// Login authenticates an account by email and secret key.
//
// The flow is: lookup, active check, rate limit gate, bcrypt comparison,
// attempt recording. Wrong-key attempts increment the account's counter;
// the attempt that reaches the threshold reports the block instead of a
// plain wrong-key error.
//
// Returns:
//   - ErrInvalidDataProvided if email or secret key is empty.
//   - ErrWrongSecretKey if no account matches or the key does not match.
//   - ErrAccountInactive for deactivated accounts.
//   - A *RateLimitedError while the account is blocked.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, ip string) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.SecretKey == "" {
		log.Error().Str("email", req.Email).Msg("invalid login data provided")
		return models.LoginResult{}, ErrInvalidDataProvided
	}

	user, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// an unknown email reads the same as a wrong key
			return models.LoginResult{}, ErrWrongSecretKey
		}
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.LoginResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.IsActive {
		return models.LoginResult{}, ErrAccountInactive
	}

	if err = a.checkKey(ctx, user, req.SecretKey, ip); err != nil {
		return models.LoginResult{}, err
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("userID", user.ID).Msg("token generation failed")
		return models.LoginResult{}, fmt.Errorf("token generation failed: %w", err)
	}

	a.record(ctx, models.ActivityLog{
		UserID:      user.ID,
		UserName:    user.Name,
		Action:      models.ActionLogin,
		Description: fmt.Sprintf("%s logged in", user.Name),
		IPAddress:   ip,
	})

	return models.LoginResult{User: user, Token: token.SignedString}, nil
}

// checkKey runs the rate limit gate and the bcrypt comparison for one
// secret key attempt, recording the outcome either way.
func (a *authService) checkKey(ctx context.Context, user models.User, secretKey, ip string) error {
	log := logger.FromContext(ctx)

	status, err := a.limiter.IsBlocked(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("userID", user.ID).Msg("rate limit check failed")
		return fmt.Errorf("rate limit check failed: %w", err)
	}
	if status.Blocked {
		return &RateLimitedError{RemainingSeconds: status.RemainingSeconds}
	}

	matches := a.credentials.VerifySecretKey(secretKey, user.SecretKeyHash)

	status, err = a.limiter.RecordAttempt(ctx, user.ID, matches)
	if err != nil {
		log.Err(err).Str("userID", user.ID).Msg("rate limit recording failed")
		return fmt.Errorf("rate limit recording failed: %w", err)
	}

	if !matches {
		a.record(ctx, models.ActivityLog{
			UserID:      user.ID,
			UserName:    user.Name,
			Action:      models.ActionFailedKeyAttempt,
			Description: fmt.Sprintf("failed secret key attempt for %s", user.Name),
			IPAddress:   ip,
		})

		if status.Blocked {
			return &RateLimitedError{RemainingSeconds: status.RemainingSeconds}
		}
		return ErrWrongSecretKey
	}

	return nil
}

// ParseToken validates a compact JWT string and returns its decoded form.
//
// Returns ErrTokenIsExpired for expired tokens and ErrInvalidDataProvided
// for anything else that fails validation.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		log.Err(err).Msg("token validation failed")
		return models.Token{}, ErrInvalidDataProvided
	}

	return token, nil
}

// record appends an audit entry best-effort. A failed audit write is
// reported in logs but never fails the user-visible operation.
func (a *authService) record(ctx context.Context, entry models.ActivityLog) {
	entry.ID = a.uuid.Generate()
	entry.CreatedAt = time.Now().UTC()
	if _, err := a.logs.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).Str("action", string(entry.Action)).Msg("activity log write failed")
	}
}
