package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongSecretKey      = errors.New("wrong secret key")
	ErrAccountInactive     = errors.New("account is inactive")

	ErrTokenIsExpired = errors.New("token is expired")

	// ErrRateLimited marks every rate limit rejection; match with
	// errors.Is. The concrete value is usually a [RateLimitedError]
	// carrying the remaining block time.
	ErrRateLimited = errors.New("too many failed attempts")

	// ErrDeadlinePassed is returned when a certificate claim arrives after
	// the event's claim deadline.
	ErrDeadlinePassed = errors.New("claim deadline has passed")

	// ErrDocumentNotFound is returned when a verification lookup matches
	// neither a letter nor a certificate claim.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrLetterNotSigned is returned when a QR render targets a letter
	// that is still a draft.
	ErrLetterNotSigned = errors.New("letter is not signed")
)

// RateLimitedError reports an active block and how long it has left.
// It unwraps to [ErrRateLimited].
type RateLimitedError struct {
	RemainingSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many failed attempts, retry in %d seconds", e.RemainingSeconds)
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
