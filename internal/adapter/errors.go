package adapter

import "errors"

// Sentinel errors mapped from HTTP status codes by mapHTTPError. Callers
// match against them with [errors.Is].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrRateLimited         = errors.New("too many attempts")
	ErrDeadlinePassed      = errors.New("deadline passed")
	ErrInternalServerError = errors.New("internal server error")
)
