package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/service"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongSecretKey:      http.StatusUnauthorized,
	service.ErrAccountInactive:     http.StatusForbidden,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,
	service.ErrRateLimited:         http.StatusTooManyRequests,
	service.ErrDeadlinePassed:      http.StatusGone,
	service.ErrDocumentNotFound:    http.StatusNotFound,
	service.ErrLetterNotSigned:     http.StatusConflict,

	store.ErrLetterNotFound:      http.StatusNotFound,
	store.ErrLetterAlreadySigned: http.StatusConflict,
	store.ErrLetterNumberExists:  http.StatusConflict,
	store.ErrSignatureNotFound:   http.StatusNotFound,
	store.ErrUserNotFound:        http.StatusNotFound,
	store.ErrEmailAlreadyExists:  http.StatusConflict,
	store.ErrEventNotFound:       http.StatusNotFound,
	store.ErrClaimNotFound:       http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError maps a service or store error to its HTTP status and writes
// a JSON error body. Rate limit errors additionally carry a Retry-After
// header with the remaining block time.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	var rateErr *service.RateLimitedError
	if errors.As(err, &rateErr) {
		w.Header().Set("Retry-After", strconv.Itoa(rateErr.RemainingSeconds))
	}

	if status == http.StatusInternalServerError {
		log.Err(err).Msg("unexpected error occurred during request handling")
		utils.WriteJSONError(w, http.StatusText(status), status)
		return
	}

	log.Err(err).Int("status", status).Msg("request rejected")
	utils.WriteJSONError(w, err.Error(), status)
}
