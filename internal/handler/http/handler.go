package http

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/service"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	services *service.Services
	validate *validator.Validate

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		validate: validator.New(),
		logger:   logger,
	}
}

// decodeAndValidate decodes the request body into dst and runs the
// validator over it. On failure it writes a 400 response and returns false;
// the caller should simply return.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	log := logger.FromRequest(r)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		log.Err(err).Msg("request validation failed")
		http.Error(w, "request validation failed", http.StatusBadRequest)
		return false
	}

	return true
}

// clientIP extracts the caller's address for audit records. The X-Real-IP
// header wins when a reverse proxy sets it.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
