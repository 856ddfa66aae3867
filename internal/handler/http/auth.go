package http

import (
	"net/http"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/utils"
	"github.com/apratama/letter-seal/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.services.Auth.Login(ctx, req, clientIP(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("userID", result.User.ID).Msg("user successfully logged in")

	utils.WriteJSON(w, result, http.StatusOK)
}
