package http

import (
	"encoding/json"
	"net/http"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/utils"
	"github.com/apratama/letter-seal/models"
	"github.com/go-chi/chi/v5"
)

// createUser provisions an account. The response is the only place the
// generated secret key ever appears in the clear.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.services.Users.Create(ctx, req, actorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("userID", created.User.ID).Msg("user created")

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.Users.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.Users.Update(ctx, chi.URLParam(r, "id"), update, actorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.Users.Delete(ctx, chi.URLParam(r, "id"), actorID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resetSecretKey replaces the account's secret key and reveals the new one
// exactly once in the response.
func (h *Handler) resetSecretKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	reset, err := h.services.Users.ResetSecretKey(ctx, chi.URLParam(r, "id"), actorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("userID", reset.User.ID).Msg("secret key reset")

	utils.WriteJSON(w, reset, http.StatusOK)
}
