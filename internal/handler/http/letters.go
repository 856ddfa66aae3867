package http

import (
	"encoding/json"
	"net/http"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/internal/utils"
	"github.com/apratama/letter-seal/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createLetter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateLetterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	letter, err := h.services.Letters.Create(ctx, req, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("letterID", letter.ID).Msg("letter created")

	utils.WriteJSON(w, letter, http.StatusCreated)
}

func (h *Handler) listLetters(w http.ResponseWriter, r *http.Request) {
	filter := store.LetterFilter{
		Status:    models.LetterStatus(r.URL.Query().Get("status")),
		CreatedBy: r.URL.Query().Get("created_by"),
	}

	letters, err := h.services.Letters.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, letters, http.StatusOK)
}

func (h *Handler) getLetter(w http.ResponseWriter, r *http.Request) {
	letter, err := h.services.Letters.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, letter, http.StatusOK)
}

func (h *Handler) updateLetter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.LetterUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	letter, err := h.services.Letters.Update(ctx, chi.URLParam(r, "id"), update, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, letter, http.StatusOK)
}

func (h *Handler) deleteLetter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.Letters.Delete(ctx, chi.URLParam(r, "id"), userID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// signLetter performs the one-way draft → signed transition. The signer is
// the authenticated user; the payload carries only the secret key.
func (h *Handler) signLetter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.SignLetterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	meta := models.SignatureMetadata{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}

	letter, signature, err := h.services.Letters.Sign(ctx, chi.URLParam(r, "id"), userID, req.SecretKey, meta)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("letterID", letter.ID).Str("signatureID", signature.ID).Msg("letter signed")

	utils.WriteJSON(w, map[string]any{
		"letter":    letter,
		"signature": signature,
	}, http.StatusOK)
}

func (h *Handler) letterQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.services.Letters.QRCode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	//nolint:errcheck // nothing sensible to do if the response write fails
	w.Write(png)
}
