package http

import (
	"encoding/json"
	"net/http"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/utils"
	"github.com/apratama/letter-seal/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateEventRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	event, err := h.services.Events.Create(ctx, req, actorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("eventID", event.ID).Msg("event created")

	utils.WriteJSON(w, event, http.StatusCreated)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.services.Events.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, events, http.StatusOK)
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.services.Events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, event, http.StatusOK)
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.EventUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	event, err := h.services.Events.Update(ctx, chi.URLParam(r, "id"), update, actorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, event, http.StatusOK)
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.Events.Delete(ctx, chi.URLParam(r, "id"), actorID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// claimCertificate is the public claiming endpoint: no account is required,
// only a recipient name while the event deadline has not passed.
func (h *Handler) claimCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ClaimCertificateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	claim, err := h.services.Events.Claim(ctx, chi.URLParam(r, "id"), req, clientIP(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("claimID", claim.ID).Str("eventID", claim.EventID).Msg("certificate claimed")

	utils.WriteJSON(w, claim, http.StatusCreated)
}

func (h *Handler) listClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.services.Events.ListClaims(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, claims, http.StatusOK)
}

// claimQRCode serves the certificate QR image. Public: claim IDs are
// unguessable UUIDs handed out at claim time.
func (h *Handler) claimQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.services.Events.ClaimQRCode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	//nolint:errcheck // nothing sensible to do if the response write fails
	w.Write(png)
}
