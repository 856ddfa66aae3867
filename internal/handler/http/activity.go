package http

import (
	"net/http"
	"strconv"

	"github.com/apratama/letter-seal/internal/utils"
)

func (h *Handler) listActivityLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.services.Activity.List(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.Activity.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}
