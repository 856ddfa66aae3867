package http

import (
	"net/http"

	"github.com/apratama/letter-seal/internal/utils"
	"github.com/go-chi/chi/v5"
)

// verify is the public verification endpoint. It resolves the scanned
// document ID to a letter or a certificate claim and reports validity.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.Verify.Verify(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
