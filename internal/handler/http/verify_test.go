package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apratama/letter-seal/internal/service"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestVerifyHandler_Letter(t *testing.T) {
	router, m := newTestRouter(t)

	m.verify.EXPECT().
		Verify(gomock.Any(), "letter-1").
		Return(models.VerificationResult{
			Type:             models.DocumentLetter,
			IsValid:          true,
			IsIntegrityValid: true,
			Letter:           &models.LetterSummary{ID: "letter-1", Status: models.StatusSigned},
			Signature:        &models.SignatureSummary{ID: "sig-1", SignerName: "Budi Santoso"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/verify/letter-1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result models.VerificationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, models.DocumentLetter, result.Type)
	assert.True(t, result.IsValid)
	require.NotNil(t, result.Signature)
	assert.Equal(t, "Budi Santoso", result.Signature.SignerName)
}

func TestVerifyHandler_NotFound(t *testing.T) {
	router, m := newTestRouter(t)

	m.verify.EXPECT().
		Verify(gomock.Any(), "missing").
		Return(models.VerificationResult{}, service.ErrDocumentNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/verify/missing", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestClaimCertificateHandler(t *testing.T) {
	router, m := newTestRouter(t)

	m.events.EXPECT().
		Claim(gomock.Any(), "event-1", models.ClaimCertificateRequest{RecipientName: "Siti Rahayu", CallSign: "YD1ABC"}, gomock.Any()).
		Return(models.CertificateClaim{
			ID:                "claim-1",
			EventID:           "event-1",
			RecipientName:     "Siti Rahayu",
			CertificateNumber: "CERT/EVEN/CLAI",
		}, nil)

	body := strings.NewReader(`{"recipient_name":"Siti Rahayu","call_sign":"YD1ABC"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/claims", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var claim models.CertificateClaim
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &claim))
	assert.Equal(t, "claim-1", claim.ID)
}

func TestClaimCertificateHandler_DeadlinePassed(t *testing.T) {
	router, m := newTestRouter(t)

	m.events.EXPECT().
		Claim(gomock.Any(), "event-1", gomock.Any(), gomock.Any()).
		Return(models.CertificateClaim{}, service.ErrDeadlinePassed)

	body := strings.NewReader(`{"recipient_name":"Siti Rahayu"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/claims", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusGone, rr.Code)
}

func TestClaimCertificateHandler_MissingName(t *testing.T) {
	router, _ := newTestRouter(t)

	body := strings.NewReader(`{"call_sign":"YD1ABC"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/claims", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResetSecretKeyHandler(t *testing.T) {
	router, m := newTestRouter(t)

	m.users.EXPECT().
		ResetSecretKey(gomock.Any(), "user-2", "user-1").
		Return(models.CreatedUser{
			User:      models.User{ID: "user-2"},
			SecretKey: "SK-FRESH-KEY",
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/users/user-2/reset-key", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var created models.CreatedUser
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "SK-FRESH-KEY", created.SecretKey)
}

func TestStatsHandler(t *testing.T) {
	router, m := newTestRouter(t)

	m.activity.EXPECT().
		Stats(gomock.Any()).
		Return(models.Stats{TotalLetters: 3, SignedLetters: 2, DraftLetters: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalLetters)
}

func TestListActivityLogsHandler_BadLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/logs?limit=banana", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteUserHandler_NotFound(t *testing.T) {
	router, m := newTestRouter(t)

	m.users.EXPECT().
		Delete(gomock.Any(), "missing", "user-1").
		Return(store.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/missing", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
