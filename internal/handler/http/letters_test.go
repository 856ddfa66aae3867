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

func TestSignLetterHandler_Success(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		Sign(gomock.Any(), "letter-1", "user-1", "SK-TEST-KEY", gomock.Any()).
		Return(
			models.Letter{ID: "letter-1", Status: models.StatusSigned, ContentHash: "abc"},
			models.Signature{ID: "sig-1", LetterID: "letter-1"},
			nil,
		)

	body := strings.NewReader(`{"secret_key":"SK-TEST-KEY"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/letters/letter-1/sign", body)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Letter    models.Letter    `json:"letter"`
		Signature models.Signature `json:"signature"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusSigned, resp.Letter.Status)
	assert.Equal(t, "sig-1", resp.Signature.ID)
}

func TestSignLetterHandler_WrongKey(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		Sign(gomock.Any(), "letter-1", "user-1", gomock.Any(), gomock.Any()).
		Return(models.Letter{}, models.Signature{}, service.ErrWrongSecretKey)

	body := strings.NewReader(`{"secret_key":"SK-WRONG"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/letters/letter-1/sign", body)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSignLetterHandler_AlreadySigned(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		Sign(gomock.Any(), "letter-1", "user-1", gomock.Any(), gomock.Any()).
		Return(models.Letter{}, models.Signature{}, store.ErrLetterAlreadySigned)

	body := strings.NewReader(`{"secret_key":"SK-TEST-KEY"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/letters/letter-1/sign", body)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSignLetterHandler_RateLimited(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		Sign(gomock.Any(), "letter-1", "user-1", gomock.Any(), gomock.Any()).
		Return(models.Letter{}, models.Signature{}, &service.RateLimitedError{RemainingSeconds: 42})

	body := strings.NewReader(`{"secret_key":"SK-TEST-KEY"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/letters/letter-1/sign", body)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "42", rr.Header().Get("Retry-After"))
}

func TestSignLetterHandler_MissingKey(t *testing.T) {
	router, _ := newTestRouter(t)

	// validation rejects an empty secret key before the service runs
	body := strings.NewReader(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/api/letters/letter-1/sign", body)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateLetterHandler(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		Create(gomock.Any(), gomock.Any(), "user-1").
		Return(models.Letter{ID: "letter-1", Status: models.StatusDraft}, nil)

	body := strings.NewReader(`{
		"letter_number": "001/A/2024",
		"letter_date": "2024-01-10T00:00:00Z",
		"subject": "Invitation",
		"attachment": "-"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/letters/", body)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCreateLetterHandler_DuplicateNumber(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		Create(gomock.Any(), gomock.Any(), "user-1").
		Return(models.Letter{}, store.ErrLetterNumberExists)

	body := strings.NewReader(`{
		"letter_number": "001/A/2024",
		"letter_date": "2024-01-10T00:00:00Z",
		"subject": "Invitation",
		"attachment": "-"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/letters/", body)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestGetLetterHandler_NotFound(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		Get(gomock.Any(), "missing").
		Return(models.Letter{}, store.ErrLetterNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/letters/missing", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListLettersHandler_StatusFilter(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		List(gomock.Any(), store.LetterFilter{Status: models.StatusSigned}).
		Return([]models.Letter{{ID: "letter-1", Status: models.StatusSigned}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/letters/?status=signed", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var letters []models.Letter
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &letters))
	assert.Len(t, letters, 1)
}

func TestLetterQRCodeHandler(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		QRCode(gomock.Any(), "letter-1").
		Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/letters/letter-1/qr", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
}

func TestLetterQRCodeHandler_Unsigned(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		QRCode(gomock.Any(), "letter-1").
		Return(nil, service.ErrLetterNotSigned)

	req := httptest.NewRequest(http.MethodGet, "/api/letters/letter-1/qr", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestDeleteLetterHandler(t *testing.T) {
	router, m := newTestRouter(t)

	m.letters.EXPECT().
		Delete(gomock.Any(), "letter-1", "user-1").
		Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/letters/letter-1", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
