package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apratama/letter-seal/internal/config"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	cfg := config.ClientAdapter{ServerURL: serverURL}

	a, err := NewHTTPServerAdapter(cfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	want := models.LoginResult{
		User:  models.User{ID: "user-1", Email: "budi@sekolah.id", Name: "Budi Santoso"},
		Token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VyX2lkIjoidXNlci0xIn0.signature",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.LoginRequest{Email: "budi@sekolah.id", SecretKey: "SK-TEST"})

	require.NoError(t, err)
	assert.Equal(t, want.User.Email, got.User.Email)
	assert.Equal(t, want.Token, a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid email or secret key"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "budi@sekolah.id", SecretKey: "SK-WRONG"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestLogin_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "900")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"too many failed login attempts"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "budi@sekolah.id", SecretKey: "SK-WRONG"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "900")
}

// ── ListLetters ──────────────────────────────────────────────────────────────

func TestListLetters_Success(t *testing.T) {
	want := []models.Letter{
		{ID: "letter-1", LetterNumber: "421/SMA-1/VIII/2026", Subject: "Field trip permission"},
		{ID: "letter-2", LetterNumber: "422/SMA-1/VIII/2026", Subject: "Exam schedule"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/letters", r.URL.Path)
		assert.Equal(t, "Bearer sometoken", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.ListLetters(context.Background(), store.LetterFilter{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0].LetterNumber, got[0].LetterNumber)
}

func TestListLetters_StatusFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "draft", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.ListLetters(context.Background(), store.LetterFilter{Status: models.StatusDraft})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListLetters_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token is expired"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ListLetters(context.Background(), store.LetterFilter{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── GetLetter ────────────────────────────────────────────────────────────────

func TestGetLetter_Success(t *testing.T) {
	want := models.Letter{ID: "letter-1", LetterNumber: "421/SMA-1/VIII/2026"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/letters/letter-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.GetLetter(context.Background(), "letter-1")

	require.NoError(t, err)
	assert.Equal(t, want.LetterNumber, got.LetterNumber)
}

func TestGetLetter_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"letter not found"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetLetter(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── SignLetter ───────────────────────────────────────────────────────────────

func TestSignLetter_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/letters/letter-1/sign", r.URL.Path)

		var body models.SignLetterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SK-TEST", body.SecretKey)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"letter":{"id":"letter-1","status":"signed"},"signature":{"id":"sig-1","letter_id":"letter-1"}}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	letter, signature, err := a.SignLetter(context.Background(), "letter-1", "SK-TEST")

	require.NoError(t, err)
	assert.Equal(t, models.StatusSigned, letter.Status)
	assert.Equal(t, "letter-1", signature.LetterID)
}

func TestSignLetter_AlreadySigned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"letter is already signed"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, _, err := a.SignLetter(context.Background(), "letter-1", "SK-TEST")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSignLetter_WrongKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid email or secret key"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, _, err := a.SignLetter(context.Background(), "letter-1", "SK-WRONG")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── LetterQR ─────────────────────────────────────────────────────────────────

func TestLetterQR_Success(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/letters/letter-1/qr", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.LetterQR(context.Background(), "letter-1")

	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestLetterQR_NotSigned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"letter is not signed"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.LetterQR(context.Background(), "letter-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

// ── Verify ───────────────────────────────────────────────────────────────────

func TestVerify_Success(t *testing.T) {
	want := models.VerificationResult{
		Type:    models.DocumentLetter,
		IsValid: true,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/verify/letter-1", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.Verify(context.Background(), "letter-1")

	require.NoError(t, err)
	assert.Equal(t, want.Type, got.Type)
	assert.True(t, got.IsValid)
}

func TestVerify_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"document not found"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Verify(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerify_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Verify(context.Background(), "letter-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
