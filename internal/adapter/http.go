package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/apratama/letter-seal/internal/config"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.ServerURL and configures the underlying client with the resolved
// base URL and request timeout.
//
// Returns an error if cfg.ServerURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the session token from the response body
// is stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	var result models.LoginResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/login")
	if err != nil {
		return models.LoginResult{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResult{}, err
	}

	h.SetToken(result.Token)
	return result, nil
}

// ListLetters implements [ServerAdapter]. Filter fields translate to the
// status and created_by query parameters of GET /api/letters.
func (h *httpServerAdapter) ListLetters(ctx context.Context, filter store.LetterFilter) ([]models.Letter, error) {
	req := h.authedRequest(ctx)
	if filter.Status != "" {
		req.SetQueryParam("status", string(filter.Status))
	}
	if filter.CreatedBy != "" {
		req.SetQueryParam("created_by", filter.CreatedBy)
	}

	resp, err := req.Get("/api/letters")
	if err != nil {
		return nil, fmt.Errorf("list letters request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var letters []models.Letter
	if err = json.Unmarshal(resp.Body(), &letters); err != nil {
		return nil, fmt.Errorf("decode letters response: %w", err)
	}

	return letters, nil
}

// GetLetter implements [ServerAdapter].
func (h *httpServerAdapter) GetLetter(ctx context.Context, id string) (models.Letter, error) {
	resp, err := h.authedRequest(ctx).Get("/api/letters/" + id)
	if err != nil {
		return models.Letter{}, fmt.Errorf("get letter request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Letter{}, err
	}

	var letter models.Letter
	if err = json.Unmarshal(resp.Body(), &letter); err != nil {
		return models.Letter{}, fmt.Errorf("decode letter response: %w", err)
	}

	return letter, nil
}

// SignLetter implements [ServerAdapter]. It POSTs the secret key to
// POST /api/letters/{id}/sign and decodes the sealed letter together with
// its signature.
func (h *httpServerAdapter) SignLetter(ctx context.Context, id string, secretKey string) (models.Letter, models.Signature, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SignLetterRequest{SecretKey: secretKey}).
		Post("/api/letters/" + id + "/sign")
	if err != nil {
		return models.Letter{}, models.Signature{}, fmt.Errorf("sign letter request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Letter{}, models.Signature{}, err
	}

	var result struct {
		Letter    models.Letter    `json:"letter"`
		Signature models.Signature `json:"signature"`
	}
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.Letter{}, models.Signature{}, fmt.Errorf("decode sign response: %w", err)
	}

	return result.Letter, result.Signature, nil
}

// LetterQR implements [ServerAdapter]. The response body is the raw PNG.
func (h *httpServerAdapter) LetterQR(ctx context.Context, id string) ([]byte, error) {
	resp, err := h.authedRequest(ctx).Get("/api/letters/" + id + "/qr")
	if err != nil {
		return nil, fmt.Errorf("letter qr request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// Verify implements [ServerAdapter]. The endpoint is public; no token is
// attached.
func (h *httpServerAdapter) Verify(ctx context.Context, id string) (models.VerificationResult, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/verify/" + id)
	if err != nil {
		return models.VerificationResult{}, fmt.Errorf("verify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerificationResult{}, err
	}

	var result models.VerificationResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.VerificationResult{}, fmt.Errorf("decode verify response: %w", err)
	}

	return result, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
