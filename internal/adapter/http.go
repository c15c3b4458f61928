package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/models"
)

const retryWaitTime = 200 * time.Millisecond

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. The base URL is normalized from cfg.HTTPAddress; a bare
// host:port gets the http scheme.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClientWithRetry(cfg.RequestTimeout, cfg.RetryCount, retryWaitTime)
	client.
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidURL
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SignUp implements [ServerAdapter] via POST /api/auth/signup.
func (h *httpServerAdapter) SignUp(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/signup", "signup", creds)
}

// Login implements [ServerAdapter] via POST /api/auth/login.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/login", "login", creds)
}

// authenticate posts credentials and keeps the token from the body, or from
// the Authorization header when the body has none.
func (h *httpServerAdapter) authenticate(ctx context.Context, path, op string, creds models.Credentials) (models.AuthResponse, error) {
	var authResp models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&authResp).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, transportError(op+" request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("op", op).Int("status", resp.StatusCode()).Msg("authentication rejected")
		return models.AuthResponse{}, err
	}

	if authResp.Token == "" {
		token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if err != nil {
			return models.AuthResponse{}, fmt.Errorf("%s: %w", op, ErrMissingToken)
		}
		authResp.Token = token
	}

	h.SetToken(authResp.Token)
	return authResp, nil
}

// FetchSalt implements [ServerAdapter] via GET /api/crypto/salt?email=.
func (h *httpServerAdapter) FetchSalt(ctx context.Context, email string) (string, error) {
	var saltResp models.SaltResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		SetResult(&saltResp).
		Get("/api/crypto/salt")
	if err != nil {
		return "", transportError("fetch salt request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if saltResp.Salt == "" {
		return "", fmt.Errorf("fetch salt: %w", ErrDecodeResponse)
	}

	return saltResp.Salt, nil
}

// ListVault implements [ServerAdapter] via GET /api/vault.
func (h *httpServerAdapter) ListVault(ctx context.Context, hintPrefix string) ([]models.VaultRecord, error) {
	var records []models.VaultRecord

	req := h.authedRequest(ctx).SetResult(&records)
	if hintPrefix != "" {
		req.SetQueryParam("hint", hintPrefix)
	}

	resp, err := req.Get("/api/vault")
	if err != nil {
		return nil, transportError("list vault request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	h.logger.Debug().Int("records", len(records)).Msg("vault listed")
	return records, nil
}

// CreateRecord implements [ServerAdapter] via POST /api/vault.
func (h *httpServerAdapter) CreateRecord(ctx context.Context, envelope models.Envelope) (models.VaultRecord, error) {
	var record models.VaultRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(envelope).
		SetResult(&record).
		Post("/api/vault")
	if err != nil {
		return models.VaultRecord{}, transportError("create record request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return record, nil
}

// UpdateRecord implements [ServerAdapter] via PUT /api/vault/{id}.
func (h *httpServerAdapter) UpdateRecord(ctx context.Context, id string, envelope models.Envelope) (models.VaultRecord, error) {
	var record models.VaultRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(envelope).
		SetResult(&record).
		Put("/api/vault/{id}")
	if err != nil {
		return models.VaultRecord{}, transportError("update record request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return record, nil
}

// DeleteRecord implements [ServerAdapter] via DELETE /api/vault/{id}.
func (h *httpServerAdapter) DeleteRecord(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Delete("/api/vault/{id}")
	if err != nil {
		return transportError("delete record request", err)
	}

	return mapHTTPError(resp)
}

// Version implements [ServerAdapter] via GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, transportError("version request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}

	return info, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
