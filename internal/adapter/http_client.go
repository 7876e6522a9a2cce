package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mintid/mintid/internal/utils"
	"github.com/mintid/mintid/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpBackendAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPBackendAdapter(cfg HTTPClientConfig) BackendAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpBackendAdapter{client: cli}
}

func (h *httpBackendAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpBackendAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpBackendAdapter) Authenticate(ctx context.Context, email string, password string) (models.Session, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Email: email, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return models.Session{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Session{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Session{}, fmt.Errorf("login parse user id: %w", err)
	}

	h.SetToken(token)
	return models.Session{
		UserID:        userID,
		Token:         token,
		EstablishedAt: time.Now(),
	}, nil
}

func (h *httpBackendAdapter) SignOut(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/logout")

	// The token is dropped regardless: sign-out must leave the client
	// unauthenticated even when the backend is unreachable.
	h.SetToken("")

	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpBackendAdapter) RevokeSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("revoke request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpBackendAdapter) CurrentSession(ctx context.Context) (models.SessionResponse, error) {
	resp, err := h.authedRequest(ctx).Get("/api/auth/session")
	if err != nil {
		return models.SessionResponse{}, fmt.Errorf("session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionResponse{}, err
	}

	var sr models.SessionResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return models.SessionResponse{}, fmt.Errorf("decode session response: %w", err)
	}
	return sr, nil
}

func (h *httpBackendAdapter) QueryProfileByUsername(ctx context.Context, username string, includeInactive bool) (models.UserProfile, error) {
	if username == "" {
		return models.UserProfile{}, errors.New("empty username")
	}

	req := h.authedRequest(ctx).SetQueryParam("username", username)
	if includeInactive {
		req.SetQueryParam("include_inactive", "true")
	}

	resp, err := req.Get("/api/profiles/lookup")
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("profile lookup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, err
	}

	var profile models.UserProfile
	if err = json.Unmarshal(resp.Body(), &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("decode profile response: %w", err)
	}
	return profile, nil
}

func (h *httpBackendAdapter) CurrentProfile(ctx context.Context) (models.UserProfile, error) {
	resp, err := h.authedRequest(ctx).Get("/api/profiles/me")
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("current profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, err
	}

	var profile models.UserProfile
	if err = json.Unmarshal(resp.Body(), &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("decode profile response: %w", err)
	}
	return profile, nil
}

func (h *httpBackendAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpBackendAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
