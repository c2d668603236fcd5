package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront-gateway/internal/features/auth/domain"
)

// BackendAdapter implements the AuthProvider interface using the storefront
// REST API. It runs on a plain HTTP client: the auth endpoints must not go
// through the bearer transport they feed.
type BackendAdapter struct {
	client  *http.Client
	baseURL string
}

// NewBackendAdapter creates a new auth BackendAdapter.
func NewBackendAdapter(baseURL string, client *http.Client) *BackendAdapter {
	return &BackendAdapter{
		client:  client,
		baseURL: baseURL,
	}
}

// Login exchanges credentials for a token pair.
func (a *BackendAdapter) Login(ctx context.Context, userName, password string) (domain.TokenPair, error) {
	payload := loginRequest{UserName: userName, Password: password}
	return a.postForTokens(ctx, fmt.Sprintf("%s/api/auth/login", a.baseURL), payload)
}

// Refresh exchanges a refresh token for a new token pair.
func (a *BackendAdapter) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	payload := refreshRequest{RefreshToken: refreshToken}
	return a.postForTokens(ctx, fmt.Sprintf("%s/api/auth/refresh_token", a.baseURL), payload)
}

// Me fetches the profile owning the access token.
func (a *BackendAdapter) Me(ctx context.Context, accessToken string) (*domain.Profile, error) {
	url := fmt.Sprintf("%s/api/users/me", a.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth API returned status: %d", resp.StatusCode)
	}

	var raw apiProfile
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &domain.Profile{
		ID:       raw.ID,
		UserName: raw.UserName,
		FullName: raw.FullName,
		Email:    raw.Email,
	}, nil
}

func (a *BackendAdapter) postForTokens(ctx context.Context, url string, payload interface{}) (domain.TokenPair, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.TokenPair{}, fmt.Errorf("auth API returned status: %d", resp.StatusCode)
	}

	var raw apiTokens
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if raw.AccessToken == "" {
		return domain.TokenPair{}, fmt.Errorf("auth API returned an empty access token")
	}

	return domain.TokenPair{
		AccessToken:  raw.AccessToken,
		RefreshToken: raw.RefreshToken,
	}, nil
}

// internal structs for mapping

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type apiTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type apiProfile struct {
	ID       string `json:"_id"`
	UserName string `json:"userName"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
