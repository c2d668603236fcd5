package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-gateway/internal/features/auth/domain"
	"storefront-gateway/internal/features/auth/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthProvider struct {
	pair    domain.TokenPair
	profile *domain.Profile
	err     error
}

func (s *stubAuthProvider) Login(ctx context.Context, userName, password string) (domain.TokenPair, error) {
	return s.pair, s.err
}

func (s *stubAuthProvider) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	return s.pair, s.err
}

func (s *stubAuthProvider) Me(ctx context.Context, accessToken string) (*domain.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type stubTokenStore struct {
	pairs map[string]domain.TokenPair
}

func (s *stubTokenStore) Save(ctx context.Context, userID string, pair domain.TokenPair) error {
	s.pairs[userID] = pair
	return nil
}

func (s *stubTokenStore) Load(ctx context.Context, userID string) (*domain.TokenPair, error) {
	if pair, ok := s.pairs[userID]; ok {
		return &pair, nil
	}
	return nil, nil
}

func (s *stubTokenStore) Clear(ctx context.Context, userID string) error {
	delete(s.pairs, userID)
	return nil
}

func newTestApp(provider *stubAuthProvider, store *stubTokenStore) *fiber.App {
	if store == nil {
		store = &stubTokenStore{pairs: map[string]domain.TokenPair{}}
	}
	svc := service.NewAuthService(provider, store)
	h := NewAuthHandler(svc)

	app := fiber.New()
	app.Post("/auth/login", h.Login)
	app.Post("/auth/logout", h.Logout)
	app.Get("/auth/me", h.Me)
	return app
}

func TestAuthHandler_Login(t *testing.T) {
	provider := &stubAuthProvider{
		pair:    domain.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"},
		profile: &domain.Profile{ID: "user-1", UserName: "milklover"},
	}
	store := &stubTokenStore{pairs: map[string]domain.TokenPair{}}
	app := newTestApp(provider, store)

	body := `{"user_name": "milklover", "password": "s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var session domain.Session
	require.NoError(t, json.Unmarshal(raw, &session))
	assert.Equal(t, "user-1", session.Profile.ID)
	assert.Equal(t, "access-1", session.Tokens.AccessToken)

	assert.Contains(t, store.pairs, "user-1")
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	app := newTestApp(&stubAuthProvider{}, nil)

	body := `{"user_name": "milklover"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_Login_BackendFailure(t *testing.T) {
	app := newTestApp(&stubAuthProvider{err: errors.New("backend down")}, nil)

	body := `{"user_name": "milklover", "password": "s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestAuthHandler_Logout(t *testing.T) {
	store := &stubTokenStore{pairs: map[string]domain.TokenPair{
		"user-1": {AccessToken: "access-1"},
	}}
	app := newTestApp(&stubAuthProvider{}, store)

	body := `{"user_id": "user-1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotContains(t, store.pairs, "user-1")
}

func TestAuthHandler_Me(t *testing.T) {
	provider := &stubAuthProvider{profile: &domain.Profile{ID: "user-1", FullName: "Nguyen Van A"}}
	store := &stubTokenStore{pairs: map[string]domain.TokenPair{
		"user-1": {AccessToken: "access-1"},
	}}
	app := newTestApp(provider, store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/me?user_id=user-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(raw, &profile))
	assert.Equal(t, "Nguyen Van A", profile.FullName)
}

func TestAuthHandler_Me_NotAuthenticated(t *testing.T) {
	app := newTestApp(&stubAuthProvider{}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/me?user_id=ghost", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
