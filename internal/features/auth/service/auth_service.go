package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-gateway/internal/features/auth/domain"
	"storefront-gateway/internal/features/auth/ports"

	"golang.org/x/sync/singleflight"
)

// ErrNotAuthenticated is returned when no token pair is stored for the user.
var ErrNotAuthenticated = errors.New("user is not authenticated")

// ErrMissingCredentials is returned when a login is submitted without a user
// name or password.
var ErrMissingCredentials = errors.New("user name and password are required")

// AuthService handles login, logout and token upkeep. It doubles as the
// token source for the outbound HTTP client: concurrent refreshes for the
// same user collapse into one backend call.
type AuthService struct {
	provider ports.AuthProvider
	tokens   ports.TokenStore
	group    singleflight.Group
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(provider ports.AuthProvider, tokens ports.TokenStore) *AuthService {
	return &AuthService{
		provider: provider,
		tokens:   tokens,
	}
}

// Login exchanges credentials for a token pair, resolves the owning profile
// and persists the pair under the profile's ID.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*domain.Session, error) {
	if userName == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	pair, err := s.provider.Login(ctx, userName, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	profile, err := s.provider.Me(ctx, pair.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	if err := s.tokens.Save(ctx, profile.ID, pair); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}

	return &domain.Session{Profile: *profile, Tokens: pair}, nil
}

// Logout drops the user's stored token pair.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.tokens.Clear(ctx, userID); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Profile fetches the user's account view with their stored access token.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	pair, err := s.tokens.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, ErrNotAuthenticated
	}

	profile, err := s.provider.Me(ctx, pair.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

// AccessToken returns the user's current access token.
func (s *AuthService) AccessToken(ctx context.Context, userID string) (string, error) {
	pair, err := s.tokens.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	if pair == nil {
		return "", ErrNotAuthenticated
	}
	return pair.AccessToken, nil
}

// RefreshAccess rotates the user's token pair and returns the new access
// token. Concurrent callers for the same user share one refresh; a caller
// whose stale token was already rotated gets the stored token without any
// backend call.
func (s *AuthService) RefreshAccess(ctx context.Context, userID, stale string) (string, error) {
	token, err, _ := s.group.Do(userID, func() (interface{}, error) {
		pair, err := s.tokens.Load(ctx, userID)
		if err != nil {
			return "", err
		}
		if pair == nil {
			return "", ErrNotAuthenticated
		}

		// Another request already rotated the pair.
		if pair.AccessToken != stale {
			return pair.AccessToken, nil
		}

		fresh, err := s.provider.Refresh(ctx, pair.RefreshToken)
		if err != nil {
			return "", fmt.Errorf("token refresh failed: %w", err)
		}

		if err := s.tokens.Save(ctx, userID, fresh); err != nil {
			return "", fmt.Errorf("failed to persist tokens: %w", err)
		}
		return fresh.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}
