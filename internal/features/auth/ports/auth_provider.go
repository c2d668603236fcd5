package ports

import (
	"context"

	"storefront-gateway/internal/features/auth/domain"
)

// AuthProvider defines the contract for the backend's authentication
// endpoints.
type AuthProvider interface {
	// Login exchanges credentials for a token pair.
	Login(ctx context.Context, userName, password string) (domain.TokenPair, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)

	// Me fetches the profile owning the access token.
	Me(ctx context.Context, accessToken string) (*domain.Profile, error)
}

// TokenStore persists each user's token pair in the key-value store.
type TokenStore interface {
	// Save replaces the user's token pair.
	Save(ctx context.Context, userID string, pair domain.TokenPair) error

	// Load returns the user's token pair, nil when the user has no session.
	Load(ctx context.Context, userID string) (*domain.TokenPair, error)

	// Clear removes the user's token pair.
	Clear(ctx context.Context, userID string) error
}
