package ports

import (
	"context"

	"storefront-gateway/internal/features/cart/domain"
)

// CartRepository persists each user's cart as one blob in the key-value
// store.
type CartRepository interface {
	// Load returns the user's cart. A missing cart comes back empty, not as
	// an error.
	Load(ctx context.Context, userID string) (*domain.Cart, error)

	// Save replaces the user's cart.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the user's cart.
	Delete(ctx context.Context, userID string) error
}
