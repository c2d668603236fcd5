package ports

import (
	"context"

	"storefront-gateway/internal/features/addresses/domain"
)

// AddressRepository persists each user's ordered address book and selected
// address in the key-value store.
type AddressRepository interface {
	// Load returns the user's address book in insertion order. A missing
	// book is an empty slice, not an error.
	Load(ctx context.Context, userID string) ([]domain.Address, error)

	// Save replaces the user's address book.
	Save(ctx context.Context, userID string, addresses []domain.Address) error

	// LoadSelected returns the user's selected address, nil when none is
	// selected.
	LoadSelected(ctx context.Context, userID string) (*domain.Address, error)

	// SaveSelected replaces the user's selected address.
	SaveSelected(ctx context.Context, userID string, address domain.Address) error

	// ClearSelected removes the user's selected address.
	ClearSelected(ctx context.Context, userID string) error
}
