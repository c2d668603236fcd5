package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-gateway/internal/core/storage"
	"storefront-gateway/internal/features/addresses/domain"
)

// Key prefixes for the per-user address blobs.
const (
	addressesKeyPrefix = "addresses"
	selectedKeyPrefix  = "selectedAddress"
)

// StorageRepository implements the AddressRepository interface on the
// key-value store.
type StorageRepository struct {
	store storage.Store
}

// NewStorageRepository creates a new addresses StorageRepository.
func NewStorageRepository(store storage.Store) *StorageRepository {
	return &StorageRepository{store: store}
}

// Load returns the user's address book in insertion order.
func (r *StorageRepository) Load(ctx context.Context, userID string) ([]domain.Address, error) {
	raw, err := r.store.Get(ctx, storage.UserKey(addressesKeyPrefix, userID))
	if errors.Is(err, storage.ErrNotFound) {
		return []domain.Address{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load addresses: %w", err)
	}

	var addresses []domain.Address
	if err := json.Unmarshal(raw, &addresses); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}
	return addresses, nil
}

// Save replaces the user's address book.
func (r *StorageRepository) Save(ctx context.Context, userID string, addresses []domain.Address) error {
	raw, err := json.Marshal(addresses)
	if err != nil {
		return fmt.Errorf("failed to encode addresses: %w", err)
	}

	if err := r.store.Set(ctx, storage.UserKey(addressesKeyPrefix, userID), raw, 0); err != nil {
		return fmt.Errorf("failed to save addresses: %w", err)
	}
	return nil
}

// LoadSelected returns the user's selected address, nil when none is set.
func (r *StorageRepository) LoadSelected(ctx context.Context, userID string) (*domain.Address, error) {
	raw, err := r.store.Get(ctx, storage.UserKey(selectedKeyPrefix, userID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load selected address: %w", err)
	}

	var address domain.Address
	if err := json.Unmarshal(raw, &address); err != nil {
		return nil, fmt.Errorf("failed to decode selected address: %w", err)
	}
	return &address, nil
}

// SaveSelected replaces the user's selected address.
func (r *StorageRepository) SaveSelected(ctx context.Context, userID string, address domain.Address) error {
	raw, err := json.Marshal(address)
	if err != nil {
		return fmt.Errorf("failed to encode selected address: %w", err)
	}

	if err := r.store.Set(ctx, storage.UserKey(selectedKeyPrefix, userID), raw, 0); err != nil {
		return fmt.Errorf("failed to save selected address: %w", err)
	}
	return nil
}

// ClearSelected removes the user's selected address.
func (r *StorageRepository) ClearSelected(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, storage.UserKey(selectedKeyPrefix, userID)); err != nil {
		return fmt.Errorf("failed to clear selected address: %w", err)
	}
	return nil
}
