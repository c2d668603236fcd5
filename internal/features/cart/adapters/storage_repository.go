package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-gateway/internal/core/storage"
	"storefront-gateway/internal/features/cart/domain"
)

// cartKeyPrefix namespaces the per-user cart blobs.
const cartKeyPrefix = "cart"

// StorageRepository implements the CartRepository interface on the key-value
// store.
type StorageRepository struct {
	store storage.Store
}

// NewStorageRepository creates a new cart StorageRepository.
func NewStorageRepository(store storage.Store) *StorageRepository {
	return &StorageRepository{store: store}
}

// Load returns the user's cart. A missing key is an empty cart.
func (r *StorageRepository) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	raw, err := r.store.Get(ctx, storage.UserKey(cartKeyPrefix, userID))
	if errors.Is(err, storage.ErrNotFound) {
		return domain.NewCart(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &cart, nil
}

// Save replaces the user's cart.
func (r *StorageRepository) Save(ctx context.Context, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := r.store.Set(ctx, storage.UserKey(cartKeyPrefix, cart.UserID), raw, 0); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the user's cart.
func (r *StorageRepository) Delete(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, storage.UserKey(cartKeyPrefix, userID)); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
