package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-gateway/internal/core/storage"
	"storefront-gateway/internal/features/auth/domain"
)

// tokensKeyPrefix namespaces the per-user token blobs.
const tokensKeyPrefix = "tokens"

// StorageTokenStore implements the TokenStore interface on the key-value
// store.
type StorageTokenStore struct {
	store storage.Store
}

// NewStorageTokenStore creates a new StorageTokenStore.
func NewStorageTokenStore(store storage.Store) *StorageTokenStore {
	return &StorageTokenStore{store: store}
}

// Save replaces the user's token pair.
func (s *StorageTokenStore) Save(ctx context.Context, userID string, pair domain.TokenPair) error {
	raw, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}

	if err := s.store.Set(ctx, storage.UserKey(tokensKeyPrefix, userID), raw, 0); err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	return nil
}

// Load returns the user's token pair, nil when the user has no session.
func (s *StorageTokenStore) Load(ctx context.Context, userID string) (*domain.TokenPair, error) {
	raw, err := s.store.Get(ctx, storage.UserKey(tokensKeyPrefix, userID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}

	var pair domain.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, fmt.Errorf("failed to decode tokens: %w", err)
	}
	return &pair, nil
}

// Clear removes the user's token pair.
func (s *StorageTokenStore) Clear(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, storage.UserKey(tokensKeyPrefix, userID)); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}
