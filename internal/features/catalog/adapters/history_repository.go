package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-gateway/internal/core/storage"
)

// historyKeyPrefix namespaces the per-user search history blobs.
const historyKeyPrefix = "searchHistory"

// HistoryRepository persists search history as one JSON array per user in the
// key-value store.
type HistoryRepository struct {
	store storage.Store
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(store storage.Store) *HistoryRepository {
	return &HistoryRepository{store: store}
}

// Load returns the user's search history, newest first. A missing key is an
// empty history.
func (r *HistoryRepository) Load(ctx context.Context, userID string) ([]string, error) {
	raw, err := r.store.Get(ctx, storage.UserKey(historyKeyPrefix, userID))
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load search history: %w", err)
	}

	var history []string
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("failed to decode search history: %w", err)
	}
	return history, nil
}

// Save replaces the user's search history.
func (r *HistoryRepository) Save(ctx context.Context, userID string, history []string) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode search history: %w", err)
	}

	if err := r.store.Set(ctx, storage.UserKey(historyKeyPrefix, userID), raw, 0); err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}
	return nil
}

// Clear removes the user's search history.
func (r *HistoryRepository) Clear(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, storage.UserKey(historyKeyPrefix, userID)); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}
