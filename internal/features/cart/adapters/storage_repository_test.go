package adapters

import (
	"context"
	"testing"

	"storefront-gateway/internal/core/storage"
	"storefront-gateway/internal/features/cart/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *StorageRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := storage.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewStorageRepository(store)
}

func TestStorageRepository_LoadMissingCartIsEmpty(t *testing.T) {
	repo := newTestRepository(t)

	cart, err := repo.Load(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.Empty(t, cart.Items)
}

func TestStorageRepository_SaveLoad(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cart := domain.NewCart("user-1")
	cart.Add(domain.CartItem{ProductID: "p1", Name: "Fresh Milk 1L", Price: 25000, Quantity: 2})
	require.NoError(t, repo.Save(ctx, cart))

	loaded, err := repo.Load(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.TotalQuantity)
	assert.Equal(t, float64(50000), loaded.TotalPrice)
}

func TestStorageRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cart := domain.NewCart("user-1")
	cart.Add(domain.CartItem{ProductID: "p1", Price: 25000, Quantity: 1})
	require.NoError(t, repo.Save(ctx, cart))

	require.NoError(t, repo.Delete(ctx, "user-1"))

	loaded, err := repo.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}
