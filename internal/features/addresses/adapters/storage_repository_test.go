package adapters

import (
	"context"
	"testing"

	"storefront-gateway/internal/core/storage"
	"storefront-gateway/internal/features/addresses/domain"

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

func home() domain.Address {
	return domain.Address{
		FullName: "Nguyen Van A", Phone: "0901234567",
		Address: "12 Hang Bai", City: "Hanoi", Country: "Vietnam",
	}
}

func office() domain.Address {
	return domain.Address{
		FullName: "Nguyen Van A", Phone: "0901234567",
		Address: "5 Trang Tien", City: "Hanoi", Country: "Vietnam",
	}
}

func TestStorageRepository_LoadEmpty(t *testing.T) {
	repo := newTestRepository(t)

	addresses, err := repo.Load(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, addresses)
}

func TestStorageRepository_SaveLoad_PreservesOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "user-1", []domain.Address{home(), office()}))

	addresses, err := repo.Load(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, "12 Hang Bai", addresses[0].Address)
	assert.Equal(t, "5 Trang Tien", addresses[1].Address)
}

func TestStorageRepository_Selected(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	selected, err := repo.LoadSelected(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, selected)

	require.NoError(t, repo.SaveSelected(ctx, "user-1", home()))

	selected, err = repo.LoadSelected(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, "12 Hang Bai", selected.Address)

	require.NoError(t, repo.ClearSelected(ctx, "user-1"))

	selected, err = repo.LoadSelected(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, selected)
}
