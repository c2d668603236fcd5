package ports

import (
	"context"

	"storefront-gateway/internal/features/catalog/domain"
)

// CatalogProvider defines the contract for reading packages and products from
// the storefront backend.
type CatalogProvider interface {
	// ListPackages fetches every published package.
	ListPackages(ctx context.Context) ([]domain.Package, error)

	// ListPackagesByBrand fetches the packages belonging to one brand.
	ListPackagesByBrand(ctx context.Context, brandID string) ([]domain.Package, error)

	// GetPackage fetches a single package. Returns (nil, nil) when the
	// package does not exist.
	GetPackage(ctx context.Context, packageID string) (*domain.Package, error)

	// SearchProducts fetches the products matching a free-text query.
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}

// HistoryRepository persists a user's recent search queries, newest first.
type HistoryRepository interface {
	// Load returns the user's search history. A missing history is an empty
	// slice, not an error.
	Load(ctx context.Context, userID string) ([]string, error)

	// Save replaces the user's search history.
	Save(ctx context.Context, userID string, history []string) error

	// Clear removes the user's search history.
	Clear(ctx context.Context, userID string) error
}
