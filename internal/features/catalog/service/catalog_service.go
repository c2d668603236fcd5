package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/features/catalog/domain"
	"storefront-gateway/internal/features/catalog/ports"

	"go.uber.org/zap"
)

// ErrPackageNotFound is returned when the requested package does not exist.
var ErrPackageNotFound = errors.New("package not found")

// ErrEmptyQuery is returned when a search is submitted with a blank query.
var ErrEmptyQuery = errors.New("search query must not be empty")

// CatalogService handles the business logic around packages, product search
// and the per-user search history.
type CatalogService struct {
	provider ports.CatalogProvider
	history  ports.HistoryRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(provider ports.CatalogProvider, history ports.HistoryRepository) *CatalogService {
	return &CatalogService{
		provider: provider,
		history:  history,
	}
}

// ListPackages retrieves every published package.
func (s *CatalogService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	packages, err := s.provider.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch packages: %w", err)
	}
	return packages, nil
}

// ListPackagesByBrand retrieves the packages belonging to one brand.
func (s *CatalogService) ListPackagesByBrand(ctx context.Context, brandID string) ([]domain.Package, error) {
	packages, err := s.provider.ListPackagesByBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brand packages: %w", err)
	}
	return packages, nil
}

// GetPackage retrieves a single package.
func (s *CatalogService) GetPackage(ctx context.Context, packageID string) (*domain.Package, error) {
	pkg, err := s.provider.GetPackage(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch package: %w", err)
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

// PackageTotal returns the price of one delivery of the package. It lets the
// order checkout price subscriptions off the catalog.
func (s *CatalogService) PackageTotal(ctx context.Context, packageID string) (float64, error) {
	pkg, err := s.GetPackage(ctx, packageID)
	if err != nil {
		return 0, err
	}
	return pkg.TotalPrice, nil
}

// Search runs a product search and records the query in the user's history.
// A history write failure never fails the search; the results still come
// back and the failure is logged.
func (s *CatalogService) Search(ctx context.Context, userID, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	products, err := s.provider.SearchProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	if userID != "" {
		s.recordQuery(ctx, userID, query)
	}
	return products, nil
}

// History returns the user's recent search queries, newest first. Storage
// failures degrade to an empty history.
func (s *CatalogService) History(ctx context.Context, userID string) []string {
	history, err := s.history.Load(ctx, userID)
	if err != nil {
		logger.Get().Warn("Failed to load search history",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return []string{}
	}
	return history
}

// ClearHistory removes the user's search history.
func (s *CatalogService) ClearHistory(ctx context.Context, userID string) error {
	if err := s.history.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}

func (s *CatalogService) recordQuery(ctx context.Context, userID, query string) {
	history, err := s.history.Load(ctx, userID)
	if err != nil {
		logger.Get().Warn("Failed to load search history",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return
	}

	if err := s.history.Save(ctx, userID, domain.RecordSearch(history, query)); err != nil {
		logger.Get().Warn("Failed to record search query",
			zap.String("userID", userID),
			zap.Error(err),
		)
	}
}
