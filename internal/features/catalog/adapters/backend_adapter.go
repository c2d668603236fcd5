package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"storefront-gateway/internal/features/catalog/domain"
)

// BackendAdapter implements the CatalogProvider interface using the
// storefront REST API.
type BackendAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// baseURL is the storefront API base URL.
	baseURL string
}

// NewBackendAdapter creates a new catalog BackendAdapter.
func NewBackendAdapter(baseURL string, client *http.Client) *BackendAdapter {
	return &BackendAdapter{
		client:  client,
		baseURL: baseURL,
	}
}

// ListPackages fetches every published package.
func (a *BackendAdapter) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return a.fetchPackages(ctx, fmt.Sprintf("%s/api/packages", a.baseURL))
}

// ListPackagesByBrand fetches the packages belonging to one brand.
func (a *BackendAdapter) ListPackagesByBrand(ctx context.Context, brandID string) ([]domain.Package, error) {
	return a.fetchPackages(ctx, fmt.Sprintf("%s/api/brands/%s/packages", a.baseURL, brandID))
}

// GetPackage fetches a single package. Returns (nil, nil) when the backend
// reports 404.
func (a *BackendAdapter) GetPackage(ctx context.Context, packageID string) (*domain.Package, error) {
	reqURL := fmt.Sprintf("%s/api/packages/%s", a.baseURL, packageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned status: %d", resp.StatusCode)
	}

	var raw apiPackage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	pkg := mapPackage(raw)
	return &pkg, nil
}

// SearchProducts fetches the products matching a free-text query.
func (a *BackendAdapter) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/products/search?q=%s", a.baseURL, url.QueryEscape(query))

	var raw []apiProduct
	if err := a.getJSON(ctx, reqURL, &raw); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, mapProduct(p))
	}
	return products, nil
}

func (a *BackendAdapter) fetchPackages(ctx context.Context, reqURL string) ([]domain.Package, error) {
	var raw []apiPackage
	if err := a.getJSON(ctx, reqURL, &raw); err != nil {
		return nil, err
	}

	packages := make([]domain.Package, 0, len(raw))
	for _, p := range raw {
		packages = append(packages, mapPackage(p))
	}
	return packages, nil
}

// getJSON fetches url and decodes the body into out.
func (a *BackendAdapter) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// mapPackage converts a raw backend package into a domain Package entity.
func mapPackage(p apiPackage) domain.Package {
	items := make([]domain.PackageItem, 0, len(p.Products))
	for _, it := range p.Products {
		items = append(items, domain.PackageItem{
			Product:  mapProduct(it.Product),
			Quantity: it.Quantity,
		})
	}

	return domain.Package{
		ID:         p.ID,
		Name:       p.Name,
		BrandID:    p.BrandID,
		Products:   items,
		TotalPrice: p.TotalPrice,
	}
}

func mapProduct(p apiProduct) domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.ProductImage,
	}
}

// internal structs for mapping

// apiPackage represents the JSON structure of a package from the backend.
type apiPackage struct {
	ID         string           `json:"_id"`
	Name       string           `json:"name"`
	BrandID    string           `json:"brandID"`
	Products   []apiPackageItem `json:"products"`
	TotalPrice float64          `json:"totalPrice"`
}

type apiPackageItem struct {
	Product  apiProduct `json:"product"`
	Quantity int        `json:"quantity"`
}

type apiProduct struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	ProductImage string  `json:"productImage"`
}
