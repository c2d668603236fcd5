package domain

// Product is one sellable item in the catalog.
type Product struct {
	// ID is the unique identifier of the product.
	ID string `json:"product_id"`
	// Name is the display name.
	Name string `json:"name"`
	// Description is the marketing copy shown on the product page.
	Description string `json:"description"`
	// Price is the unit price in VND.
	Price float64 `json:"price"`
	// Image is the product image URL.
	Image string `json:"image"`
}

// PackageItem is one product line inside a package.
type PackageItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Package is a subscription bundle: a fixed set of product lines sold as one
// recurring delivery.
type Package struct {
	// ID is the unique identifier of the package.
	ID string `json:"package_id"`
	// Name is the display name.
	Name string `json:"name"`
	// BrandID is the owning brand.
	BrandID string `json:"brand_id"`
	// Products are the bundled product lines.
	Products []PackageItem `json:"products"`
	// TotalPrice is the price of one delivery of the bundle, in VND.
	TotalPrice float64 `json:"total_price"`
}

// HistoryLimit caps the per-user search history length.
const HistoryLimit = 10

// RecordSearch prepends query to history, deduping an earlier occurrence and
// capping the result at HistoryLimit entries. The newest query is first.
func RecordSearch(history []string, query string) []string {
	out := make([]string, 0, len(history)+1)
	out = append(out, query)
	for _, q := range history {
		if q == query {
			continue
		}
		out = append(out, q)
	}
	if len(out) > HistoryLimit {
		out = out[:HistoryLimit]
	}
	return out
}
