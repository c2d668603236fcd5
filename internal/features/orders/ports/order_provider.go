package ports

import (
	"context"
	"time"

	"storefront-gateway/internal/features/orders/domain"
)

// OrderProvider defines the interface to the backend's order endpoints.
// This is a Secondary Port (Driven Port). Mutating calls return the updated
// entity from the backend response; the caller decides whether to merge it or
// re-fetch the full list.
type OrderProvider interface {
	// ListByUser retrieves all orders belonging to a user.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// Get retrieves a single order. Returns (nil, nil) when the order does
	// not exist.
	Get(ctx context.Context, orderID string) (*domain.Order, error)

	// Create submits a new order and returns it as persisted by the backend.
	Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)

	// Cancel requests cancellation and returns the updated order.
	Cancel(ctx context.Context, orderID string) (*domain.Order, error)

	// Reschedule moves one tracking entry's delivery date and returns the
	// updated order.
	Reschedule(ctx context.Context, orderID, trackingID string, newDate time.Time) (*domain.Order, error)
}

// PackagePricer supplies the unit price of a package for checkout totals.
type PackagePricer interface {
	// PackageTotal returns the per-cycle total price of a package. Returns
	// (0, nil) price with an error when the package does not exist.
	PackageTotal(ctx context.Context, packageID string) (float64, error)
}
