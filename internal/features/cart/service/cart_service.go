package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-gateway/internal/features/cart/domain"
	"storefront-gateway/internal/features/cart/ports"
)

// ErrItemNotFound is returned when updating a product that is not in the
// cart.
var ErrItemNotFound = errors.New("item not in cart")

// ErrInvalidItem is returned when an added item misses a product ID or has a
// non-positive quantity.
var ErrInvalidItem = errors.New("invalid cart item")

// CartService handles the business logic around the per-user cart: loading,
// the four mutations, and keeping the persisted blob consistent with the
// derived totals.
type CartService struct {
	repo ports.CartRepository
}

// NewCartService creates a new instance of CartService.
func NewCartService(repo ports.CartRepository) *CartService {
	return &CartService{repo: repo}
}

// Get retrieves the user's cart.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem puts an item into the cart, merging with an existing line of the
// same product, and returns the updated cart.
func (s *CartService) AddItem(ctx context.Context, userID string, item domain.CartItem) (*domain.Cart, error) {
	if item.ProductID == "" || item.Quantity < 1 {
		return nil, ErrInvalidItem
	}

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Add(item)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line and returns the
// updated cart. A quantity of zero removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: negative quantity", ErrInvalidItem)
	}

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cart.UpdateQuantity(productID, quantity) {
		return nil, ErrItemNotFound
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes a line from the cart and returns the updated cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Remove(productID)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}
