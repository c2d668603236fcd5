package service

import (
	"context"
	"errors"

	"storefront-gateway/internal/features/addresses/domain"
	"storefront-gateway/internal/features/addresses/ports"
)

// ErrAddressNotFound is returned when an index is outside the user's address
// book.
var ErrAddressNotFound = errors.New("address not found")

// AddressService handles the business logic around the per-user address
// book: the ordered list and the selected address.
type AddressService struct {
	repo ports.AddressRepository
}

// NewAddressService creates a new instance of AddressService.
func NewAddressService(repo ports.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// List returns the user's address book in insertion order.
func (s *AddressService) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.repo.Load(ctx, userID)
}

// Add appends an address to the book and returns the updated list. The
// first address of a book becomes the selected address.
func (s *AddressService) Add(ctx context.Context, userID string, address domain.Address) ([]domain.Address, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}

	addresses, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	addresses = append(addresses, address)
	if err := s.repo.Save(ctx, userID, addresses); err != nil {
		return nil, err
	}

	if len(addresses) == 1 {
		if err := s.repo.SaveSelected(ctx, userID, address); err != nil {
			return nil, err
		}
	}
	return addresses, nil
}

// Delete removes the address at the given position and returns the updated
// list. Deleting the selected address clears the selection.
func (s *AddressService) Delete(ctx context.Context, userID string, index int) ([]domain.Address, error) {
	addresses, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(addresses) {
		return nil, ErrAddressNotFound
	}

	removed := addresses[index]
	addresses = append(addresses[:index], addresses[index+1:]...)
	if err := s.repo.Save(ctx, userID, addresses); err != nil {
		return nil, err
	}

	selected, err := s.repo.LoadSelected(ctx, userID)
	if err != nil {
		return nil, err
	}
	if selected != nil && *selected == removed {
		if err := s.repo.ClearSelected(ctx, userID); err != nil {
			return nil, err
		}
	}
	return addresses, nil
}

// Select marks the address at the given position as the user's shipping
// default and returns it.
func (s *AddressService) Select(ctx context.Context, userID string, index int) (*domain.Address, error) {
	addresses, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(addresses) {
		return nil, ErrAddressNotFound
	}

	address := addresses[index]
	if err := s.repo.SaveSelected(ctx, userID, address); err != nil {
		return nil, err
	}
	return &address, nil
}

// Selected returns the user's selected address, nil when none is set.
func (s *AddressService) Selected(ctx context.Context, userID string) (*domain.Address, error) {
	return s.repo.LoadSelected(ctx, userID)
}
