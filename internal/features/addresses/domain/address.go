package domain

import "errors"

// ErrIncompleteAddress is returned when a saved address misses a required
// field.
var ErrIncompleteAddress = errors.New("address is missing a required field")

// Address is one shipping address in a user's address book. The book lives
// in the key-value store only; an address leaves the device solely as part
// of an order payload.
type Address struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// Validate reports whether the address has every required field.
func (a Address) Validate() error {
	for _, field := range []string{a.FullName, a.Phone, a.Address, a.City, a.Country} {
		if field == "" {
			return ErrIncompleteAddress
		}
	}
	return nil
}
