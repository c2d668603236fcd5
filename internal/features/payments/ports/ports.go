package ports

import (
	"context"
	"encoding/json"
)

// PaymentProvider defines the interface to the backend's payment endpoints.
type PaymentProvider interface {
	// CreatePaymentURL requests a hosted payment page for the given amount
	// and returns its URL. The order flow opens it and the backend settles
	// the payment on return.
	CreatePaymentURL(ctx context.Context, userID, packageID string, amount float64) (string, error)

	// VNPayReturn fetches the settlement result after the user comes back
	// from the hosted page. The payload is backend-defined and passed
	// through untouched; the backend owns the paid flag.
	VNPayReturn(ctx context.Context) (json.RawMessage, error)
}
