package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// BackendAdapter implements the PaymentProvider interface using the
// storefront REST API.
type BackendAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// baseURL is the storefront API base URL.
	baseURL string
}

// NewBackendAdapter creates a new payments BackendAdapter.
func NewBackendAdapter(baseURL string, client *http.Client) *BackendAdapter {
	return &BackendAdapter{
		client:  client,
		baseURL: baseURL,
	}
}

// paymentURLRequest is the wire payload for creating a payment URL.
type paymentURLRequest struct {
	UserID    string  `json:"userID"`
	PackageID string  `json:"packageID"`
	Amount    float64 `json:"amount"`
}

// paymentURLResponse is the backend response carrying the hosted page URL.
type paymentURLResponse struct {
	VnpURL string `json:"vnpUrl"`
}

// CreatePaymentURL requests a hosted payment page from the backend.
func (a *BackendAdapter) CreatePaymentURL(ctx context.Context, userID, packageID string, amount float64) (string, error) {
	payload, err := json.Marshal(paymentURLRequest{
		UserID:    userID,
		PackageID: packageID,
		Amount:    amount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode payment request: %w", err)
	}

	url := fmt.Sprintf("%s/api/payments/create_payment_url", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payment API returned status: %d", resp.StatusCode)
	}

	var result paymentURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if result.VnpURL == "" {
		return "", fmt.Errorf("payment API returned an empty payment URL")
	}

	return result.VnpURL, nil
}

// VNPayReturn fetches the settlement result from the backend once the user
// returns from the hosted payment page.
func (a *BackendAdapter) VNPayReturn(ctx context.Context) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/api/payments/vnpay_return", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment API returned status: %d", resp.StatusCode)
	}

	var result json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result, nil
}
