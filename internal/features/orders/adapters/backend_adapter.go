package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/features/orders/domain"
	schedule "storefront-gateway/internal/features/schedule/domain"

	"go.uber.org/zap"
)

// dateLayout is the calendar-date format the backend exchanges.
const dateLayout = "2006-01-02"

// BackendAdapter implements the OrderProvider interface using the storefront
// REST API.
type BackendAdapter struct {
	// client is the HTTP client used for API requests; it injects the
	// per-user bearer token from the request context.
	client *http.Client
	// baseURL is the storefront API base URL.
	baseURL string
}

// NewBackendAdapter creates a new orders BackendAdapter.
func NewBackendAdapter(baseURL string, client *http.Client) *BackendAdapter {
	return &BackendAdapter{
		client:  client,
		baseURL: baseURL,
	}
}

// ListByUser fetches all orders belonging to a user.
func (a *BackendAdapter) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	url := fmt.Sprintf("%s/api/orders/user/%s", a.baseURL, userID)

	var raw []apiOrder
	if err := a.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(raw))
	for _, o := range raw {
		orders = append(orders, mapToDomain(o))
	}
	return orders, nil
}

// Get fetches a single order. Returns (nil, nil) when the backend reports 404.
func (a *BackendAdapter) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	url := fmt.Sprintf("%s/api/orders/%s", a.baseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
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
		return nil, fmt.Errorf("orders API returned status: %d", resp.StatusCode)
	}

	var raw apiOrder
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	order := mapToDomain(raw)
	return &order, nil
}

// Create submits a new order.
func (a *BackendAdapter) Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	payload := createOrderRequest{
		UserID:           draft.UserID,
		PackageID:        draft.PackageID,
		ShippingAddress:  mapAddressToAPI(draft.ShippingAddress),
		PaymentMethod:    draft.PaymentMethod,
		NumberOfShipment: draft.NumberOfShipment,
		DeliveryCombo:    string(draft.DeliveryCombo),
		DeliveredAt:      draft.StartDate.Format(dateLayout),
		TotalPrice:       draft.TotalPrice,
		IsPaid:           draft.IsPaid,
		IdempotencyKey:   draft.IdempotencyKey,
	}
	if draft.PaidAt != nil {
		payload.PaidAt = draft.PaidAt.Format(dateLayout)
	}

	url := fmt.Sprintf("%s/api/orders", a.baseURL)
	raw, err := a.postJSON(ctx, url, payload)
	if err != nil {
		return nil, err
	}

	order := mapToDomain(*raw)
	return &order, nil
}

// Cancel requests cancellation of an order.
func (a *BackendAdapter) Cancel(ctx context.Context, orderID string) (*domain.Order, error) {
	url := fmt.Sprintf("%s/api/orders/%s/cancel", a.baseURL, orderID)

	raw, err := a.postJSON(ctx, url, struct{}{})
	if err != nil {
		return nil, err
	}

	order := mapToDomain(*raw)
	return &order, nil
}

// Reschedule moves one tracking entry's delivery date.
func (a *BackendAdapter) Reschedule(ctx context.Context, orderID, trackingID string, newDate time.Time) (*domain.Order, error) {
	payload := rescheduleRequest{DeliveredAt: newDate.Format(dateLayout)}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/api/orders/%s/tracking/%s", a.baseURL, orderID, trackingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("orders API returned status: %d", resp.StatusCode)
	}

	var raw apiOrder
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	order := mapToDomain(raw)
	return &order, nil
}

// getJSON fetches url and decodes the body into out.
func (a *BackendAdapter) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("orders API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// postJSON posts payload to url and decodes the returned order.
func (a *BackendAdapter) postJSON(ctx context.Context, url string, payload interface{}) (*apiOrder, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("orders API returned status: %d", resp.StatusCode)
	}

	var raw apiOrder
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &raw, nil
}

// mapToDomain converts a raw backend order into a domain Order entity.
func mapToDomain(o apiOrder) domain.Order {
	tracking := make([]domain.Tracking, 0, len(o.CircleShipment.Tracking))
	for _, tr := range o.CircleShipment.Tracking {
		tracking = append(tracking, domain.Tracking{
			ID:             tr.ID,
			TrackingNumber: tr.TrackingNumber,
			IsDelivered:    tr.IsDelivered,
			DeliveredAt:    time.Time(tr.DeliveredAt),
			Status:         mapTrackingStatus(tr.Status, tr.IsDelivered),
			Reason:         tr.Reason,
		})
	}

	return domain.Order{
		ID:     o.ID,
		UserID: o.UserID,
		Package: domain.Package{
			ID:         o.Package.ID,
			Name:       o.Package.Name,
			Products:   mapItems(o.Package.Products),
			TotalPrice: o.Package.TotalPrice,
		},
		ShippingAddress: domain.ShippingAddress{
			FullName: o.ShippingAddress.FullName,
			Phone:    o.ShippingAddress.Phone,
			Address:  o.ShippingAddress.Address,
			City:     o.ShippingAddress.City,
			Country:  o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
		IsPaid:        o.IsPaid,
		PaidAt:        o.PaidAt.ptr(),
		DeliveredAt:   time.Time(o.DeliveredAt),
		DeliveryCombo: schedule.Combo(o.DeliveryCombo),
		Status:        mapStatus(o.Status),
		CircleShipment: domain.CircleShipment{
			NumberOfShipment: o.CircleShipment.NumberOfShipment,
			Tracking:         tracking,
		},
		CreatedAt: time.Time(o.CreatedAt),
	}
}

// mapStatus normalizes the backend order status into the domain enum.
func mapStatus(status string) domain.OrderStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending":
		return domain.OrderStatusPending
	case "out for delivery", "out_for_delivery":
		return domain.OrderStatusOutForDelivery
	case "delivered":
		return domain.OrderStatusDelivered
	case "cancelled", "canceled":
		return domain.OrderStatusCancelled
	default:
		return domain.OrderStatusPending
	}
}

// mapTrackingStatus normalizes a per-shipment status; the delivered flag wins
// when the backend omits the status string.
func mapTrackingStatus(status string, isDelivered bool) domain.TrackingStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "delivered":
		return domain.TrackingStatusDelivered
	case "failed":
		return domain.TrackingStatusFailed
	case "cancelled", "canceled":
		return domain.TrackingStatusCancelled
	case "pending", "":
		if isDelivered {
			return domain.TrackingStatusDelivered
		}
		return domain.TrackingStatusPending
	default:
		return domain.TrackingStatusPending
	}
}

// mapItems converts backend package lines to domain PackageItems.
func mapItems(items []apiPackageItem) []domain.PackageItem {
	out := make([]domain.PackageItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.PackageItem{
			Product: domain.Product{
				ID:          it.Product.ID,
				Name:        it.Product.Name,
				Description: it.Product.Description,
				Price:       it.Product.Price,
				Image:       it.Product.ProductImage,
			},
			Quantity: it.Quantity,
		})
	}
	return out
}

func mapAddressToAPI(addr domain.ShippingAddress) apiShippingAddress {
	return apiShippingAddress{
		FullName: addr.FullName,
		Phone:    addr.Phone,
		Address:  addr.Address,
		City:     addr.City,
		Country:  addr.Country,
	}
}

// internal structs for mapping

// createOrderRequest is the wire payload for POST /api/orders.
type createOrderRequest struct {
	UserID           string             `json:"userID"`
	PackageID        string             `json:"packageID"`
	ShippingAddress  apiShippingAddress `json:"shippingAddress"`
	PaymentMethod    string             `json:"paymentMethod"`
	NumberOfShipment int                `json:"numberOfShipment"`
	DeliveryCombo    string             `json:"deliveryCombo"`
	DeliveredAt      string             `json:"deliveredAt"`
	TotalPrice       float64            `json:"totalPrice"`
	IsPaid           bool               `json:"isPaid"`
	PaidAt           string             `json:"paidAt,omitempty"`
	IdempotencyKey   string             `json:"idempotencyKey"`
}

// rescheduleRequest is the wire payload for moving a tracking entry's date.
type rescheduleRequest struct {
	DeliveredAt string `json:"deliveredAt"`
}

// apiOrder represents the JSON structure of an order from the backend.
type apiOrder struct {
	ID              string             `json:"_id"`
	UserID          string             `json:"userID"`
	Package         apiPackage         `json:"package"`
	ShippingAddress apiShippingAddress `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	IsPaid          bool               `json:"isPaid"`
	PaidAt          apiTime            `json:"paidAt"`
	DeliveredAt     apiTime            `json:"deliveredAt"`
	DeliveryCombo   string             `json:"deliveryCombo"`
	Status          string             `json:"status"`
	CircleShipment  apiCircleShipment  `json:"circleShipment"`
	CreatedAt       apiTime            `json:"createdAt"`
}

type apiShippingAddress struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

type apiPackage struct {
	ID         string           `json:"_id"`
	Name       string           `json:"name"`
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

type apiCircleShipment struct {
	NumberOfShipment int           `json:"numberOfShipment"`
	Tracking         []apiTracking `json:"tracking"`
}

type apiTracking struct {
	ID             string  `json:"_id"`
	TrackingNumber string  `json:"trackingNumber"`
	IsDelivered    bool    `json:"isDelivered"`
	DeliveredAt    apiTime `json:"deliveredAt"`
	Status         string  `json:"status"`
	Reason         string  `json:"reason"`
}

// apiTime is a custom helper struct to handle the backend's date formats.
type apiTime time.Time

// UnmarshalJSON parses the backend's date formats: plain calendar dates,
// RFC3339 timestamps, and zone-less ISO8601.
func (t *apiTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = apiTime(time.Time{})
		return nil
	}

	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = apiTime(parsed)
			return nil
		}
	}

	logger.Get().Warn("Failed to parse date", zap.String("date", s))
	return nil
}

// ptr returns the time as a pointer, nil for the zero value.
func (t apiTime) ptr() *time.Time {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil
	}
	return &tt
}
