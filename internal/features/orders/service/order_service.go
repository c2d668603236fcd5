package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-gateway/internal/features/orders/domain"
	"storefront-gateway/internal/features/orders/ports"
	paymentports "storefront-gateway/internal/features/payments/ports"
	schedule "storefront-gateway/internal/features/schedule/domain"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when the order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderAlreadyCancelled is returned when cancelling an order that is
// already cancelled.
var ErrOrderAlreadyCancelled = errors.New("order is already cancelled")

// ErrOrderDelivered is returned when cancelling an order that has completed.
var ErrOrderDelivered = errors.New("order is already delivered")

// ErrOrderNotCancelled is returned when repurchasing an order that is not in
// the cancelled state.
var ErrOrderNotCancelled = errors.New("only cancelled orders can be repurchased")

// ErrTrackingNotFound is returned when the tracking entry does not exist on
// the order.
var ErrTrackingNotFound = errors.New("tracking entry not found")

// ErrTrackingNotReschedulable is returned when rescheduling a shipment that
// has not failed.
var ErrTrackingNotReschedulable = errors.New("only failed or cancelled shipments can be rescheduled")

// ErrInvalidDeliveryDate is returned when a picked date does not fall on one
// of the combo's delivery weekdays.
var ErrInvalidDeliveryDate = errors.New("delivery date does not match the delivery days")

// ErrInvalidShipmentCount is returned when the shipment count is not a
// positive number.
var ErrInvalidShipmentCount = errors.New("number of shipments must be a positive number")

// ErrMissingField is returned when a required checkout field is empty.
var ErrMissingField = errors.New("missing required field")

// ErrInvalidStatus is returned when an unknown status value is used as a
// filter.
var ErrInvalidStatus = errors.New("invalid order status")

// CheckoutRequest carries the user's checkout form.
type CheckoutRequest struct {
	UserID           string
	PackageID        string
	ShippingAddress  domain.ShippingAddress
	PaymentMethod    string
	NumberOfShipment int
	DeliveryCombo    string
	StartDate        time.Time
}

// CheckoutResult is the outcome of a successful checkout. PaymentURL is set
// only for the e-wallet payment method.
type CheckoutResult struct {
	Order      *domain.Order `json:"order"`
	PaymentURL string        `json:"payment_url,omitempty"`
}

// OrderService handles the business logic around the order lifecycle: listing
// and partitioning by status, checkout, and the three mutating commands
// (cancel, reschedule, repurchase). All mutations go to the backend and
// return the backend's view of the updated entity; nothing is patched
// locally.
type OrderService struct {
	provider ports.OrderProvider
	pricer   ports.PackagePricer
	payments paymentports.PaymentProvider
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(provider ports.OrderProvider, pricer ports.PackagePricer, payments paymentports.PaymentProvider) *OrderService {
	return &OrderService{
		provider: provider,
		pricer:   pricer,
		payments: payments,
	}
}

// List retrieves all orders belonging to a user.
func (s *OrderService) List(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID", ErrMissingField)
	}

	orders, err := s.provider.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// ListByStatus retrieves a user's orders filtered to one status, preserving
// the backend's ordering.
func (s *OrderService) ListByStatus(ctx context.Context, userID string, status domain.OrderStatus) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	orders, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.FilterByStatus(orders, status), nil
}

// Get retrieves a single order.
func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.provider.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Checkout validates the form, prices the subscription and submits the order.
// All validation happens before any backend call; a validation failure leaves
// no partial state anywhere.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	combo, err := schedule.ParseCombo(req.DeliveryCombo)
	if err != nil {
		return nil, err
	}
	if !schedule.IsValidDeliveryDay(combo, req.StartDate) {
		return nil, ErrInvalidDeliveryDate
	}

	unitTotal, err := s.pricer.PackageTotal(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to price package: %w", err)
	}

	draft := domain.OrderDraft{
		UserID:           req.UserID,
		PackageID:        req.PackageID,
		ShippingAddress:  req.ShippingAddress,
		PaymentMethod:    req.PaymentMethod,
		NumberOfShipment: req.NumberOfShipment,
		DeliveryCombo:    combo,
		StartDate:        req.StartDate,
		TotalPrice:       unitTotal * float64(req.NumberOfShipment),
		IdempotencyKey:   uuid.NewString(),
	}

	// The paid flag belongs to the backend: it flips once the gateway's
	// vnpay_return confirmation comes back, never on URL creation.
	var paymentURL string
	if req.PaymentMethod == domain.PaymentMethodVNPay {
		paymentURL, err = s.payments.CreatePaymentURL(ctx, req.UserID, req.PackageID, draft.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to create payment URL: %w", err)
		}
	}

	order, err := s.provider.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &CheckoutResult{Order: order, PaymentURL: paymentURL}, nil
}

// Cancel requests cancellation of an order. Terminal orders are rejected
// locally; the service never flips a terminal status itself.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case domain.OrderStatusCancelled:
		return nil, ErrOrderAlreadyCancelled
	case domain.OrderStatusDelivered:
		return nil, ErrOrderDelivered
	}

	updated, err := s.provider.Cancel(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	return updated, nil
}

// Reschedule moves one failed or cancelled shipment to a new delivery date
// that satisfies the order's combo.
func (s *OrderService) Reschedule(ctx context.Context, orderID, trackingID string, newDate time.Time) (*domain.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	tracking, ok := order.FindTracking(trackingID)
	if !ok {
		return nil, ErrTrackingNotFound
	}
	if !tracking.Status.Reschedulable() {
		return nil, ErrTrackingNotReschedulable
	}

	if !order.DeliveryCombo.Valid() {
		return nil, schedule.ErrInvalidCombo
	}
	if !schedule.IsValidDeliveryDay(order.DeliveryCombo, newDate) {
		return nil, ErrInvalidDeliveryDate
	}

	updated, err := s.provider.Reschedule(ctx, orderID, trackingID, newDate)
	if err != nil {
		return nil, fmt.Errorf("failed to reschedule shipment: %w", err)
	}
	return updated, nil
}

// Repurchase starts a fresh order from a cancelled order's package. The
// cancelled order is never resurrected; a brand-new order is created with the
// same package, address and delivery pattern, starting on the next valid
// delivery date.
func (s *OrderService) Repurchase(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusCancelled {
		return nil, ErrOrderNotCancelled
	}
	if !order.DeliveryCombo.Valid() {
		return nil, schedule.ErrInvalidCombo
	}

	draft := domain.OrderDraft{
		UserID:           order.UserID,
		PackageID:        order.Package.ID,
		ShippingAddress:  order.ShippingAddress,
		PaymentMethod:    domain.PaymentMethodCOD,
		NumberOfShipment: order.CircleShipment.NumberOfShipment,
		DeliveryCombo:    order.DeliveryCombo,
		StartDate:        schedule.NextValidDate(order.DeliveryCombo, time.Now()),
		TotalPrice:       order.Package.TotalPrice * float64(order.CircleShipment.NumberOfShipment),
		IdempotencyKey:   uuid.NewString(),
	}

	created, err := s.provider.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to repurchase order: %w", err)
	}
	return created, nil
}

// Progress reports delivered shipments against the agreed total.
func (s *OrderService) Progress(ctx context.Context, orderID string) (done, total int, err error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return 0, 0, err
	}

	done, total = domain.DeliveredCount(*order)
	return done, total, nil
}

// validateCheckout rejects incomplete checkout forms before any backend call.
func validateCheckout(req CheckoutRequest) error {
	required := map[string]string{
		"userID":        req.UserID,
		"packageID":     req.PackageID,
		"fullName":      req.ShippingAddress.FullName,
		"phone":         req.ShippingAddress.Phone,
		"address":       req.ShippingAddress.Address,
		"city":          req.ShippingAddress.City,
		"country":       req.ShippingAddress.Country,
		"paymentMethod": req.PaymentMethod,
	}
	for _, field := range []string{"userID", "packageID", "fullName", "phone", "address", "city", "country", "paymentMethod"} {
		if required[field] == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}

	if req.NumberOfShipment < 1 {
		return ErrInvalidShipmentCount
	}
	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate", ErrMissingField)
	}
	return nil
}
