package domain

import (
	"time"

	schedule "storefront-gateway/internal/features/schedule/domain"
)

// OrderStatus represents the current state of an order. The backend owns the
// transitions; the gateway only reads the status and triggers explicit
// cancel/repurchase commands.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been placed but no shipment
	// has left yet.
	OrderStatusPending OrderStatus = "Pending"
	// OrderStatusOutForDelivery indicates at least one shipment is on the way.
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	// OrderStatusDelivered indicates every shipment in the cycle has been
	// delivered. Terminal.
	OrderStatusDelivered OrderStatus = "Delivered"
	// OrderStatusCancelled indicates the order was cancelled before
	// completion. Terminal.
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether the status is one of the four known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// TrackingStatus represents the state of a single delivery attempt.
type TrackingStatus string

const (
	// TrackingStatusPending indicates the shipment has not been delivered yet.
	TrackingStatusPending TrackingStatus = "Pending"
	// TrackingStatusDelivered indicates the shipment was delivered.
	TrackingStatusDelivered TrackingStatus = "Delivered"
	// TrackingStatusFailed indicates the delivery attempt failed; Reason
	// carries the cause.
	TrackingStatusFailed TrackingStatus = "Failed"
	// TrackingStatusCancelled indicates the attempt was called off.
	TrackingStatusCancelled TrackingStatus = "Cancelled"
)

// Reschedulable reports whether a shipment in this state may be given a new
// delivery date.
func (s TrackingStatus) Reschedulable() bool {
	return s == TrackingStatusFailed || s == TrackingStatusCancelled
}

// Payment methods accepted at checkout.
const (
	// PaymentMethodVNPay pays through the VNPay e-wallet; the order is marked
	// paid once the payment URL flow completes.
	PaymentMethodVNPay = "VNPay"
	// PaymentMethodCOD pays cash on delivery.
	PaymentMethodCOD = "COD"
)

// ShippingAddress is the address snapshot frozen into an order.
type ShippingAddress struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// Product is the product view embedded in an order's package snapshot.
type Product struct {
	ID          string  `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// PackageItem is one product line inside a package.
type PackageItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Package is the subscription bundle the order was placed for.
type Package struct {
	ID         string        `json:"package_id"`
	Name       string        `json:"name"`
	Products   []PackageItem `json:"products"`
	TotalPrice float64       `json:"total_price"`
}

// Tracking represents one delivery attempt within the subscription cycle.
type Tracking struct {
	// ID is the unique identifier of the attempt.
	ID string `json:"tracking_id"`
	// TrackingNumber is the human-readable shipment reference.
	TrackingNumber string `json:"tracking_number"`
	// IsDelivered flags a completed delivery.
	IsDelivered bool `json:"is_delivered"`
	// DeliveredAt is the scheduled (or actual, once delivered) delivery date.
	DeliveredAt time.Time `json:"delivered_at"`
	// Status is the per-attempt state.
	Status TrackingStatus `json:"status"`
	// Reason carries the failure cause for Failed attempts.
	Reason string `json:"reason,omitempty"`
}

// CircleShipment is the recurring-delivery contract attached to an order: the
// agreed shipment count plus one Tracking entry per attempt. The backend
// appends entries; their count never exceeds NumberOfShipment.
type CircleShipment struct {
	NumberOfShipment int        `json:"number_of_shipment"`
	Tracking         []Tracking `json:"tracking"`
}

// Order represents a subscription order as read from the backend.
type Order struct {
	// ID is the unique identifier for the order.
	ID string `json:"order_id"`
	// UserID is the owning customer.
	UserID string `json:"user_id"`
	// Package is the bundle snapshot the order was placed for.
	Package Package `json:"package"`
	// ShippingAddress is the address snapshot taken at checkout.
	ShippingAddress ShippingAddress `json:"shipping_address"`
	// PaymentMethod is the method chosen at checkout.
	PaymentMethod string `json:"payment_method"`
	// IsPaid flags a settled payment; PaidAt carries the timestamp.
	IsPaid bool       `json:"is_paid"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
	// DeliveredAt is the subscription start date chosen at checkout.
	DeliveredAt time.Time `json:"delivered_at"`
	// DeliveryCombo is the weekday pattern governing shipment dates.
	DeliveryCombo schedule.Combo `json:"delivery_combo"`
	// Status is the overall order state.
	Status OrderStatus `json:"status"`
	// CircleShipment tracks the individual deliveries of the cycle.
	CircleShipment CircleShipment `json:"circle_shipment"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
}

// FilterByStatus returns the orders whose status equals s, preserving the
// input's relative order.
func FilterByStatus(orders []Order, s OrderStatus) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == s {
			out = append(out, o)
		}
	}
	return out
}

// DeliveredCount returns how many shipments have been delivered against the
// agreed total, for progress display.
func DeliveredCount(o Order) (done, total int) {
	for _, tr := range o.CircleShipment.Tracking {
		if tr.IsDelivered {
			done++
		}
	}
	return done, o.CircleShipment.NumberOfShipment
}

// FindTracking looks up a delivery attempt by ID.
func (o Order) FindTracking(trackingID string) (Tracking, bool) {
	for _, tr := range o.CircleShipment.Tracking {
		if tr.ID == trackingID {
			return tr, true
		}
	}
	return Tracking{}, false
}

// OrderDraft is the command payload for creating a new order. Drafts are
// built by the checkout flow (or repurchase) after local validation; the
// backend adapter owns the wire encoding.
type OrderDraft struct {
	// UserID is the ordering customer.
	UserID string
	// PackageID references the bundle being subscribed to.
	PackageID string
	// ShippingAddress is the address snapshot for the whole cycle.
	ShippingAddress ShippingAddress
	// PaymentMethod is VNPay or COD.
	PaymentMethod string
	// NumberOfShipment is the agreed shipment count.
	NumberOfShipment int
	// DeliveryCombo is the chosen weekday pattern.
	DeliveryCombo schedule.Combo
	// StartDate is the first delivery date; must satisfy the combo.
	StartDate time.Time
	// TotalPrice is the package total multiplied by the shipment count.
	TotalPrice float64
	// IsPaid and PaidAt reflect an up-front e-wallet payment.
	IsPaid bool
	PaidAt *time.Time
	// IdempotencyKey guards against duplicate submission.
	IdempotencyKey string
}
