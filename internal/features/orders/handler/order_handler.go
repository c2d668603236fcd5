package handler

import (
	"errors"
	"net/http"
	"time"

	"storefront-gateway/internal/core/httpclient"
	"storefront-gateway/internal/features/orders/domain"
	"storefront-gateway/internal/features/orders/service"
	schedule "storefront-gateway/internal/features/schedule/domain"

	"github.com/gofiber/fiber/v2"
)

// dateLayout is the calendar-date format used on request payloads.
const dateLayout = "2006-01-02"

// OrderHandler handles HTTP requests for the order lifecycle.
type OrderHandler struct {
	service *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrTrackingNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrOrderAlreadyCancelled),
		errors.Is(err, service.ErrOrderDelivered),
		errors.Is(err, service.ErrOrderNotCancelled),
		errors.Is(err, service.ErrTrackingNotReschedulable):
		return http.StatusConflict
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidDeliveryDate),
		errors.Is(err, service.ErrInvalidShipmentCount),
		errors.Is(err, schedule.ErrInvalidCombo):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

// userCtx threads the requesting user into the outbound HTTP client so the
// auth transport can attach that user's bearer token.
func userCtx(c *fiber.Ctx, userID string) *fiber.Ctx {
	c.SetUserContext(httpclient.WithUser(c.UserContext(), userID))
	return c
}

// checkoutRequest is the payload for the checkout endpoint.
type checkoutRequest struct {
	UserID           string                 `json:"user_id"`
	PackageID        string                 `json:"package_id"`
	ShippingAddress  domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod    string                 `json:"payment_method"`
	NumberOfShipment int                    `json:"number_of_shipment"`
	DeliveryCombo    string                 `json:"delivery_combo"`
	StartDate        string                 `json:"start_date"`
}

// rescheduleRequest is the payload for the reschedule endpoint.
type rescheduleRequest struct {
	NewDate string `json:"new_date"`
}

// progressResponse is the payload for the progress endpoint.
type progressResponse struct {
	// Delivered is the number of completed shipments.
	Delivered int `json:"delivered"`
	// Total is the subscription's shipment count.
	Total int `json:"total"`
}

// List godoc
// @Summary List a user's orders
// @Description Returns the user's orders, optionally filtered to one status.
// @Tags orders
// @Produce json
// @Param user_id query string true "User ID"
// @Param status query string false "Order status filter"
// @Success 200 {array} domain.Order
// @Failure 400 {object} ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "user_id is required",
			RayID:   rayID(c),
		})
	}
	userCtx(c, userID)

	var orders []domain.Order
	var err error
	if status := c.Query("status"); status != "" {
		orders, err = h.service.ListByStatus(c.UserContext(), userID, domain.OrderStatus(status))
	} else {
		orders, err = h.service.List(c.UserContext(), userID)
	}
	if err != nil {
		return fail(c, err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	return c.Status(http.StatusOK).JSON(orders)
}

// Get godoc
// @Summary Fetch a single order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// Checkout godoc
// @Summary Place a subscription order
// @Description Validates the checkout form, prices the subscription and submits the order. For the e-wallet payment method the response carries a payment URL.
// @Tags orders
// @Accept json
// @Produce json
// @Param request body checkoutRequest true "Checkout form"
// @Success 201 {object} service.CheckoutResult
// @Failure 400 {object} ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	var startDate time.Time
	if req.StartDate != "" {
		var err error
		startDate, err = time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "start_date must be formatted as YYYY-MM-DD",
				RayID:   rayID(c),
			})
		}
	}

	userCtx(c, req.UserID)
	result, err := h.service.Checkout(c.UserContext(), service.CheckoutRequest{
		UserID:           req.UserID,
		PackageID:        req.PackageID,
		ShippingAddress:  req.ShippingAddress,
		PaymentMethod:    req.PaymentMethod,
		NumberOfShipment: req.NumberOfShipment,
		DeliveryCombo:    req.DeliveryCombo,
		StartDate:        startDate,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(result)
}

// Cancel godoc
// @Summary Cancel an order
// @Description Cancels an order that is not already in a terminal state and returns the updated entity.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.service.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// Repurchase godoc
// @Summary Re-place a cancelled order
// @Description Creates a fresh order from a cancelled one: same package, address and combo, cash on delivery, starting on the next valid delivery date.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 201 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/repurchase [post]
func (h *OrderHandler) Repurchase(c *fiber.Ctx) error {
	order, err := h.service.Repurchase(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(order)
}

// Reschedule godoc
// @Summary Reschedule a shipment
// @Description Moves a failed or cancelled shipment to a new date on the order's delivery days and returns the updated order.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param trackingId path string true "Tracking entry ID"
// @Param request body rescheduleRequest true "New delivery date"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/tracking/{trackingId}/reschedule [post]
func (h *OrderHandler) Reschedule(c *fiber.Ctx) error {
	var req rescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	newDate, err := time.Parse(dateLayout, req.NewDate)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "new_date must be formatted as YYYY-MM-DD",
			RayID:   rayID(c),
		})
	}

	order, err := h.service.Reschedule(c.UserContext(), c.Params("id"), c.Params("trackingId"), newDate)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// Progress godoc
// @Summary Report delivery progress for an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} progressResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id}/progress [get]
func (h *OrderHandler) Progress(c *fiber.Ctx) error {
	done, total, err := h.service.Progress(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(progressResponse{
		Delivered: done,
		Total:     total,
	})
}
