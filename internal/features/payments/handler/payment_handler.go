package handler

import (
	"net/http"

	"storefront-gateway/internal/core/httpclient"
	"storefront-gateway/internal/features/payments/ports"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for the payment flow.
type PaymentHandler struct {
	provider ports.PaymentProvider
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(p ports.PaymentProvider) *PaymentHandler {
	return &PaymentHandler{provider: p}
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

// VNPayReturn godoc
// @Summary Confirm a VNPay payment
// @Description Relays the backend's settlement result after the user returns
// @Description from the hosted payment page. The backend owns the paid flag.
// @Tags payments
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /payments/vnpay_return [get]
func (h *PaymentHandler) VNPayReturn(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "user_id is required",
			RayID:   rayID(c),
		})
	}
	c.SetUserContext(httpclient.WithUser(c.UserContext(), userID))

	result, err := h.provider.VNPayReturn(c.UserContext())
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(result)
}
