package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/features/cart/domain"
	"storefront-gateway/internal/features/cart/service"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the per-user cart.
type CartHandler struct {
	service *service.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(s *service.CartService) *CartHandler {
	return &CartHandler{service: s}
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

func fail(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidItem):
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

func requireUser(c *fiber.Ctx) (string, error) {
	userID := c.Query("user_id")
	if userID == "" {
		return "", c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "user_id is required",
			RayID:   rayID(c),
		})
	}
	return userID, nil
}

// addItemRequest is the payload for adding a cart line.
type addItemRequest struct {
	UserID string          `json:"user_id"`
	Item   domain.CartItem `json:"item"`
}

// updateQuantityRequest is the payload for changing a line's quantity.
type updateQuantityRequest struct {
	UserID   string `json:"user_id"`
	Quantity int    `json:"quantity"`
}

// Get godoc
// @Summary Read a user's cart
// @Tags cart
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil || userID == "" {
		return err
	}

	cart, err := h.service.Get(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(cart)
}

// AddItem godoc
// @Summary Add an item to the cart
// @Description Adds a product line, merging with an existing line of the same product, and returns the updated cart.
// @Tags cart
// @Accept json
// @Produce json
// @Param request body addItemRequest true "Item to add"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}
	if req.UserID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "user_id is required",
			RayID:   rayID(c),
		})
	}

	cart, err := h.service.AddItem(c.UserContext(), req.UserID, req.Item)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(cart)
}

// UpdateQuantity godoc
// @Summary Change a cart line's quantity
// @Description Sets the quantity of an existing line; zero removes the line. Returns the updated cart.
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body updateQuantityRequest true "New quantity"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}
	if req.UserID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "user_id is required",
			RayID:   rayID(c),
		})
	}

	cart, err := h.service.UpdateQuantity(c.UserContext(), req.UserID, c.Params("id"), req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(cart)
}

// RemoveItem godoc
// @Summary Remove a line from the cart
// @Tags cart
// @Produce json
// @Param id path string true "Product ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} ErrorResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil || userID == "" {
		return err
	}

	cart, err := h.service.RemoveItem(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(cart)
}

// Clear godoc
// @Summary Empty a user's cart
// @Tags cart
// @Produce json
// @Param user_id query string true "User ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil || userID == "" {
		return err
	}

	if err := h.service.Clear(c.UserContext(), userID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
