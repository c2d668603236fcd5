package handler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-gateway/internal/features/addresses/domain"
	"storefront-gateway/internal/features/addresses/service"

	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for the per-user address book.
type AddressHandler struct {
	service *service.AddressService
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(s *service.AddressService) *AddressHandler {
	return &AddressHandler{service: s}
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
	case errors.Is(err, service.ErrAddressNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrIncompleteAddress):
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Message: message,
		RayID:   rayID(c),
	})
}

// addAddressRequest is the payload for appending an address.
type addAddressRequest struct {
	UserID  string         `json:"user_id"`
	Address domain.Address `json:"address"`
}

// selectedResponse is the payload for the selected-address endpoint; the
// address is null when nothing is selected.
type selectedResponse struct {
	Address *domain.Address `json:"address"`
}

// List godoc
// @Summary Read a user's address book
// @Tags addresses
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.Address
// @Failure 400 {object} ErrorResponse
// @Router /addresses [get]
func (h *AddressHandler) List(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}

	addresses, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	if addresses == nil {
		addresses = []domain.Address{}
	}
	return c.Status(http.StatusOK).JSON(addresses)
}

// Add godoc
// @Summary Append an address to the book
// @Description Appends a complete address; the first address of a book becomes the selected one. Returns the updated book.
// @Tags addresses
// @Accept json
// @Produce json
// @Param request body addAddressRequest true "Address to add"
// @Success 201 {array} domain.Address
// @Failure 400 {object} ErrorResponse
// @Router /addresses [post]
func (h *AddressHandler) Add(c *fiber.Ctx) error {
	var req addAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == "" {
		return badRequest(c, "user_id is required")
	}

	addresses, err := h.service.Add(c.UserContext(), req.UserID, req.Address)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(addresses)
}

// Delete godoc
// @Summary Remove an address by position
// @Tags addresses
// @Produce json
// @Param index path int true "Zero-based position in the book"
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.Address
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /addresses/{index} [delete]
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "index must be a number")
	}

	addresses, err := h.service.Delete(c.UserContext(), userID, index)
	if err != nil {
		return fail(c, err)
	}
	if addresses == nil {
		addresses = []domain.Address{}
	}
	return c.Status(http.StatusOK).JSON(addresses)
}

// Select godoc
// @Summary Mark an address as the shipping default
// @Tags addresses
// @Produce json
// @Param index path int true "Zero-based position in the book"
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.Address
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /addresses/{index}/select [put]
func (h *AddressHandler) Select(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "index must be a number")
	}

	address, err := h.service.Select(c.UserContext(), userID, index)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(address)
}

// Selected godoc
// @Summary Read the user's selected address
// @Tags addresses
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} selectedResponse
// @Failure 400 {object} ErrorResponse
// @Router /addresses/selected [get]
func (h *AddressHandler) Selected(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}

	address, err := h.service.Selected(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(selectedResponse{Address: address})
}
