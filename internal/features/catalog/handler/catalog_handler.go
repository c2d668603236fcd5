package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/core/httpclient"
	"storefront-gateway/internal/features/catalog/domain"
	"storefront-gateway/internal/features/catalog/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for packages, product search and
// search history.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(s *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
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
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, service.ErrPackageNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmptyQuery):
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

// historyResponse is the payload for the search-history endpoint.
type historyResponse struct {
	History []string `json:"history"`
}

// ListPackages godoc
// @Summary List published packages
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Package
// @Failure 502 {object} ErrorResponse
// @Router /packages [get]
func (h *CatalogHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.service.ListPackages(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	if packages == nil {
		packages = []domain.Package{}
	}
	return c.Status(http.StatusOK).JSON(packages)
}

// GetPackage godoc
// @Summary Fetch a single package
// @Tags catalog
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} domain.Package
// @Failure 404 {object} ErrorResponse
// @Router /packages/{id} [get]
func (h *CatalogHandler) GetPackage(c *fiber.Ctx) error {
	pkg, err := h.service.GetPackage(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(pkg)
}

// ListBrandPackages godoc
// @Summary List the packages of one brand
// @Tags catalog
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {array} domain.Package
// @Failure 502 {object} ErrorResponse
// @Router /brands/{id}/packages [get]
func (h *CatalogHandler) ListBrandPackages(c *fiber.Ctx) error {
	packages, err := h.service.ListPackagesByBrand(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if packages == nil {
		packages = []domain.Package{}
	}
	return c.Status(http.StatusOK).JSON(packages)
}

// Search godoc
// @Summary Search products
// @Description Runs a free-text product search. When user_id is present the query is recorded in that user's search history.
// @Tags catalog
// @Produce json
// @Param q query string true "Search query"
// @Param user_id query string false "User ID for history recording"
// @Success 200 {array} domain.Product
// @Failure 400 {object} ErrorResponse
// @Router /products/search [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID != "" {
		c.SetUserContext(httpclient.WithUser(c.UserContext(), userID))
	}

	products, err := h.service.Search(c.UserContext(), userID, c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.Status(http.StatusOK).JSON(products)
}

// History godoc
// @Summary Read a user's search history
// @Tags catalog
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} historyResponse
// @Failure 400 {object} ErrorResponse
// @Router /search/history [get]
func (h *CatalogHandler) History(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "user_id is required",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(historyResponse{
		History: h.service.History(c.UserContext(), userID),
	})
}

// ClearHistory godoc
// @Summary Clear a user's search history
// @Tags catalog
// @Produce json
// @Param user_id query string true "User ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /search/history [delete]
func (h *CatalogHandler) ClearHistory(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "user_id is required",
			RayID:   rayID(c),
		})
	}

	if err := h.service.ClearHistory(c.UserContext(), userID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
