package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/features/auth/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for login, logout and the session
// profile.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
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
	case errors.Is(err, service.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrMissingCredentials):
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

// loginRequest is the payload for the login endpoint.
type loginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// logoutRequest is the payload for the logout endpoint.
type logoutRequest struct {
	UserID string `json:"user_id"`
}

// Login godoc
// @Summary Log a user in
// @Description Exchanges credentials for a token pair, resolves the profile and persists the session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} domain.Session
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	session, err := h.service.Login(c.UserContext(), req.UserName, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(session)
}

// Logout godoc
// @Summary Log a user out
// @Description Drops the user's stored token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body logoutRequest true "User to log out"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req logoutRequest
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

	if err := h.service.Logout(c.UserContext(), req.UserID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me godoc
// @Summary Read the authenticated user's profile
// @Tags auth
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "user_id is required",
			RayID:   rayID(c),
		})
	}

	profile, err := h.service.Profile(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(profile)
}
