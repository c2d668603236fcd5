package handler

import (
	"errors"
	"net/http"
	"time"

	"storefront-gateway/internal/features/schedule/domain"

	"github.com/gofiber/fiber/v2"
)

// dateLayout is the calendar-date format used on the query string.
const dateLayout = "2006-01-02"

// ScheduleHandler handles HTTP requests for delivery-date computation.
type ScheduleHandler struct{}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler() *ScheduleHandler {
	return &ScheduleHandler{}
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

// nextDateResponse is the payload for the next-date endpoint.
type nextDateResponse struct {
	// Combo is the delivery combo the date was computed for.
	Combo string `json:"combo"`
	// NextDate is the default subscription start date.
	NextDate string `json:"next_date"`
	// Weekday is the weekday of NextDate.
	Weekday string `json:"weekday"`
}

// validateResponse is the payload for the validate endpoint.
type validateResponse struct {
	Combo string `json:"combo"`
	Date  string `json:"date"`
	Valid bool   `json:"valid"`
}

// NextDate godoc
// @Summary Compute the default subscription start date
// @Description Returns the next valid delivery date for the given combo, starting from the reference date (today when omitted).
// @Tags delivery
// @Produce json
// @Param combo query string true "Delivery combo (2-4-6 or 3-5-7)"
// @Param from query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} nextDateResponse
// @Failure 400 {object} ErrorResponse
// @Router /delivery/next-date [get]
func (h *ScheduleHandler) NextDate(c *fiber.Ctx) error {
	combo, err := domain.ParseCombo(c.Query("combo"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "combo must be 2-4-6 or 3-5-7",
			RayID:   rayID(c),
		})
	}

	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(dateLayout, raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "from must be formatted as YYYY-MM-DD",
				RayID:   rayID(c),
			})
		}
	}

	next := domain.NextValidDate(combo, from)

	return c.Status(http.StatusOK).JSON(nextDateResponse{
		Combo:    string(combo),
		NextDate: next.Format(dateLayout),
		Weekday:  next.Weekday().String(),
	})
}

// Validate godoc
// @Summary Check a user-picked delivery date against a combo
// @Description Reports whether the date's weekday belongs to the combo's delivery-day set.
// @Tags delivery
// @Produce json
// @Param combo query string true "Delivery combo (2-4-6 or 3-5-7)"
// @Param date query string true "Candidate date (YYYY-MM-DD)"
// @Success 200 {object} validateResponse
// @Failure 400 {object} ErrorResponse
// @Router /delivery/validate [get]
func (h *ScheduleHandler) Validate(c *fiber.Ctx) error {
	combo, err := domain.ParseCombo(c.Query("combo"))
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCombo) {
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "combo must be 2-4-6 or 3-5-7",
			RayID:   rayID(c),
		})
	}

	raw := c.Query("date")
	if raw == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "date is required",
			RayID:   rayID(c),
		})
	}

	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "date must be formatted as YYYY-MM-DD",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(validateResponse{
		Combo: string(combo),
		Date:  raw,
		Valid: domain.IsValidDeliveryDay(combo, day),
	})
}
