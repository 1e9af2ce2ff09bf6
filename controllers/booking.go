package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/glowbook/glowbook/models"
	"github.com/glowbook/glowbook/services"
)

// CreateBooking books a slot with a provider for the authenticated client.
func CreateBooking(c *fiber.Ctx) error {
	type CreateInput struct {
		ProviderID uint                        `json:"provider_id"`
		Items      []services.BookingItemInput `json:"items"`
		Date       string                      `json:"date"` // "2006-01-02"
		TimeSlot   string                      `json:"time_slot"`
	}

	input := new(CreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
	}

	booking, err := bookingService().Create(c.Context(), services.CreateBookingInput{
		ClientID:   currentUserID(c),
		ProviderID: input.ProviderID,
		Items:      input.Items,
		Date:       date,
		TimeSlot:   input.TimeSlot,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// TransitionBooking applies a status change as the authenticated actor.
func TransitionBooking(c *fiber.Ctx) error {
	type TransitionInput struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}

	bookingID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking id",
		})
	}

	input := new(TransitionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	booking, err := bookingService().Transition(c.Context(), uint(bookingID), currentUserID(c), models.BookingStatus(input.Status), input.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}

// GetBooking returns one booking; only the parties and staff may see it.
func GetBooking(c *fiber.Ctx) error {
	bookingID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking id",
		})
	}

	booking, err := bookingService().Get(c.Context(), uint(bookingID))
	if err != nil {
		return respondError(c, err)
	}

	userID := currentUserID(c)
	role, _ := c.Locals("role").(string)
	if booking.ClientID != userID && booking.ProviderID != userID &&
		role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return respondError(c, services.ErrForbidden)
	}
	return c.JSON(booking)
}

// ListMyBookings returns the client's bookings split into upcoming and
// history.
func ListMyBookings(c *fiber.Ctx) error {
	upcoming, past, err := bookingService().ListForClient(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"upcoming": upcoming,
		"history":  past,
	})
}

// ListProviderBookings returns the authenticated provider's bookings,
// optionally filtered by ?status=pending,confirmed.
func ListProviderBookings(c *fiber.Ctx) error {
	var statuses []models.BookingStatus
	if q := c.Query("status"); q != "" {
		for _, s := range strings.Split(q, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, models.BookingStatus(s))
			}
		}
	}

	bookings, err := bookingService().ListForProvider(c.Context(), currentUserID(c), statuses)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}
