package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowbook/glowbook/controllers"
	"github.com/glowbook/glowbook/middleware"
)

// SetupBookingRoutes configures the booking lifecycle routes
func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/bookings", middleware.Protected())

	booking.Post("/", controllers.CreateBooking)
	booking.Get("/me", controllers.ListMyBookings)
	booking.Get("/provider", controllers.ListProviderBookings)
	booking.Get("/:id", controllers.GetBooking)
	booking.Patch("/:id/status", controllers.TransitionBooking)

	// Review eligibility hangs off the booking it gates.
	booking.Get("/:id/can-review", controllers.CanReviewBooking)
}
