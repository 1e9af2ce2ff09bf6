package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowbook/glowbook/controllers"
	"github.com/glowbook/glowbook/middleware"
)

// SetupProviderRoutes configures public discovery and provider self-service
func SetupProviderRoutes(app *fiber.App) {
	provider := app.Group("/providers")

	// Public discovery
	provider.Get("/", controllers.ListProviders)
	provider.Get("/:id", controllers.GetProvider)
	provider.Get("/:id/reviews", controllers.ListProviderReviews)

	// Self-service for the authenticated provider
	me := app.Group("/provider", middleware.Protected())
	me.Get("/profile", controllers.GetMyProviderProfile)
	me.Put("/profile", controllers.UpdateProviderProfile)
	me.Patch("/active", controllers.SetProviderActive)

	me.Get("/working-hours", controllers.GetWorkingHours)
	me.Put("/working-hours", controllers.SetWorkingHours)

	me.Post("/services", controllers.CreateService)
	me.Put("/services/:id", controllers.UpdateService)
	me.Delete("/services/:id", controllers.DeleteService)
}
