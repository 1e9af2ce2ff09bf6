package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowbook/glowbook/controllers"
	"github.com/glowbook/glowbook/middleware"
)

// SetupReviewRoutes configures review submission, replies and reporting
func SetupReviewRoutes(app *fiber.App) {
	review := app.Group("/reviews", middleware.Protected())

	review.Post("/", controllers.SubmitReview)
	review.Post("/:id/respond", controllers.RespondToReview)
	review.Post("/:id/report", controllers.ReportReview)
}
