package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowbook/glowbook/controllers"
	"github.com/glowbook/glowbook/middleware"
)

// SetupAdminRoutes configures the admin console: the verification queue,
// account administration and the moderation queue
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireStaff())

	// Provider verification workflow
	admin.Get("/providers", controllers.ListProvidersByState)
	admin.Post("/providers/:id/verify", controllers.VerifyProvider)
	admin.Post("/providers/:id/reject", controllers.RejectProvider)
	admin.Post("/providers/:id/suspend", controllers.SuspendProvider)
	admin.Post("/providers/:id/activate", controllers.ActivateProvider)
	admin.Delete("/providers/:id", controllers.DeleteProvider)

	// Account administration
	admin.Get("/users", controllers.ListUsers)
	admin.Post("/users/:id/block", controllers.BlockUser)
	admin.Post("/users/:id/unblock", controllers.UnblockUser)
	admin.Patch("/users/:id/role", controllers.ChangeUserRole)
	admin.Delete("/users/:id", controllers.DeleteUser)

	// Moderation queue
	admin.Get("/reports", controllers.ListPendingReports)
	admin.Post("/reports/:id/resolve", controllers.ResolveReport)
}
