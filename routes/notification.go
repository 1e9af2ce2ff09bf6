package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowbook/glowbook/controllers"
	"github.com/glowbook/glowbook/middleware"
)

// SetupNotificationRoutes configures the notification feed
func SetupNotificationRoutes(app *fiber.App) {
	notification := app.Group("/notifications", middleware.Protected())

	notification.Get("/", controllers.ListNotifications)
	notification.Get("/stream", controllers.StreamNotifications)
	notification.Patch("/read-all", controllers.MarkAllNotificationsRead)
	notification.Patch("/:id/read", controllers.MarkNotificationRead)
	notification.Delete("/", controllers.DeleteAllNotifications)
	notification.Delete("/:id", controllers.DeleteNotification)
}
