package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowbook/glowbook/controllers"
	"github.com/glowbook/glowbook/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/verify-otp", controllers.VerifyOTP)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/me/picture", middleware.Protected(), controllers.UploadProfilePicture)
}
