package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/glowbook/glowbook/cron"
	"github.com/glowbook/glowbook/db"
	"github.com/glowbook/glowbook/redis"
	"github.com/glowbook/glowbook/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("GlowBook API")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupReviewRoutes(app)
	routes.SetupNotificationRoutes(app)
	routes.SetupAdminRoutes(app)

	cron.StartCronJobs()

	log.Fatal(app.Listen(":8000"))
}
