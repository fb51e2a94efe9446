package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"github.com/Arawerawer/RouteLink/src/core/middleware"
	"github.com/Arawerawer/RouteLink/src/modules/health"
	"github.com/Arawerawer/RouteLink/src/modules/locations"
	"github.com/Arawerawer/RouteLink/src/modules/schedules"
)

func InitialiseAndSetupRoutes(app *fiber.App, db *gorm.DB) {
	root := app.Group("/", logger.New())

	api := root.Group("/api")
	setupAPIRoutes(api, db)
}

func setupAPIRoutes(router fiber.Router, db *gorm.DB) {
	// Health check stays unauthenticated
	router.Get("/health", health.Check(db))

	// Grouped API endpoints
	locationGroup := router.Group("/locations", middleware.Protected())
	scheduleGroup := router.Group("/schedules", middleware.Protected())

	// Location routes
	locationGroup.Get("/", locations.List(db))
	locationGroup.Post("/", locations.Create(db))
	locationGroup.Put("/:id", locations.Update(db))
	locationGroup.Delete("/:id", locations.Delete(db))

	// Schedule routes
	scheduleGroup.Get("/", schedules.List(db))
	scheduleGroup.Post("/", schedules.Create(db))
	scheduleGroup.Put("/:id", schedules.Update(db))
	scheduleGroup.Delete("/:id", schedules.Delete(db))
}
