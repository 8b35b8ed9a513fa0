package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/controllers/analytics"
	"github.com/slotline/booking-app/middleware"
)

// SetupAnalyticsRoutes configures all analytics related routes
func SetupAnalyticsRoutes(app *fiber.App) {
	group := app.Group("/analytics", middleware.Protected())
	group.Get("/dashboard", analytics.GetDashboardAnalytics)
	group.Get("/schedules", analytics.GetScheduleAnalytics)
}
