package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/controllers/availability"
	"github.com/slotline/booking-app/middleware"
)

// SetupAvailabilityRoutes configures all availability related routes
func SetupAvailabilityRoutes(app *fiber.App) {
	group := app.Group("/availability")

	// Public booking page
	group.Get("/public/:slug", availability.GetPublicAvailability)

	// Owner-facing routes
	group.Post("/profile", middleware.Protected(), availability.CreateProfile)
	group.Get("/profile", middleware.Protected(), availability.GetProfile)
	group.Put("/profile", middleware.Protected(), availability.UpdateProfile)

	group.Post("/slots", middleware.Protected(), availability.CreateSlot)
	group.Get("/slots", middleware.Protected(), availability.ListAvailability)
	group.Put("/slots/:id", middleware.Protected(), availability.UpdateSlot)
	group.Delete("/slots/:id", middleware.Protected(), availability.DeleteSlot)

	group.Post("/recurring", middleware.Protected(), availability.CreateRecurringRule)
	group.Get("/recurring", middleware.Protected(), availability.ListRecurringRules)
	group.Put("/recurring/:id", middleware.Protected(), availability.UpdateRecurringRule)
	group.Delete("/recurring/:id", middleware.Protected(), availability.DeleteRecurringRule)

	group.Post("/generate-slots", middleware.Protected(), availability.GenerateSlots)
	group.Get("/stats", middleware.Protected(), availability.GetStats)
}
