package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/controllers/schedule"
	"github.com/slotline/booking-app/middleware"
)

// SetupScheduleRoutes configures all schedule (guest poll) related routes
func SetupScheduleRoutes(app *fiber.App) {
	group := app.Group("/schedules")

	// Creation accepts both authenticated users and guests
	group.Post("/", middleware.OptionalAuth(), schedule.CreateSchedule)

	group.Get("/", middleware.Protected(), schedule.ListSchedules)
	group.Get("/:id", schedule.GetSchedule)
	group.Put("/:id", middleware.Protected(), schedule.UpdateSchedule)
	group.Delete("/:id", middleware.Protected(), schedule.DeleteSchedule)

	// Invitee-facing routes
	group.Get("/:id/public", schedule.GetPublicSchedule)
	group.Post("/:id/respond", schedule.SubmitAvailability)
}
