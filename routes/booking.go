package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/controllers/booking"
	"github.com/slotline/booking-app/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App) {
	group := app.Group("/booking")

	// Public customer routes
	group.Post("/:slug/book", booking.CreateAppointment)
	group.Get("/appointment/:reference", booking.GetAppointmentByReference)
	group.Put("/appointment/:reference/cancel", booking.CancelAppointmentByReference)

	// Owner routes
	group.Get("/appointments", middleware.Protected(), booking.GetAppointments)
	group.Get("/appointments/:id", middleware.Protected(), booking.GetAppointment)
	group.Put("/appointments/:id/status", middleware.Protected(), booking.UpdateAppointmentStatus)
}
