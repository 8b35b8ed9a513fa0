package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/controllers"
	"github.com/slotline/booking-app/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/profile", middleware.Protected(), controllers.GetUserProfile)
}

// SetupProfileRoutes configures display-profile routes
func SetupProfileRoutes(app *fiber.App) {
	profile := app.Group("/profile", middleware.Protected())
	profile.Put("/", controllers.UpdateProfile)
	profile.Post("/avatar", controllers.UpdateAvatar)
}
