// Package testutil wires an in-memory database and a fully routed app for
// handler tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/routes"
)

// SetupDB points the global connection at a fresh in-memory sqlite database
// and migrates the schema. Each test gets its own named database so parallel
// packages cannot see each other's rows.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.FreelancerProfile{},
		&models.TimeSlot{},
		&models.RecurringRule{},
		&models.Appointment{},
		&models.Schedule{},
		&models.AvailabilityResponse{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb
	t.Cleanup(func() { db.DB = nil })
	return gdb
}

// NewApp builds a Fiber app with every route group mounted.
func NewApp() *fiber.App {
	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupProfileRoutes(app)
	routes.SetupAvailabilityRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupScheduleRoutes(app)
	routes.SetupAnalyticsRoutes(app)
	return app
}

// CreateUser inserts a user row directly.
func CreateUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "x"}
	if err := db.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// TokenFor issues a bearer token for a user using the middleware's default
// signing secret.
func TokenFor(t *testing.T, userID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("solid_secret_key"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}
