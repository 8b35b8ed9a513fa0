package db

import (
	"fmt"
	"log"

	"github.com/slotline/booking-app/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.FreelancerProfile{},
		&models.TimeSlot{},
		&models.RecurringRule{},
		&models.Appointment{},
		&models.Schedule{},
		&models.AvailabilityResponse{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
