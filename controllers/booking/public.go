package booking

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/redis"
	"github.com/slotline/booking-app/utils"
)

var errSlotTaken = fmt.Errorf("slot already taken")

// newBookingReference generates a reference that is not already in use.
// Collisions over a 36^8 space are vanishingly rare; three attempts is
// already generous.
func newBookingReference(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		ref := utils.GenerateBookingReference()
		var existing models.Appointment
		if tx.Where("booking_reference = ?", ref).First(&existing).RowsAffected == 0 {
			return ref, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique booking reference")
}

// CreateAppointment books a time slot on a public booking page. The slot
// claim is a conditional update inside the same transaction as the
// appointment insert, so two concurrent bookings of one slot cannot both
// succeed.
func CreateAppointment(c *fiber.Ctx) error {
	slug := c.Params("slug")

	type BookingInput struct {
		TimeSlotID      uint   `json:"time_slot_id"`
		CustomerName    string `json:"customer_name"`
		CustomerEmail   string `json:"customer_email"`
		CustomerPhone   string `json:"customer_phone"`
		CustomerMessage string `json:"customer_message"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.TimeSlotID == 0 || input.CustomerName == "" || input.CustomerEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "time_slot_id, customer_name and customer_email are required",
		})
	}

	var profile models.FreelancerProfile
	if err := db.DB.Where("slug = ? AND is_public = ?", slug, true).
		First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking page not found",
		})
	}

	var slot models.TimeSlot
	if err := db.DB.Where("id = ? AND owner_id = ? AND is_available = ?",
		input.TimeSlotID, profile.OwnerID, true).First(&slot).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Time slot not found or no longer available",
		})
	}

	var active models.Appointment
	if db.DB.Where("time_slot_id = ? AND status IN ?", slot.ID,
		[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		First(&active).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot is already booked",
		})
	}

	days, err := utils.DaysUntil(slot.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	if days < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot book a slot in the past",
		})
	}
	if days > profile.BookingAdvanceDays {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Bookings can only be made up to %d days in advance", profile.BookingAdvanceDays),
		})
	}

	appointment := models.Appointment{
		TimeSlotID:      slot.ID,
		FreelancerID:    profile.OwnerID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		CustomerMessage: input.CustomerMessage,
		Date:            slot.Date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		Status:          models.StatusPending,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		ref, err := newBookingReference(tx)
		if err != nil {
			return err
		}
		appointment.BookingReference = ref

		// Conditional claim: only succeeds while the slot is still free.
		claim := tx.Model(&models.TimeSlot{}).
			Where("id = ? AND is_available = ?", slot.ID, true).
			Update("is_available", false)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return errSlotTaken
		}

		return tx.Create(&appointment).Error
	})
	if err == errSlotTaken {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot is already booked",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidatePublicPage(slug)

	if err := utils.SendBookingConfirmation(&appointment, profile.BusinessName); err != nil {
		log.Printf("Failed to send booking confirmation for %s: %v", appointment.BookingReference, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"appointment":       appointment,
		"booking_reference": appointment.BookingReference,
		"message": fmt.Sprintf("Your appointment with %s on %s at %s has been requested. Your booking reference is %s.",
			profile.BusinessName, appointment.Date, appointment.StartTime, appointment.BookingReference),
	})
}

// GetAppointmentByReference is the public, unscoped lookup for customers.
func GetAppointmentByReference(c *fiber.Ctx) error {
	reference := c.Params("reference")

	var appointment models.Appointment
	if err := db.DB.Where("booking_reference = ?", reference).
		First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}
	return c.JSON(appointment)
}

// CancelAppointmentByReference lets a customer cancel their own appointment,
// provided it is still at least 24 hours away. The slot is released in the
// same transaction.
func CancelAppointmentByReference(c *fiber.Ctx) error {
	reference := c.Params("reference")

	var appointment models.Appointment
	if err := db.DB.Where("booking_reference = ?", reference).
		First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	if appointment.Status == models.StatusCancelled || appointment.Status == models.StatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Appointment is already %s", appointment.Status),
		})
	}

	hours, err := utils.HoursUntil(appointment.Date, appointment.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	if hours < 24 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Appointments can only be cancelled at least 24 hours in advance",
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := appointment.UpdateStatus(tx, models.StatusCancelled); err != nil {
			return err
		}
		return tx.Model(&models.TimeSlot{}).
			Where("id = ?", appointment.TimeSlotID).
			Update("is_available", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	invalidateFreelancerPage(appointment.FreelancerID)

	if err := utils.SendCancellationNotice(&appointment); err != nil {
		log.Printf("Failed to send cancellation notice for %s: %v", reference, err)
	}

	return c.JSON(fiber.Map{
		"appointment": appointment,
		"message":     "Your appointment has been cancelled",
	})
}

// invalidateFreelancerPage drops the cached public page for a freelancer.
func invalidateFreelancerPage(ownerID uint) {
	var profile models.FreelancerProfile
	if db.DB.Where("owner_id = ?", ownerID).First(&profile).RowsAffected > 0 {
		redis.InvalidatePublicPage(profile.Slug)
	}
}
