package booking

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

// GetAppointments lists the caller's appointments, optionally filtered by
// status and date range, ordered by date and start time.
func GetAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	query := db.DB.Where("freelancer_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var appointments []models.Appointment
	if err := query.Order("date asc, start_time asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns one appointment owned by the caller.
func GetAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Preload("TimeSlot").
		Where("id = ? AND freelancer_id = ?", id, userID).
		First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}
	return c.JSON(appointment)
}

// UpdateAppointmentStatus lets the owner confirm or cancel an appointment.
// A cancellation releases the slot in the same transaction.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	type StatusInput struct {
		Status models.AppointmentStatus `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Status != models.StatusConfirmed && input.Status != models.StatusCancelled {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Status must be confirmed or cancelled",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Where("id = ? AND freelancer_id = ?", id, userID).
		First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := appointment.UpdateStatus(tx, input.Status); err != nil {
			return err
		}
		if input.Status == models.StatusCancelled {
			return tx.Model(&models.TimeSlot{}).
				Where("id = ?", appointment.TimeSlotID).
				Update("is_available", true).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment status",
			Error:   err.Error(),
		})
	}

	if input.Status == models.StatusCancelled {
		invalidateFreelancerPage(userID)
	}

	return c.JSON(appointment)
}
