package availability

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

// GetStats summarises the caller's current week of slots and current month
// of appointments, plus their next upcoming appointments.
func GetStats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	now := utils.Now()
	weekStart := utils.StartOfWeek(now).Format(utils.DateLayout)
	weekEnd := utils.StartOfWeek(now).AddDate(0, 0, 6).Format(utils.DateLayout)
	monthStart := utils.StartOfMonth(now).Format(utils.DateLayout)
	monthEnd := utils.StartOfMonth(now).AddDate(0, 1, -1).Format(utils.DateLayout)

	var totalSlots int64
	db.DB.Model(&models.TimeSlot{}).
		Where("owner_id = ? AND date BETWEEN ? AND ?", userID, weekStart, weekEnd).
		Count(&totalSlots)

	var bookedSlots int64
	db.DB.Model(&models.TimeSlot{}).
		Where("owner_id = ? AND date BETWEEN ? AND ?", userID, weekStart, weekEnd).
		Where("id IN (?)", db.DB.Model(&models.Appointment{}).
			Select("time_slot_id").Where("freelancer_id = ?", userID)).
		Count(&bookedSlots)

	var monthAppointments int64
	db.DB.Model(&models.Appointment{}).
		Where("freelancer_id = ? AND date BETWEEN ? AND ?", userID, monthStart, monthEnd).
		Count(&monthAppointments)

	var upcoming []models.Appointment
	if err := db.DB.
		Where("freelancer_id = ? AND date >= ?", userID, utils.Today()).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Order("date asc, start_time asc").
		Limit(10).
		Find(&upcoming).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch upcoming appointments",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"week": fiber.Map{
			"total_slots":     totalSlots,
			"booked_slots":    bookedSlots,
			"available_slots": totalSlots - bookedSlots,
		},
		"month": fiber.Map{
			"total_appointments": monthAppointments,
		},
		"upcoming_appointments": upcoming,
	})
}
