package availability

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

var errSlotOverlap = fmt.Errorf("slot overlaps an existing slot")

// validateSlotTimes checks the date and HH:MM fields of a slot.
func validateSlotTimes(date, start, end string) error {
	if _, err := utils.ParseDate(date); err != nil {
		return err
	}
	startMin, err := utils.ParseClock(start)
	if err != nil {
		return err
	}
	endMin, err := utils.ParseClock(end)
	if err != nil {
		return err
	}
	if startMin >= endMin {
		return fmt.Errorf("start_time must be before end_time")
	}
	return nil
}

// CreateSlot creates one concrete bookable time slot. The overlap check and
// the insert run inside a single transaction so two concurrent creations
// cannot both pass the check.
func CreateSlot(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	slot := new(models.TimeSlot)
	if err := c.BodyParser(slot); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := validateSlotTimes(slot.Date, slot.StartTime, slot.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	slot.OwnerID = userID
	slot.IsAvailable = true

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var conflicting models.TimeSlot
		if tx.Where("owner_id = ? AND date = ? AND start_time < ? AND ? < end_time",
			userID, slot.Date, slot.EndTime, slot.StartTime).
			First(&conflicting).RowsAffected > 0 {
			return errSlotOverlap
		}
		return tx.Create(slot).Error
	})
	if err == errSlotOverlap {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot overlaps an existing slot",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create time slot",
			Error:   err.Error(),
		})
	}

	invalidateOwnerPage(userID)
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// ListAvailability returns the caller's time slots (optionally filtered by
// date range) ordered by date and start time, plus all recurring rules
// ordered by day of week.
func ListAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	query := db.DB.Where("owner_id = ?", userID)
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var slots []models.TimeSlot
	if err := query.Order("date asc, start_time asc").Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch time slots",
			Error:   err.Error(),
		})
	}

	var rules []models.RecurringRule
	if err := db.DB.Where("owner_id = ?", userID).
		Order("day_of_week asc").Find(&rules).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch recurring rules",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"time_slots":      slots,
		"recurring_rules": rules,
	})
}

// UpdateSlot applies partial updates to a slot owned by the caller.
func UpdateSlot(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var slot models.TimeSlot
	if err := db.DB.Where("id = ? AND owner_id = ?", id, userID).
		First(&slot).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Time slot not found",
		})
	}

	if err := c.BodyParser(&slot); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	slot.OwnerID = userID

	if err := validateSlotTimes(slot.Date, slot.StartTime, slot.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	if err := db.DB.Save(&slot).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update time slot",
			Error:   err.Error(),
		})
	}

	invalidateOwnerPage(userID)
	return c.JSON(slot)
}

// DeleteSlot deletes a slot owned by the caller. Idempotent: deleting a slot
// that does not exist (or is not theirs) succeeds with nothing to do.
func DeleteSlot(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var slot models.TimeSlot
	if err := db.DB.Where("id = ? AND owner_id = ?", id, userID).
		First(&slot).Error; err != nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	if err := db.DB.Delete(&slot).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to delete time slot",
			Error:   err.Error(),
		})
	}

	invalidateOwnerPage(userID)
	return c.SendStatus(fiber.StatusNoContent)
}
