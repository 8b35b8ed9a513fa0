package schedule

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

// CreateSchedule creates a candidate-date proposal. Authenticated callers
// own the schedule; guests must supply a creator name (and optionally an
// email) instead.
func CreateSchedule(c *fiber.Ctx) error {
	schedule := new(models.Schedule)
	if err := c.BodyParser(schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if schedule.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "title is required",
		})
	}

	if userID, ok := c.Locals("userID").(uint); ok {
		schedule.OwnerID = &userID
	} else {
		schedule.OwnerID = nil
		if schedule.CreatorName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "creator_name is required for guest schedules",
			})
		}
	}

	for _, slot := range schedule.Slots {
		if _, err := utils.ParseDate(slot.Date); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		}
	}

	if err := db.DB.Create(schedule).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create schedule",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// ListSchedules returns the caller's schedules, newest first.
func ListSchedules(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var schedules []models.Schedule
	if err := db.DB.Where("owner_id = ?", userID).
		Order("created_at desc").Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch schedules",
			Error:   err.Error(),
		})
	}
	return c.JSON(schedules)
}

// GetSchedule returns one schedule. Anyone holding the id may read it.
func GetSchedule(c *fiber.Ctx) error {
	id := c.Params("id")

	var schedule models.Schedule
	if err := db.DB.First(&schedule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Schedule not found",
		})
	}
	return c.JSON(schedule)
}

// UpdateSchedule applies partial updates to a schedule owned by the caller.
func UpdateSchedule(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var schedule models.Schedule
	if err := db.DB.First(&schedule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Schedule not found",
		})
	}
	if schedule.OwnerID == nil || *schedule.OwnerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You do not own this schedule",
		})
	}

	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	schedule.OwnerID = &userID

	if err := db.DB.Save(&schedule).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update schedule",
			Error:   err.Error(),
		})
	}
	return c.JSON(schedule)
}

// DeleteSchedule deletes a schedule owned by the caller.
func DeleteSchedule(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var schedule models.Schedule
	if err := db.DB.First(&schedule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Schedule not found",
		})
	}
	if schedule.OwnerID == nil || *schedule.OwnerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You do not own this schedule",
		})
	}

	if err := db.DB.Delete(&schedule).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to delete schedule",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPublicSchedule is the invitee-facing view: the schedule, its creator's
// display name and email, and every submitted response in submission order.
func GetPublicSchedule(c *fiber.Ctx) error {
	id := c.Params("id")

	var schedule models.Schedule
	if err := db.DB.First(&schedule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Schedule not found",
		})
	}

	var responses []models.AvailabilityResponse
	if err := db.DB.Where("schedule_id = ?", schedule.ID).
		Order("submitted_at asc").Find(&responses).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch responses",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"schedule":      schedule,
		"creator_name":  schedule.CreatorDisplayName(db.DB),
		"creator_email": schedule.CreatorDisplayEmail(db.DB),
		"responses":     responses,
	})
}
