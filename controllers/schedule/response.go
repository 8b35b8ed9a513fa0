package schedule

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

// SubmitAvailability records a named respondent's selection against a
// schedule. A second submission under the same name replaces the first.
func SubmitAvailability(c *fiber.Ctx) error {
	id := c.Params("id")

	type ResponseInput struct {
		Name         string                   `json:"name"`
		Availability []models.DayAvailability `json:"availability"`
	}

	input := new(ResponseInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "name is required",
		})
	}

	var schedule models.Schedule
	if err := db.DB.First(&schedule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Schedule not found",
		})
	}

	var response models.AvailabilityResponse
	if db.DB.Where("schedule_id = ? AND name = ?", schedule.ID, input.Name).
		First(&response).RowsAffected > 0 {
		// Resubmission under the same name overwrites the earlier answer.
		response.Availability = input.Availability
		response.SubmittedAt = utils.Now()
		if err := db.DB.Save(&response).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to update response",
				Error:   err.Error(),
			})
		}
		return c.JSON(response)
	}

	response = models.AvailabilityResponse{
		ScheduleID:   schedule.ID,
		Name:         input.Name,
		Availability: input.Availability,
		SubmittedAt:  utils.Now(),
	}
	if err := db.DB.Create(&response).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to submit response",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}
