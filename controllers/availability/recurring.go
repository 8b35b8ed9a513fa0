package availability

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

// validateRule checks the HH:MM fields and day-of-week of a recurring rule.
// Overlap between rules is not checked server-side; the client performs
// advisory conflict checking only.
func validateRule(rule *models.RecurringRule) error {
	if rule.DayOfWeek < models.Sunday || rule.DayOfWeek > models.Saturday {
		return fmt.Errorf("day_of_week must be between 0 and 6")
	}
	startMin, err := utils.ParseClock(rule.StartTime)
	if err != nil {
		return err
	}
	endMin, err := utils.ParseClock(rule.EndTime)
	if err != nil {
		return err
	}
	if startMin >= endMin {
		return fmt.Errorf("start_time must be before end_time")
	}
	if rule.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if rule.BufferTime < 0 {
		return fmt.Errorf("buffer_time cannot be negative")
	}
	return nil
}

// CreateRecurringRule creates a weekly availability template.
func CreateRecurringRule(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	rule := new(models.RecurringRule)
	if err := c.BodyParser(rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := validateRule(rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	rule.OwnerID = userID
	if err := db.DB.Create(rule).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create recurring rule",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(rule)
}

// ListRecurringRules returns the caller's rules ordered by day of week.
func ListRecurringRules(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var rules []models.RecurringRule
	if err := db.DB.Where("owner_id = ?", userID).
		Order("day_of_week asc").Find(&rules).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch recurring rules",
			Error:   err.Error(),
		})
	}
	return c.JSON(rules)
}

// UpdateRecurringRule applies partial updates, including toggling IsActive.
func UpdateRecurringRule(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var rule models.RecurringRule
	if err := db.DB.Where("id = ? AND owner_id = ?", id, userID).
		First(&rule).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Recurring rule not found",
		})
	}

	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	rule.OwnerID = userID

	if err := validateRule(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	if err := db.DB.Save(&rule).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update recurring rule",
			Error:   err.Error(),
		})
	}

	return c.JSON(rule)
}

// DeleteRecurringRule deletes a rule owned by the caller.
func DeleteRecurringRule(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var rule models.RecurringRule
	if err := db.DB.Where("id = ? AND owner_id = ?", id, userID).
		First(&rule).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Recurring rule not found",
		})
	}

	if err := db.DB.Delete(&rule).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to delete recurring rule",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
