package availability

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

// GenerateSlots expands the caller's active recurring rules into concrete
// time slots over an inclusive date range. Slots whose (owner, date, start)
// already exists are skipped, which makes the operation idempotent. Returns
// the number of slots actually created.
func GenerateSlots(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type GenerateInput struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}

	input := new(GenerateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	start, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	end, err := utils.ParseDate(input.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "end_date must not be before start_date",
		})
	}

	var rules []models.RecurringRule
	if err := db.DB.Where("owner_id = ? AND is_active = ?", userID, true).
		Find(&rules).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch recurring rules",
			Error:   err.Error(),
		})
	}
	if len(rules) == 0 {
		return c.JSON(fiber.Map{"created_slots": 0})
	}

	// Index rules by weekday so each day of the range is one map lookup.
	byWeekday := make(map[models.DayOfWeek][]models.RecurringRule)
	for _, rule := range rules {
		byWeekday[rule.DayOfWeek] = append(byWeekday[rule.DayOfWeek], rule)
	}

	created := 0
	for _, day := range utils.DatesInRange(start, end) {
		date := day.Format(utils.DateLayout)
		for _, rule := range byWeekday[models.DayOfWeek(day.Weekday())] {
			for _, generated := range utils.ExpandRule(rule, date) {
				var existing models.TimeSlot
				if db.DB.Where("owner_id = ? AND date = ? AND start_time = ?",
					userID, generated.Date, generated.StartTime).
					First(&existing).RowsAffected > 0 {
					continue
				}
				slot := models.TimeSlot{
					OwnerID:     userID,
					Date:        generated.Date,
					StartTime:   generated.StartTime,
					EndTime:     generated.EndTime,
					Duration:    rule.Duration,
					BufferTime:  rule.BufferTime,
					IsAvailable: true,
				}
				if err := db.DB.Create(&slot).Error; err != nil {
					return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
						Message: "Failed to create generated slot",
						Error:   err.Error(),
					})
				}
				created++
			}
		}
	}

	if created > 0 {
		invalidateOwnerPage(userID)
	}

	return c.JSON(fiber.Map{"created_slots": created})
}
