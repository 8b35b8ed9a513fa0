package availability

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/redis"
	"github.com/slotline/booking-app/utils"
)

// GetPublicAvailability returns the public booking page for a slug: the
// profile plus its available future slots and the earliest bookable date.
// Responses without an explicit date filter are served from the Redis cache
// when possible.
func GetPublicAvailability(c *fiber.Ctx) error {
	slug := c.Params("slug")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	cacheable := startDate == "" && endDate == ""
	if cacheable {
		if cached := redis.GetPublicPage(slug); cached != "" {
			c.Set("Content-Type", "application/json")
			return c.SendString(cached)
		}
	}

	var profile models.FreelancerProfile
	if err := db.DB.Where("slug = ? AND is_public = ?", slug, true).
		First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking page not found",
		})
	}

	if startDate == "" {
		startDate = utils.Today()
	}

	query := db.DB.Where("owner_id = ? AND is_available = ? AND date >= ?",
		profile.OwnerID, true, startDate)
	if endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var slots []models.TimeSlot
	if err := query.Order("date asc, start_time asc").Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}

	nextAvailable := ""
	if len(slots) > 0 {
		nextAvailable = slots[0].Date
	}

	payload := fiber.Map{
		"profile":        profile,
		"time_slots":     slots,
		"next_available": nextAvailable,
	}

	if cacheable {
		if raw, err := json.Marshal(payload); err == nil {
			redis.SetPublicPage(slug, raw)
		}
	}

	return c.JSON(payload)
}
