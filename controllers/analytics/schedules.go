package analytics

import (
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

const activeScheduleWindow = 30 * 24 * time.Hour

// scheduleStatus derives the reported lifecycle state of a schedule.
// Active: younger than 30 days with at least one candidate slot. Completed:
// at least as many responses as candidate slots. Otherwise expired.
func scheduleStatus(schedule *models.Schedule, responses int64, now time.Time) string {
	if len(schedule.Slots) > 0 && now.Sub(schedule.CreatedAt) < activeScheduleWindow {
		return "active"
	}
	if int64(len(schedule.Slots)) <= responses {
		return "completed"
	}
	return "expired"
}

// GetScheduleAnalytics summarises the caller's schedules and the response
// activity on the 10 most recent ones.
func GetScheduleAnalytics(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	now := utils.Now()

	var totalSchedules int64
	db.DB.Model(&models.Schedule{}).
		Where("owner_id = ?", userID).Count(&totalSchedules)

	// Candidate slots live in a JSON column, so the ≥1-slot half of the
	// active test has to happen after loading the rows.
	activeCount := 0
	var withinWindow []models.Schedule
	db.DB.Where("owner_id = ? AND created_at > ?", userID, now.Add(-activeScheduleWindow)).
		Find(&withinWindow)
	for i := range withinWindow {
		if len(withinWindow[i].Slots) > 0 {
			activeCount++
		}
	}

	var recent []models.Schedule
	if err := db.DB.Where("owner_id = ?", userID).
		Order("created_at desc").Limit(10).Find(&recent).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to fetch schedules",
			Error:   err.Error(),
		})
	}

	type ScheduleSummary struct {
		ID           uint   `json:"id"`
		Title        string `json:"title"`
		Participants int    `json:"participants"`
		Responses    int64  `json:"responses"`
		Status       string `json:"status"`
		CreatedAt    string `json:"created_at"`
	}

	totalParticipants := 0
	var totalResponses int64
	summaries := make([]ScheduleSummary, 0, len(recent))

	for i := range recent {
		schedule := &recent[i]

		var responses int64
		db.DB.Model(&models.AvailabilityResponse{}).
			Where("schedule_id = ?", schedule.ID).Count(&responses)

		status := scheduleStatus(schedule, responses, now)

		totalParticipants += len(schedule.Slots)
		totalResponses += responses

		summaries = append(summaries, ScheduleSummary{
			ID:           schedule.ID,
			Title:        schedule.Title,
			Participants: len(schedule.Slots),
			Responses:    responses,
			Status:       status,
			CreatedAt:    schedule.CreatedAt.Format(utils.DateLayout),
		})
	}

	responseRate := 0
	if totalParticipants > 0 {
		responseRate = int(math.Round(float64(totalResponses) / float64(totalParticipants) * 100))
	}

	return c.JSON(fiber.Map{
		"total_schedules":    totalSchedules,
		"active_schedules":   activeCount,
		"total_participants": totalParticipants,
		"total_responses":    totalResponses,
		"response_rate_pct":  responseRate,
		"recent_schedules":   summaries,
	})
}
