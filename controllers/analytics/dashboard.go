package analytics

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

const bookingRateTarget = 85 // percent

// appointmentRevenue is hourly rate times the appointment's length in hours.
func appointmentRevenue(a *models.Appointment, hourlyRate float64) float64 {
	start, err := utils.ParseClock(a.StartTime)
	if err != nil {
		return 0
	}
	end, err := utils.ParseClock(a.EndTime)
	if err != nil || end <= start {
		return 0
	}
	return hourlyRate * float64(end-start) / 60.0
}

// revenueBetween sums revenue over confirmed and completed appointments in
// an inclusive date window.
func revenueBetween(ownerID uint, hourlyRate float64, startDate, endDate string) float64 {
	var appointments []models.Appointment
	db.DB.Where("freelancer_id = ? AND date BETWEEN ? AND ?", ownerID, startDate, endDate).
		Where("status IN ?", []models.AppointmentStatus{models.StatusConfirmed, models.StatusCompleted}).
		Find(&appointments)

	total := 0.0
	for i := range appointments {
		total += appointmentRevenue(&appointments[i], hourlyRate)
	}
	return total
}

// GetDashboardAnalytics derives the owner's revenue, booking-rate and weekly
// activity report. Top services and engagement figures come from the
// MetricsSource placeholder until real per-service tracking exists.
func GetDashboardAnalytics(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.FreelancerProfile
	hourlyRate := 0.0
	if db.DB.Where("owner_id = ?", userID).First(&profile).RowsAffected > 0 {
		hourlyRate = profile.HourlyRate
	}

	now := utils.Now()
	monthStart := utils.StartOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, -1)
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	lastMonthEnd := monthStart.AddDate(0, 0, -1)

	thisMonthRevenue := revenueBetween(userID, hourlyRate,
		monthStart.Format(utils.DateLayout), monthEnd.Format(utils.DateLayout))
	lastMonthRevenue := revenueBetween(userID, hourlyRate,
		lastMonthStart.Format(utils.DateLayout), lastMonthEnd.Format(utils.DateLayout))

	growth := 0.0
	if lastMonthRevenue > 0 {
		growth = (thisMonthRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	} else if thisMonthRevenue > 0 {
		growth = 100
	}

	// Booking rate: booked slots over total slots this month.
	var totalSlots, bookedSlots int64
	db.DB.Model(&models.TimeSlot{}).
		Where("owner_id = ? AND date BETWEEN ? AND ?", userID,
			monthStart.Format(utils.DateLayout), monthEnd.Format(utils.DateLayout)).
		Count(&totalSlots)
	db.DB.Model(&models.TimeSlot{}).
		Where("owner_id = ? AND date BETWEEN ? AND ?", userID,
			monthStart.Format(utils.DateLayout), monthEnd.Format(utils.DateLayout)).
		Where("id IN (?)", db.DB.Model(&models.Appointment{}).
			Select("time_slot_id").Where("freelancer_id = ?", userID)).
		Count(&bookedSlots)

	bookingRate := 0
	if totalSlots > 0 {
		bookingRate = int(math.Round(float64(bookedSlots) / float64(totalSlots) * 100))
	}

	// Sun-Sat breakdown for the current week.
	weekStart := utils.StartOfWeek(now)
	type DayBreakdown struct {
		Day      string  `json:"day"`
		Date     string  `json:"date"`
		Bookings int64   `json:"bookings"`
		Revenue  float64 `json:"revenue"`
	}
	week := make([]DayBreakdown, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		date := day.Format(utils.DateLayout)

		var appointments []models.Appointment
		db.DB.Where("freelancer_id = ? AND date = ?", userID, date).
			Where("status IN ?", []models.AppointmentStatus{models.StatusConfirmed, models.StatusCompleted}).
			Find(&appointments)

		revenue := 0.0
		for j := range appointments {
			revenue += appointmentRevenue(&appointments[j], hourlyRate)
		}
		week = append(week, DayBreakdown{
			Day:      day.Format("Mon"),
			Date:     date,
			Bookings: int64(len(appointments)),
			Revenue:  revenue,
		})
	}

	return c.JSON(fiber.Map{
		"revenue": fiber.Map{
			"this_month": thisMonthRevenue,
			"last_month": lastMonthRevenue,
			"growth_pct": growth,
			"currency":   profile.Currency,
		},
		"booking_rate": fiber.Map{
			"value_pct":  bookingRate,
			"target_pct": bookingRateTarget,
		},
		"weekly_breakdown":        week,
		"top_services":            Metrics.TopServices(thisMonthRevenue),
		"average_session_minutes": Metrics.AverageSessionMinutes(),
		"customer_satisfaction":   Metrics.CustomerSatisfaction(),
		"response_rate_pct":       Metrics.ResponseRate(),
		"generated_at":            utils.Now(),
	})
}
