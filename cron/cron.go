package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/utils"
)

// StartCronJobs initializes and starts the background scheduler: reminder
// emails for upcoming appointments and auto-completion of finished ones.
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()

	// Run every minute to check for appointments starting in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}

	// Run hourly to mark confirmed appointments whose end time has passed
	_, err = c.AddFunc("0 * * * *", completeFinishedAppointments)
	if err != nil {
		log.Fatalf("Failed to add completion cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	now := utils.Now()
	today := now.Format(utils.DateLayout)
	windowStart := now.Add(55 * time.Minute).Format(utils.ClockLayout)
	windowEnd := now.Add(65 * time.Minute).Format(utils.ClockLayout)
	if windowEnd < windowStart {
		// Window crosses midnight; tomorrow's run will catch those.
		return
	}

	var appointments []models.Appointment
	err := db.DB.
		Where("status = ? AND date = ? AND start_time BETWEEN ? AND ?",
			models.StatusConfirmed, today, windowStart, windowEnd).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.CustomerEmail == "" {
			continue
		}
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.CustomerEmail)
	}
}

// completeFinishedAppointments advances active appointments to completed
// once their end time has passed. Pending ones complete too; an appointment
// that ran without ever being confirmed still happened.
func completeFinishedAppointments() {
	now := utils.Now()
	today := now.Format(utils.DateLayout)
	clock := now.Format(utils.ClockLayout)

	var appointments []models.Appointment
	err := db.DB.
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Where("date < ? OR (date = ? AND end_time <= ?)", today, today, clock).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for completion: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := appointment.UpdateStatus(db.DB, models.StatusCompleted); err != nil {
			log.Printf("Failed to complete appointment %d: %v", appointment.ID, err)
		}
	}
	if len(appointments) > 0 {
		log.Printf("Marked %d appointments completed", len(appointments))
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Booking Reference:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to cancel, use your booking reference.</p>
	`, appointment.CustomerName, appointment.Date,
		appointment.StartTime, appointment.EndTime, appointment.BookingReference)

	return utils.SendEmail(appointment.CustomerEmail, subject, body)
}
