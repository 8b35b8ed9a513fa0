package cron

import (
	"testing"
	"time"

	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/testutil"
	"github.com/slotline/booking-app/utils"
)

func TestCompleteFinishedAppointments(t *testing.T) {
	gdb := testutil.SetupDB(t)

	prev := utils.Now
	utils.Now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local) }
	t.Cleanup(func() { utils.Now = prev })

	seed := []models.Appointment{
		// Never confirmed, but its end time is long past: completes anyway.
		{FreelancerID: 1, Date: "2026-08-31", StartTime: "09:00", EndTime: "10:00",
			Status: models.StatusPending, BookingReference: "CRON0001"},
		{FreelancerID: 1, Date: "2026-08-31", StartTime: "09:00", EndTime: "10:00",
			Status: models.StatusConfirmed, BookingReference: "CRON0002"},
		// Ended earlier today.
		{FreelancerID: 1, Date: "2026-09-01", StartTime: "10:00", EndTime: "11:00",
			Status: models.StatusConfirmed, BookingReference: "CRON0003"},
		// Still in the future: untouched.
		{FreelancerID: 1, Date: "2026-09-01", StartTime: "12:30", EndTime: "13:30",
			Status: models.StatusConfirmed, BookingReference: "CRON0004"},
		{FreelancerID: 1, Date: "2026-09-02", StartTime: "09:00", EndTime: "10:00",
			Status: models.StatusPending, BookingReference: "CRON0005"},
		// Terminal: untouched.
		{FreelancerID: 1, Date: "2026-08-31", StartTime: "09:00", EndTime: "10:00",
			Status: models.StatusCancelled, BookingReference: "CRON0006"},
	}
	for i := range seed {
		if err := gdb.Create(&seed[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	completeFinishedAppointments()

	want := map[string]models.AppointmentStatus{
		"CRON0001": models.StatusCompleted,
		"CRON0002": models.StatusCompleted,
		"CRON0003": models.StatusCompleted,
		"CRON0004": models.StatusConfirmed,
		"CRON0005": models.StatusPending,
		"CRON0006": models.StatusCancelled,
	}
	for ref, status := range want {
		var appointment models.Appointment
		if err := gdb.Where("booking_reference = ?", ref).First(&appointment).Error; err != nil {
			t.Fatalf("%s: %v", ref, err)
		}
		if appointment.Status != status {
			t.Errorf("%s: status = %s, want %s", ref, appointment.Status, status)
		}
	}
}
