package models_test

import (
	"testing"

	"github.com/slotline/booking-app/models"
)

func TestTimeSlotOverlaps(t *testing.T) {
	slot := models.TimeSlot{StartTime: "09:00", EndTime: "10:00"}

	cases := []struct {
		start, end string
		want       bool
	}{
		{"09:00", "10:00", true},
		{"09:30", "10:30", true},
		{"08:30", "09:30", true},
		{"08:00", "11:00", true},
		{"10:00", "11:00", false}, // touching intervals do not overlap
		{"08:00", "09:00", false},
		{"11:00", "12:00", false},
	}
	for _, tc := range cases {
		if got := slot.Overlaps(tc.start, tc.end); got != tc.want {
			t.Errorf("Overlaps(%s, %s) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}
