package utils

import (
	"testing"
	"time"

	"github.com/slotline/booking-app/models"
)

func TestExpandRule_EmitsOnlySlotsWithinWindow(t *testing.T) {
	// 09:00-10:00 with 30min duration and 10min buffer: the first slot is
	// 09:00-09:30; the next window starts 09:40 and would end 10:10, past
	// the rule's end, so it is not emitted.
	rule := models.RecurringRule{
		StartTime:  "09:00",
		EndTime:    "10:00",
		Duration:   30,
		BufferTime: 10,
	}

	slots := ExpandRule(rule, "2026-09-07")
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d: %+v", len(slots), slots)
	}
	if slots[0].StartTime != "09:00" || slots[0].EndTime != "09:30" {
		t.Errorf("unexpected slot %+v", slots[0])
	}
	if slots[0].Date != "2026-09-07" {
		t.Errorf("unexpected date %q", slots[0].Date)
	}
}

func TestExpandRule_SlotsSpacedByDurationPlusBuffer(t *testing.T) {
	rule := models.RecurringRule{
		StartTime:  "09:00",
		EndTime:    "12:00",
		Duration:   45,
		BufferTime: 15,
	}

	slots := ExpandRule(rule, "2026-09-07")
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	for i, slot := range slots {
		start, _ := ParseClock(slot.StartTime)
		end, _ := ParseClock(slot.EndTime)
		if end-start != rule.Duration {
			t.Errorf("slot %d has length %d, want %d", i, end-start, rule.Duration)
		}
		if end > 12*60 {
			t.Errorf("slot %d ends past the rule window: %s", i, slot.EndTime)
		}
		if i > 0 {
			prev, _ := ParseClock(slots[i-1].StartTime)
			if start-prev != rule.Duration+rule.BufferTime {
				t.Errorf("slots %d and %d spaced by %d, want %d", i-1, i, start-prev, rule.Duration+rule.BufferTime)
			}
		}
	}
}

func TestExpandRule_ZeroBuffer(t *testing.T) {
	rule := models.RecurringRule{
		StartTime: "10:00",
		EndTime:   "11:00",
		Duration:  30,
	}

	slots := ExpandRule(rule, "2026-09-07")
	if len(slots) != 2 {
		t.Fatalf("expected 2 back-to-back slots, got %d", len(slots))
	}
	if slots[1].StartTime != "10:30" {
		t.Errorf("second slot starts at %s, want 10:30", slots[1].StartTime)
	}
}

func TestExpandRule_InvalidRule(t *testing.T) {
	cases := []models.RecurringRule{
		{StartTime: "bad", EndTime: "10:00", Duration: 30},
		{StartTime: "10:00", EndTime: "09:00", Duration: 30},
		{StartTime: "09:00", EndTime: "10:00", Duration: 0},
	}
	for i, rule := range cases {
		if slots := ExpandRule(rule, "2026-09-07"); slots != nil {
			t.Errorf("case %d: expected no slots, got %+v", i, slots)
		}
	}
}

func TestDatesInRange_Inclusive(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 9, 3, 0, 0, 0, 0, time.Local)

	dates := DatesInRange(start, end)
	if len(dates) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(dates))
	}
	if !dates[0].Equal(start) || !dates[2].Equal(end) {
		t.Errorf("range endpoints wrong: %v", dates)
	}
}

func TestGenerateBookingReference(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := GenerateBookingReference()
		if len(ref) != 8 {
			t.Fatalf("reference %q has length %d, want 8", ref, len(ref))
		}
		for _, r := range ref {
			if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
				t.Fatalf("reference %q contains invalid character %q", ref, r)
			}
		}
		seen[ref] = true
	}
	if len(seen) < 99 {
		t.Errorf("references collide far too often: %d unique of 100", len(seen))
	}
}
