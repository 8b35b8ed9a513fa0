package utils

import (
	"time"

	"github.com/slotline/booking-app/models"
)

// GeneratedSlot is one concrete interval produced by expanding a recurring
// rule over a calendar day.
type GeneratedSlot struct {
	Date      string
	StartTime string
	EndTime   string
}

// ExpandRule walks a rule's [start, end) window for one date in steps of
// duration+buffer minutes, emitting a slot of the rule's duration per step.
// A slot is only emitted while its end does not pass the rule's end time.
func ExpandRule(rule models.RecurringRule, date string) []GeneratedSlot {
	start, err := ParseClock(rule.StartTime)
	if err != nil {
		return nil
	}
	end, err := ParseClock(rule.EndTime)
	if err != nil || rule.Duration <= 0 || start >= end {
		return nil
	}

	step := rule.Duration + rule.BufferTime
	var slots []GeneratedSlot
	for cursor := start; cursor+rule.Duration <= end; cursor += step {
		slots = append(slots, GeneratedSlot{
			Date:      date,
			StartTime: FormatClock(cursor),
			EndTime:   FormatClock(cursor + rule.Duration),
		})
	}
	return slots
}

// DatesInRange lists every calendar date in [start, end] inclusive.
func DatesInRange(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
