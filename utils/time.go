package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Now is the time source for all date arithmetic. Swappable in tests.
var Now = time.Now

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseClock validates an "HH:MM" 24-hour time of day and returns it as
// minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Today returns the current calendar date as "YYYY-MM-DD".
func Today() string {
	return Now().Format(DateLayout)
}

// DaysUntil returns the whole-day difference between today and the given
// date. Negative for past dates. Both dates are normalized to UTC midnights
// so a DST transition inside the range cannot shift the count.
func DaysUntil(date string) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	now := Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24), nil
}

// HoursUntil returns the number of hours from now until the given date and
// clock time.
func HoursUntil(date, clock string) (float64, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	minutes, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	at := d.Add(time.Duration(minutes) * time.Minute)
	return at.Sub(Now()).Hours(), nil
}

// StartOfWeek returns the Sunday of the week containing t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(t.Weekday()))
}

// StartOfMonth returns the first day of the month containing t, at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
