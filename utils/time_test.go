package utils

import (
	"testing"
	"time"
)

func withFrozenNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := Now
	Now = func() time.Time { return at }
	t.Cleanup(func() { Now = prev })
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 9*60+30 {
		t.Errorf("got %d minutes, want 570", minutes)
	}

	if _, err := ParseClock("25:00"); err == nil {
		t.Error("expected error for 25:00")
	}
	if _, err := ParseClock("9am"); err == nil {
		t.Error("expected error for 9am")
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(570); got != "09:30" {
		t.Errorf("got %q, want 09:30", got)
	}
	if got := FormatClock(0); got != "00:00" {
		t.Errorf("got %q, want 00:00", got)
	}
}

func TestDaysUntil(t *testing.T) {
	withFrozenNow(t, time.Date(2026, 9, 1, 15, 30, 0, 0, time.Local))

	cases := []struct {
		date string
		want int
	}{
		{"2026-09-01", 0},
		{"2026-09-02", 1},
		{"2026-10-01", 30},
		{"2026-08-31", -1},
	}
	for _, tc := range cases {
		got, err := DaysUntil(tc.date)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.date, err)
		}
		if got != tc.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestDaysUntilAcrossDSTTransition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// US clocks spring forward on 2026-03-08, so the wall-clock span from
	// 2026-03-07 to 2026-04-07 is an hour short of 31 full days. The count
	// must still be 31.
	withFrozenNow(t, time.Date(2026, 3, 7, 15, 0, 0, 0, ny))

	got, err := DaysUntil("2026-04-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 31 {
		t.Errorf("DaysUntil(2026-04-07) = %d, want 31", got)
	}

	got, _ = DaysUntil("2026-03-08")
	if got != 1 {
		t.Errorf("DaysUntil(2026-03-08) = %d, want 1", got)
	}
}

func TestHoursUntil(t *testing.T) {
	withFrozenNow(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local))

	got, err := HoursUntil("2026-09-02", "12:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 24 {
		t.Errorf("got %v hours, want 24", got)
	}

	got, _ = HoursUntil("2026-09-01", "18:00")
	if got != 6 {
		t.Errorf("got %v hours, want 6", got)
	}

	got, _ = HoursUntil("2026-08-31", "12:00")
	if got != -24 {
		t.Errorf("got %v hours, want -24", got)
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2026-09-03 is a Thursday; its week starts Sunday 2026-08-30.
	thursday := time.Date(2026, 9, 3, 16, 45, 0, 0, time.Local)
	got := StartOfWeek(thursday)
	want := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// A Sunday is its own week start.
	sunday := time.Date(2026, 8, 30, 8, 0, 0, 0, time.Local)
	if got := StartOfWeek(sunday); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
