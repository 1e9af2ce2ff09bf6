package utils

import (
	"testing"
	"time"

	"github.com/glowbook/glowbook/models"
)

func TestSlotWithinWorkingHours(t *testing.T) {
	hours := []models.WorkingHours{
		{DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "18:00", IsWorkDay: true},
		{DayOfWeek: models.Sunday, StartTime: "09:00", EndTime: "18:00", IsWorkDay: false},
	}

	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)  // a Monday
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)  // a Sunday
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		date time.Time
		slot string
		want bool
	}{
		{"inside hours", monday, "10:30", true},
		{"at opening", monday, "09:00", true},
		{"at closing", monday, "18:00", false},
		{"before opening", monday, "08:59", false},
		{"closed day", sunday, "10:30", false},
		{"no row for weekday", tuesday, "10:30", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SlotWithinWorkingHours(hours, tc.date, tc.slot)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSlotWithinWorkingHoursBadFormat(t *testing.T) {
	hours := []models.WorkingHours{
		{DayOfWeek: models.Monday, StartTime: "nine", EndTime: "18:00", IsWorkDay: true},
	}
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if _, err := SlotWithinWorkingHours(hours, monday, "10:00"); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}
