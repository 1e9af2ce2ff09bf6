package utils

import (
	"fmt"
	"time"

	"github.com/glowbook/glowbook/models"
)

// minuteOfDay converts "HH:MM" into minutes since midnight.
func minuteOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SlotWithinWorkingHours checks whether a booking's day and start slot fall
// inside the provider's configured hours. A weekday with no row, or a row
// marked as a closed day, is outside working hours.
func SlotWithinWorkingHours(hours []models.WorkingHours, date time.Time, slot string) (bool, error) {
	day := models.DayOfWeek(date.Weekday())

	var forDay *models.WorkingHours
	for i := range hours {
		if hours[i].DayOfWeek == day {
			forDay = &hours[i]
			break
		}
	}
	if forDay == nil || !forDay.IsWorkDay {
		return false, nil
	}

	start, err := minuteOfDay(forDay.StartTime)
	if err != nil {
		return false, err
	}
	end, err := minuteOfDay(forDay.EndTime)
	if err != nil {
		return false, err
	}
	at, err := minuteOfDay(slot)
	if err != nil {
		return false, err
	}

	return at >= start && at < end, nil
}
