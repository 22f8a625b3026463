package services

import (
	"fmt"
	"time"
)

// ParseDate parses a date string in typical formats (YYYY-MM-DD)
// It enforces strict checks but centralizes the logic for future format additions
func ParseDate(dateStr string) (time.Time, error) {
	// Primary format: ISO 8601 (standard for HTML5 date inputs)
	layout := "2006-01-02"

	parsedTime, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}

	return parsedTime, nil
}

// ParseClock parses a 24h "HH:MM" string into hour and minute components.
// "24:00" is accepted as the exclusive end of day.
func ParseClock(clock string) (hour, minute int, err error) {
	if clock == "24:00" {
		return 24, 0, nil
	}
	if _, err := time.Parse("15:04", clock); err != nil {
		return 0, 0, fmt.Errorf("invalid time format: expected HH:MM")
	}
	fmt.Sscanf(clock, "%d:%d", &hour, &minute)
	return hour, minute, nil
}

// ClockMinutes converts a "HH:MM" string to minutes since midnight.
func ClockMinutes(clock string) (int, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

// DayStart returns midnight of the given date, preserving its location.
func DayStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DayEnd returns 23:59 of the given date, preserving its location.
func DayEnd(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 0, 0, date.Location())
}

// MinutesSinceDayStart returns full minutes elapsed between midnight and t.
func MinutesSinceDayStart(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MinutesBetween returns the whole minutes from start to end.
func MinutesBetween(start, end time.Time) int {
	return int(end.Sub(start).Minutes())
}
