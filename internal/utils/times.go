package utils

import (
	"fmt"
	"time"
)

const (
	// DayFormat is the wire format for calendar days. No timezone: all
	// values are local wall-clock.
	DayFormat = "2006-01-02"
	// ClockFormat is the wire format for times of day, 24h.
	ClockFormat = "15:04"
)

// ParseDay parses a YYYY-MM-DD day string in the local timezone.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", day, err)
	}
	return t, nil
}

// ClockMinutes parses an HH:MM string into minutes from midnight.
func ClockMinutes(clock string) (int, error) {
	t, err := time.Parse(ClockFormat, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CombineDayTime combines a YYYY-MM-DD day and an HH:MM time of day into a
// local instant.
func CombineDayTime(day, clock string) (time.Time, error) {
	d, err := ParseDay(day)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ClockMinutes(clock)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(minutes) * time.Minute), nil
}

// EffectiveEndMinutes applies the end-after-start correction rule shared by
// the grid layout and ICS export: a missing or inverted end time becomes
// start plus one hour.
func EffectiveEndMinutes(startMinutes, endMinutes int, endPresent bool) int {
	if !endPresent || endMinutes <= startMinutes {
		return startMinutes + 60
	}
	return endMinutes
}
