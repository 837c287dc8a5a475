package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used for invoice dates
const DateLayout = "2006-01-02"

// Date returns the given calendar date at midnight UTC
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay drops the clock part and the location, keeping the calendar date
func StartOfDay(date time.Time) time.Time {
	return Date(date.Year(), date.Month(), date.Day())
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// WeekdayIndex returns the weekday counting Monday as 0 and Sunday as 6
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// PreviousDay returns the calendar date immediately before date
func PreviousDay(date time.Time) time.Time {
	return StartOfDay(date).AddDate(0, 0, -1)
}

// NextDay returns the calendar date immediately after date
func NextDay(date time.Time) time.Time {
	return StartOfDay(date).AddDate(0, 0, 1)
}

// StartOfMonth returns the first day of the date's month
func StartOfMonth(date time.Time) time.Time {
	return Date(date.Year(), date.Month(), 1)
}

// EndOfMonth returns the last calendar day of the date's month
func EndOfMonth(date time.Time) time.Time {
	// Day 0 of the next month normalizes to the last day of this one
	return Date(date.Year(), date.Month()+1, 0)
}

// DaysInMonth returns the number of days in the date's month
func DaysInMonth(date time.Time) int {
	return EndOfMonth(date).Day()
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// FormatDate formats date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DateLayout,
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return StartOfDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// Today returns today's date in the local timezone, as a UTC calendar date
func Today() time.Time {
	return StartOfDay(time.Now())
}
