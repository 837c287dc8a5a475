package calendar

import (
	"time"

	"github.com/username/invoice-generator/pkg/dateutil"
)

// DefaultHoursPerDay is the standard length of a workday
const DefaultHoursPerDay = 8

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         time.Time
	Type         DayType
	WorkingHours int
	IsWorkday    bool
	Note         string
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year         int
	Month        time.Month
	WorkingHours int // Total working hours in the month
	WorkDays     int
	Weekends     int
	Holidays     int
	Days         []DayInfo
}

// IsWorkday reports whether date is a weekday that is not a holiday
func IsWorkday(date time.Time) bool {
	return dateutil.IsWeekday(date) && !IsHoliday(date)
}

// LastWorkingDayOfMonth walks back from the month's last day to the nearest
// weekday. Holidays are not skipped, so the result may be a holiday.
func LastWorkingDayOfMonth(reference time.Time) time.Time {
	day := dateutil.EndOfMonth(reference)
	for !dateutil.IsWeekday(day) {
		day = dateutil.PreviousDay(day)
	}
	return day
}

// CountWorkdaysInMonth counts the days of the reference month that are
// weekdays and not holidays
func CountWorkdaysInMonth(reference time.Time) int {
	workdays := 0
	for day := dateutil.StartOfMonth(reference); day.Month() == reference.Month(); day = dateutil.NextDay(day) {
		if IsWorkday(day) {
			workdays++
		}
	}
	return workdays
}

// GetMonthInfo classifies every day of the reference month. Each workday is
// credited with hoursPerDay working hours.
func GetMonthInfo(reference time.Time, hoursPerDay int) *MonthInfo {
	monthInfo := &MonthInfo{
		Year:  reference.Year(),
		Month: reference.Month(),
		Days:  make([]DayInfo, 0, dateutil.DaysInMonth(reference)),
	}

	for day := dateutil.StartOfMonth(reference); day.Month() == reference.Month(); day = dateutil.NextDay(day) {
		info := DayInfo{Date: day}

		switch {
		case !dateutil.IsWeekday(day):
			info.Type = DayTypeWeekend
			info.Note = HolidayName(day)
			monthInfo.Weekends++
		case IsHoliday(day):
			info.Type = DayTypeHoliday
			info.Note = HolidayName(day)
			monthInfo.Holidays++
		default:
			info.Type = DayTypeWorkday
			info.IsWorkday = true
			info.WorkingHours = hoursPerDay
			monthInfo.WorkDays++
		}

		monthInfo.WorkingHours += info.WorkingHours
		monthInfo.Days = append(monthInfo.Days, info)
	}

	return monthInfo
}
