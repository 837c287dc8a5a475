package calendar

import (
	"time"

	cal "github.com/rickar/cal/v2"
)

// Holiday is a public holiday observed on the same month and day every year
type Holiday struct {
	Month time.Month
	Day   int
	Name  string
}

// Holidays is the fixed list of public holidays excluded from workday counts.
// There is no observed-date shifting: a holiday on a weekend is simply lost.
var Holidays = []Holiday{
	{Month: time.January, Day: 1, Name: "New Year's Day"},
	{Month: time.January, Day: 6, Name: "Epiphany"},
	{Month: time.May, Day: 1, Name: "Labour Day"},
	{Month: time.May, Day: 3, Name: "Constitution Day"},
	{Month: time.May, Day: 28, Name: "Pentecost"},
	{Month: time.June, Day: 8, Name: "Corpus Christi"},
	{Month: time.August, Day: 15, Name: "Assumption Day"},
	{Month: time.November, Day: 1, Name: "All Saints' Day"},
	{Month: time.November, Day: 11, Name: "Independence Day"},
	{Month: time.December, Day: 25, Name: "Christmas Day"},
	{Month: time.December, Day: 26, Name: "Second Day of Christmas"},
}

// Matches reports whether date falls on this holiday in any year
func (h Holiday) Matches(date time.Time) bool {
	return h.Month == date.Month() && h.Day == date.Day()
}

func (h Holiday) calHoliday() *cal.Holiday {
	return &cal.Holiday{
		Name:  h.Name,
		Type:  cal.ObservancePublic,
		Month: h.Month,
		Day:   h.Day,
		Func:  cal.CalcDayOfMonth,
	}
}

// create once at init
var business = newBusinessCalendar(Holidays)

func newBusinessCalendar(holidays []Holiday) *cal.BusinessCalendar {
	bc := cal.NewBusinessCalendar()
	for _, h := range holidays {
		bc.AddHoliday(h.calHoliday())
	}
	return bc
}

// IsHoliday reports whether the date's month and day match a fixed holiday
func IsHoliday(date time.Time) bool {
	actual, _, _ := business.IsHoliday(date)
	return actual
}

// HolidayName returns the name of the holiday on date, or "" if there is none
func HolidayName(date time.Time) string {
	for _, h := range Holidays {
		if h.Matches(date) {
			return h.Name
		}
	}
	return ""
}
