package hours

import (
	"strconv"
	"time"

	"github.com/username/invoice-generator/internal/apperrors"
	"github.com/username/invoice-generator/internal/calendar"
)

// AutoFlag requests hours computed from the month's workdays
const AutoFlag = "--auto"

// UsageMessage is attached to every rejected hours argument
const UsageMessage = "Script argument can be either a positive number or '--auto' flag!\n\nExample: invoice-generator 100"

// Resolver turns the command-line hours argument into worked hours
type Resolver struct {
	hoursPerDay int
}

// NewResolver creates a resolver crediting hoursPerDay for each workday
func NewResolver(hoursPerDay int) *Resolver {
	if hoursPerDay <= 0 {
		hoursPerDay = calendar.DefaultHoursPerDay
	}
	return &Resolver{hoursPerDay: hoursPerDay}
}

// ValidateArgument checks the argument's form without resolving it
func ValidateArgument(argument string) error {
	if argument == AutoFlag {
		return nil
	}
	if !isDigits(argument) {
		return apperrors.InvalidArgument("%q\n\n%s", argument, UsageMessage)
	}
	if _, err := strconv.Atoi(argument); err != nil {
		return apperrors.InvalidArgument("%q is out of range\n\n%s", argument, UsageMessage)
	}
	return nil
}

// Resolve accepts a string of decimal digits or AutoFlag. Anything else is
// an invalid argument carrying UsageMessage.
func (r *Resolver) Resolve(argument string, today time.Time) (int, error) {
	if argument == AutoFlag {
		return r.hoursPerDay * calendar.CountWorkdaysInMonth(today), nil
	}

	if err := ValidateArgument(argument); err != nil {
		return 0, err
	}

	// digits only and in range, checked above
	hours, _ := strconv.Atoi(argument)
	return hours, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
