package payment

import (
	"time"

	"github.com/username/invoice-generator/internal/apperrors"
	"github.com/username/invoice-generator/internal/calendar"
	"github.com/username/invoice-generator/pkg/dateutil"
)

const (
	// MinLeadDays is the shortest payment term a buyer can be given
	MinLeadDays = 7
	// DefaultLeadDays is the payment term used on issued invoices
	DefaultLeadDays = 21
)

// ValidateLeadDays rejects payment terms shorter than MinLeadDays
func ValidateLeadDays(leadDays int) error {
	if leadDays < MinLeadDays {
		return apperrors.InvalidArgument(
			"payment lead time must be at least %d days, got %d", MinLeadDays, leadDays)
	}
	return nil
}

// Deadline returns anchor + leadDays calendar days. The deadline itself may
// land on a weekend or a holiday.
func Deadline(anchor time.Time, leadDays int) (time.Time, error) {
	if err := ValidateLeadDays(leadDays); err != nil {
		return time.Time{}, err
	}
	return dateutil.StartOfDay(anchor).AddDate(0, 0, leadDays), nil
}

// DeadlineFromMonthEnd anchors the deadline on the last working day of
// today's month
func DeadlineFromMonthEnd(today time.Time, leadDays int) (time.Time, error) {
	return Deadline(calendar.LastWorkingDayOfMonth(today), leadDays)
}
