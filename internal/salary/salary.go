package salary

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	DefaultMonthlySalary = 15000
	DefaultBaselineHours = 168
)

// Calculator prorates a fixed monthly salary by hours worked
type Calculator struct {
	monthlySalary decimal.Decimal
	baselineHours int
}

// NewCalculator creates a calculator paying monthlySalary for baselineHours
func NewCalculator(monthlySalary decimal.Decimal, baselineHours int) (*Calculator, error) {
	if baselineHours <= 0 {
		return nil, fmt.Errorf("baseline hours must be positive, got %d", baselineHours)
	}
	if monthlySalary.IsNegative() {
		return nil, fmt.Errorf("monthly salary must not be negative, got %s", monthlySalary)
	}

	return &Calculator{
		monthlySalary: monthlySalary,
		baselineHours: baselineHours,
	}, nil
}

// NewDefaultCalculator pays 15000 for a 168 hour month
func NewDefaultCalculator() *Calculator {
	return &Calculator{
		monthlySalary: decimal.NewFromInt(DefaultMonthlySalary),
		baselineHours: DefaultBaselineHours,
	}
}

// MonthlySalary returns the salary paid for the baseline hours
func (c *Calculator) MonthlySalary() decimal.Decimal {
	return c.monthlySalary
}

// BaselineHours returns the hour count that earns exactly MonthlySalary
func (c *Calculator) BaselineHours() int {
	return c.baselineHours
}

// ForHours returns the salary for hours, rounded to whole units with ties
// away from zero. Exactly the baseline returns MonthlySalary untouched.
// Hours are not validated here.
func (c *Calculator) ForHours(hours int) decimal.Decimal {
	if hours == c.baselineHours {
		return c.monthlySalary
	}

	// multiply before dividing so exact fractions such as 84/168 stay exact
	amount := c.monthlySalary.
		Mul(decimal.NewFromInt(int64(hours))).
		Div(decimal.NewFromInt(int64(c.baselineHours)))

	return amount.Round(0)
}
