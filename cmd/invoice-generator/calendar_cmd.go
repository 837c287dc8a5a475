package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/username/invoice-generator/internal/calendar"
	"github.com/username/invoice-generator/internal/payment"
	"github.com/username/invoice-generator/pkg/dateutil"
	"go.uber.org/zap"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show workdays, holidays and invoice dates for the month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := referenceDate()
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			monthInfo := calendar.GetMonthInfo(today, cfg.Salary.HoursPerDay)
			issueDate := calendar.LastWorkingDayOfMonth(today)
			paymentTo, err := payment.Deadline(issueDate, cfg.Invoice.PaymentLeadDays)
			if err != nil {
				return err
			}

			logger.Info("Month calendar computed",
				zap.Int("year", monthInfo.Year),
				zap.Int("month", int(monthInfo.Month)),
				zap.Int("workdays", monthInfo.WorkDays),
				zap.Int("working_hours", monthInfo.WorkingHours))

			printMonth(cmd.OutOrStdout(), monthInfo)
			fmt.Fprintf(cmd.OutOrStdout(), "\n  Issue date:     %s\n", dateutil.FormatDate(issueDate))
			fmt.Fprintf(cmd.OutOrStdout(), "  Payment to:     %s (%d days)\n",
				dateutil.FormatDate(paymentTo), cfg.Invoice.PaymentLeadDays)
			return nil
		},
	}

	return cmd
}

func printMonth(w io.Writer, monthInfo *calendar.MonthInfo) {
	fmt.Fprintf(w, "📅 %s %d\n", monthInfo.Month, monthInfo.Year)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  Date             | Type     | Hours | Note")
	fmt.Fprintln(w, "-------------------+----------+-------+----------------")
	for _, day := range monthInfo.Days {
		fmt.Fprintf(w, "  %s | %-8s | %5d | %s\n",
			day.Date.Format("2006-01-02 Mon"),
			day.Type,
			day.WorkingHours,
			day.Note)
	}
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  Working days:   %d\n", monthInfo.WorkDays)
	fmt.Fprintf(w, "  Weekend days:   %d\n", monthInfo.Weekends)
	fmt.Fprintf(w, "  Holidays:       %d\n", monthInfo.Holidays)
	fmt.Fprintf(w, "  Working hours:  %d\n", monthInfo.WorkingHours)
}
