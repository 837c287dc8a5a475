package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/invoice-generator/internal/config"
	"github.com/username/invoice-generator/internal/fakturownia"
	"github.com/username/invoice-generator/internal/hours"
	"github.com/username/invoice-generator/internal/invoice"
	"github.com/username/invoice-generator/internal/salary"
	"github.com/username/invoice-generator/pkg/dateutil"
	"go.uber.org/zap"
)

// Submitter sends a built invoice to the invoicing API
type Submitter interface {
	CreateInvoice(ctx context.Context, payload *invoice.Payload) (fakturownia.Response, error)
}

// Result describes one invoice run
type Result struct {
	Hours    int
	Amount   decimal.Decimal
	Payload  *invoice.Payload
	Response fakturownia.Response // nil on dry run
}

// Generator runs hours resolution, salary proration, payload building and
// submission for a single invoice
type Generator struct {
	resolver   *hours.Resolver
	calculator *salary.Calculator
	builder    *invoice.Builder
	submitter  Submitter
	logger     *zap.Logger
}

// NewGenerator creates a new invoice generator
func NewGenerator(
	resolver *hours.Resolver,
	calculator *salary.Calculator,
	builder *invoice.Builder,
	submitter Submitter,
	logger *zap.Logger,
) *Generator {
	return &Generator{
		resolver:   resolver,
		calculator: calculator,
		builder:    builder,
		submitter:  submitter,
		logger:     logger,
	}
}

// NewFromConfig wires a generator from a loaded config snapshot
func NewFromConfig(cfg *config.Config, submitter Submitter, logger *zap.Logger) (*Generator, error) {
	monthly, err := cfg.Salary.GetMonthly()
	if err != nil {
		return nil, err
	}

	calculator, err := salary.NewCalculator(monthly, cfg.Salary.BaselineHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create salary calculator: %w", err)
	}

	builder := invoice.NewBuilder(
		invoice.IdentityFromConfig(cfg),
		cfg.Invoice.TaxPercent,
		cfg.Invoice.PaymentLeadDays,
	)

	return NewGenerator(hours.NewResolver(cfg.Salary.HoursPerDay), calculator, builder, submitter, logger), nil
}

// Prepare resolves hours, computes the amount and builds the payload
// without contacting the API
func (g *Generator) Prepare(argument string, today time.Time) (*Result, error) {
	workedHours, err := g.resolver.Resolve(argument, today)
	if err != nil {
		return nil, err
	}

	amount := g.calculator.ForHours(workedHours)

	g.logger.Info("Salary calculated",
		zap.String("today", dateutil.FormatDate(today)),
		zap.Int("hours", workedHours),
		zap.Int("baseline_hours", g.calculator.BaselineHours()),
		zap.String("amount", amount.String()))

	payload, err := g.builder.Build(amount, today)
	if err != nil {
		return nil, fmt.Errorf("failed to build invoice: %w", err)
	}

	return &Result{
		Hours:   workedHours,
		Amount:  amount,
		Payload: payload,
	}, nil
}

// Run prepares the invoice and, unless dryRun is set, submits it
func (g *Generator) Run(ctx context.Context, argument string, today time.Time, dryRun bool) (*Result, error) {
	g.logger.Info("Starting invoice run",
		zap.String("argument", argument),
		zap.String("today", dateutil.FormatDate(today)),
		zap.Bool("dry_run", dryRun))

	result, err := g.Prepare(argument, today)
	if err != nil {
		return nil, err
	}

	if dryRun {
		g.logger.Info("Dry run, invoice not submitted")
		return result, nil
	}

	response, err := g.submitter.CreateInvoice(ctx, result.Payload)
	if err != nil {
		return nil, err
	}
	result.Response = response

	return result, nil
}
