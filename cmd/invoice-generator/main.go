package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/invoice-generator/internal/apperrors"
	"github.com/username/invoice-generator/internal/config"
	"github.com/username/invoice-generator/internal/fakturownia"
	"github.com/username/invoice-generator/internal/generator"
	"github.com/username/invoice-generator/internal/hours"
	"github.com/username/invoice-generator/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const longHelp = `LOCAL INVOICE GENERATOR

Computes this month's salary from worked hours and creates a VAT invoice
dated on the last working day of the month, payable 21 days later.

Configuration is read from the environment (API_TOKEN, API_URL, SELLER_NAME,
SELLER_TAX_NUMBER, BUYER_NAME, BUYER_TAX_NUMBER, PRODUCT_NAME), a .env file
and an optional config.yaml.`

const examples = `  invoice-generator 168      # Create an invoice with 168 hours worked this month
  invoice-generator --auto   # Create an invoice with automatically calculated hours for this month (all workdays)
  invoice-generator --auto --dry-run --date 2023-01-15`

var (
	configPath string
	envFile    string
	dateStr    string
	logger     *zap.Logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var auto bool
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:           "invoice-generator [WORKED_HOURS | --auto]",
		Short:         "Local invoice generator",
		Long:          longHelp,
		Example:       examples,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return apperrors.InvalidArgument("expected at most one argument, got %d\n\n%s", len(args), hours.UsageMessage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			argument, ok, err := hoursArgument(args, auto)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}

			today, err := referenceDate()
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if dryRun {
				err = cfg.RequireInvoice()
			} else {
				err = cfg.RequireSubmission()
			}
			if err != nil {
				return err
			}

			client := fakturownia.NewClient(cfg.API.URL, cfg.HTTP.GetTimeout(), logger)
			gen, err := generator.NewFromConfig(cfg, client, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := gen.Run(ctx, argument, today, dryRun)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), result, dryRun)
		},
	}

	rootCmd.Flags().BoolVar(&auto, "auto", false, "Compute hours from this month's workdays")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the invoice payload without submitting it")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search for config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file to load (empty to disable)")
	rootCmd.PersistentFlags().StringVar(&dateStr, "date", "", "Reference date YYYY-MM-DD (default: today)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.InvalidArgument("%v\n\n%s", err, hours.UsageMessage)
	})

	rootCmd.AddCommand(calendarCmd())

	return rootCmd
}

// hoursArgument maps the command line onto the resolver's argument. ok is
// false when nothing was given and help should be shown instead.
func hoursArgument(args []string, auto bool) (argument string, ok bool, err error) {
	switch {
	case auto && len(args) > 0:
		return "", false, apperrors.InvalidArgument(
			"use either WORKED_HOURS or --auto, not both\n\n%s", hours.UsageMessage)
	case auto:
		return hours.AutoFlag, true, nil
	case len(args) == 1:
		if err := hours.ValidateArgument(args[0]); err != nil {
			return "", false, err
		}
		return args[0], true, nil
	default:
		return "", false, nil
	}
}

// referenceDate is evaluated once per run
func referenceDate() (time.Time, error) {
	if dateStr == "" {
		return dateutil.Today(), nil
	}
	date, err := dateutil.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, apperrors.InvalidArgument("--date: %v", err)
	}
	return date, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Log.File != "" {
		logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			initLogger(cfg.Log.Level) // Fallback to console
		}
	} else {
		initLogger(cfg.Log.Level)
	}

	return cfg, nil
}

func printResult(w io.Writer, result *generator.Result, dryRun bool) error {
	if dryRun {
		data, err := json.MarshalIndent(result.Payload.Redacted(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		fmt.Fprintf(w, "[DRY RUN] %d hours, amount %s. Invoice not submitted:\n%s\n",
			result.Hours, result.Amount, data)
		return nil
	}

	data, err := json.MarshalIndent(result.Response, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Fprintf(w, "✅ Invoice created: %d hours, amount %s\n%s\n", result.Hours, result.Amount, data)
	return nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err == nil {
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	if logFile == "" {
		return nil, errors.New("log file path is empty")
	}

	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     90, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
