package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/username/invoice-generator/internal/apperrors"
	"github.com/username/invoice-generator/internal/calendar"
	"github.com/username/invoice-generator/internal/payment"
	"github.com/username/invoice-generator/internal/salary"
)

// Environment variable names of the required settings
const (
	EnvAPIToken        = "API_TOKEN"
	EnvAPIURL          = "API_URL"
	EnvSellerName      = "SELLER_NAME"
	EnvSellerTaxNumber = "SELLER_TAX_NUMBER"
	EnvBuyerName       = "BUYER_NAME"
	EnvBuyerTaxNumber  = "BUYER_TAX_NUMBER"
	EnvProductName     = "PRODUCT_NAME"
)

const defaultTaxPercent = 23

// Config represents application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Seller  PartyConfig   `mapstructure:"seller"`
	Buyer   PartyConfig   `mapstructure:"buyer"`
	Product ProductConfig `mapstructure:"product"`
	Salary  SalaryConfig  `mapstructure:"salary"`
	Invoice InvoiceConfig `mapstructure:"invoice"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig represents the invoicing API credentials
type APIConfig struct {
	Token string `mapstructure:"token"`
	URL   string `mapstructure:"url"`
}

// PartyConfig represents one side of the invoice
type PartyConfig struct {
	Name      string `mapstructure:"name"`
	TaxNumber string `mapstructure:"tax_number"`
}

// ProductConfig represents the single invoiced line item
type ProductConfig struct {
	Name string `mapstructure:"name"`
}

// SalaryConfig represents salary proration settings
type SalaryConfig struct {
	Monthly       string `mapstructure:"monthly"`
	BaselineHours int    `mapstructure:"baseline_hours"`
	HoursPerDay   int    `mapstructure:"hours_per_day"`
}

// InvoiceConfig represents fixed invoice terms
type InvoiceConfig struct {
	TaxPercent      int `mapstructure:"tax_percent"`
	PaymentLeadDays int `mapstructure:"payment_lead_days"`
}

// HTTPConfig represents submission client settings
type HTTPConfig struct {
	Timeout string `mapstructure:"timeout"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

var envBindings = map[string]string{
	"api.token":                 EnvAPIToken,
	"api.url":                   EnvAPIURL,
	"seller.name":               EnvSellerName,
	"seller.tax_number":         EnvSellerTaxNumber,
	"buyer.name":                EnvBuyerName,
	"buyer.tax_number":          EnvBuyerTaxNumber,
	"product.name":              EnvProductName,
	"salary.monthly":            "MONTHLY_SALARY",
	"salary.baseline_hours":     "BASELINE_HOURS",
	"salary.hours_per_day":      "HOURS_PER_DAY",
	"invoice.tax_percent":       "TAX_PERCENT",
	"invoice.payment_lead_days": "PAYMENT_LEAD_DAYS",
	"http.timeout":              "HTTP_TIMEOUT",
	"log.file":                  "LOG_FILE",
	"log.level":                 "LOG_LEVEL",
}

// Load loads configuration from the environment, an optional .env file and
// an optional YAML file. An empty configPath searches the default locations
// and tolerates a missing file; an explicit path must exist.
func Load(configPath, envFile string) (*Config, error) {
	if envFile != "" {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.invoice-generator")
		v.AddConfigPath("/etc/invoice-generator")
	}

	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("salary.monthly", fmt.Sprint(salary.DefaultMonthlySalary))
	v.SetDefault("salary.baseline_hours", salary.DefaultBaselineHours)
	v.SetDefault("salary.hours_per_day", calendar.DefaultHoursPerDay)
	v.SetDefault("invoice.tax_percent", defaultTaxPercent)
	v.SetDefault("invoice.payment_lead_days", payment.DefaultLeadDays)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("log.level", "info")
}

// Validate checks the numeric settings. Required identity keys are checked
// separately so that commands which never build an invoice can run without
// them.
func (c *Config) Validate() error {
	if _, err := c.Salary.GetMonthly(); err != nil {
		return err
	}
	if c.Salary.BaselineHours <= 0 {
		return apperrors.InvalidArgument("salary.baseline_hours must be positive, got %d", c.Salary.BaselineHours)
	}
	if c.Salary.HoursPerDay <= 0 || c.Salary.HoursPerDay > 24 {
		return apperrors.InvalidArgument("salary.hours_per_day must be between 1 and 24, got %d", c.Salary.HoursPerDay)
	}
	if c.Invoice.TaxPercent < 0 || c.Invoice.TaxPercent > 100 {
		return apperrors.InvalidArgument("invoice.tax_percent must be between 0 and 100, got %d", c.Invoice.TaxPercent)
	}
	if err := payment.ValidateLeadDays(c.Invoice.PaymentLeadDays); err != nil {
		return fmt.Errorf("invoice.payment_lead_days: %w", err)
	}
	if _, err := time.ParseDuration(c.HTTP.Timeout); err != nil && c.HTTP.Timeout != "" {
		return apperrors.InvalidArgument("http.timeout %q is not a duration", c.HTTP.Timeout)
	}
	return nil
}

// RequireInvoice reports every missing key needed to build an invoice
func (c *Config) RequireInvoice() error {
	return requireKeys([]requiredKey{
		{EnvAPIToken, c.API.Token},
		{EnvSellerName, c.Seller.Name},
		{EnvSellerTaxNumber, c.Seller.TaxNumber},
		{EnvBuyerName, c.Buyer.Name},
		{EnvBuyerTaxNumber, c.Buyer.TaxNumber},
		{EnvProductName, c.Product.Name},
	})
}

// RequireSubmission reports every missing key needed to build and submit an
// invoice
func (c *Config) RequireSubmission() error {
	return requireKeys([]requiredKey{
		{EnvAPIToken, c.API.Token},
		{EnvAPIURL, c.API.URL},
		{EnvSellerName, c.Seller.Name},
		{EnvSellerTaxNumber, c.Seller.TaxNumber},
		{EnvBuyerName, c.Buyer.Name},
		{EnvBuyerTaxNumber, c.Buyer.TaxNumber},
		{EnvProductName, c.Product.Name},
	})
}

type requiredKey struct {
	name  string
	value string
}

func requireKeys(keys []requiredKey) error {
	var missing []string
	for _, k := range keys {
		if k.value == "" {
			missing = append(missing, k.name)
		}
	}
	if len(missing) > 0 {
		return &apperrors.MissingConfigError{Keys: missing}
	}
	return nil
}

// GetMonthly returns the monthly salary as a decimal
func (c *SalaryConfig) GetMonthly() (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(c.Monthly)
	if err != nil {
		return decimal.Zero, apperrors.InvalidArgument("salary.monthly %q is not a number", c.Monthly)
	}
	if amount.IsNegative() {
		return decimal.Zero, apperrors.InvalidArgument("salary.monthly must not be negative, got %s", amount)
	}
	return amount, nil
}

// GetTimeout returns the HTTP client timeout
func (c *HTTPConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}
