package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/invoice-generator/internal/apperrors"
	"github.com/username/invoice-generator/internal/calendar"
	"github.com/username/invoice-generator/internal/config"
	"github.com/username/invoice-generator/internal/payment"
	"github.com/username/invoice-generator/pkg/dateutil"
)

const defaultQuantity = 1

// Identity holds the configured fields copied verbatim onto every invoice
type Identity struct {
	APIToken        string
	SellerName      string
	SellerTaxNumber string
	BuyerName       string
	BuyerTaxNumber  string
	ProductName     string
}

// IdentityFromConfig extracts the invoice identity from a loaded config
func IdentityFromConfig(cfg *config.Config) Identity {
	return Identity{
		APIToken:        cfg.API.Token,
		SellerName:      cfg.Seller.Name,
		SellerTaxNumber: cfg.Seller.TaxNumber,
		BuyerName:       cfg.Buyer.Name,
		BuyerTaxNumber:  cfg.Buyer.TaxNumber,
		ProductName:     cfg.Product.Name,
	}
}

// Builder assembles invoice payloads
type Builder struct {
	identity   Identity
	taxPercent int
	leadDays   int
}

// NewBuilder creates a payload builder
func NewBuilder(identity Identity, taxPercent, leadDays int) *Builder {
	return &Builder{
		identity:   identity,
		taxPercent: taxPercent,
		leadDays:   leadDays,
	}
}

// Build dates the invoice on the last working day of today's month and sets
// the payment deadline leadDays after it
func (b *Builder) Build(amount decimal.Decimal, today time.Time) (*Payload, error) {
	if err := b.identity.validate(); err != nil {
		return nil, err
	}

	issueDate := calendar.LastWorkingDayOfMonth(today)

	paymentTo, err := payment.Deadline(issueDate, b.leadDays)
	if err != nil {
		return nil, fmt.Errorf("failed to compute payment deadline: %w", err)
	}

	return &Payload{
		APIToken: b.identity.APIToken,
		Invoice: Invoice{
			Kind:        KindVAT,
			SellDate:    dateutil.FormatDate(issueDate),
			IssueDate:   dateutil.FormatDate(issueDate),
			PaymentTo:   dateutil.FormatDate(paymentTo),
			SellerName:  b.identity.SellerName,
			SellerTaxNo: b.identity.SellerTaxNumber,
			BuyerName:   b.identity.BuyerName,
			BuyerTaxNo:  b.identity.BuyerTaxNumber,
			Positions: []Position{
				{
					Name:            b.identity.ProductName,
					Tax:             b.taxPercent,
					TotalPriceGross: Amount{amount},
					Quantity:        defaultQuantity,
				},
			},
		},
	}, nil
}

func (id Identity) validate() error {
	fields := []struct {
		key   string
		value string
	}{
		{config.EnvAPIToken, id.APIToken},
		{config.EnvSellerName, id.SellerName},
		{config.EnvSellerTaxNumber, id.SellerTaxNumber},
		{config.EnvBuyerName, id.BuyerName},
		{config.EnvBuyerTaxNumber, id.BuyerTaxNumber},
		{config.EnvProductName, id.ProductName},
	}

	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return &apperrors.MissingConfigError{Keys: missing}
	}
	return nil
}
