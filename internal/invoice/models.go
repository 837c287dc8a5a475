package invoice

import (
	"github.com/shopspring/decimal"
)

// KindVAT marks a regular VAT invoice
const KindVAT = "vat"

// Payload is the request body accepted by the invoice creation endpoint
type Payload struct {
	APIToken string  `json:"api_token"`
	Invoice  Invoice `json:"invoice"`
}

// Invoice represents the invoice being issued. Number is always null so the
// server assigns the next number in its series.
type Invoice struct {
	Kind        string     `json:"kind"`
	Number      *string    `json:"number"`
	SellDate    string     `json:"sell_date"`
	IssueDate   string     `json:"issue_date"`
	PaymentTo   string     `json:"payment_to"`
	SellerName  string     `json:"seller_name"`
	SellerTaxNo string     `json:"seller_tax_no"`
	BuyerName   string     `json:"buyer_name"`
	BuyerTaxNo  string     `json:"buyer_tax_no"`
	Positions   []Position `json:"positions"`
}

// Position represents a single invoice line
type Position struct {
	Name            string `json:"name"`
	Tax             int    `json:"tax"`
	TotalPriceGross Amount `json:"total_price_gross"`
	Quantity        int    `json:"quantity"`
}

// Amount is a decimal that encodes as a bare JSON number
type Amount struct {
	decimal.Decimal
}

// MarshalJSON implements json.Marshaler for Amount
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts both quoted and bare numbers
func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.Decimal.UnmarshalJSON(b)
}

// Redacted returns a copy of the payload safe to print
func (p Payload) Redacted() Payload {
	if p.APIToken != "" {
		p.APIToken = "***"
	}
	return p
}
