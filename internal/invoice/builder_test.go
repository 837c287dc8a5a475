package invoice

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/invoice-generator/internal/apperrors"
	"github.com/username/invoice-generator/internal/config"
	"github.com/username/invoice-generator/pkg/dateutil"
)

func testIdentity() Identity {
	return Identity{
		APIToken:        "secret-token",
		SellerName:      "Jan Kowalski Software",
		SellerTaxNumber: "1234567890",
		BuyerName:       "ACME Sp. z o.o.",
		BuyerTaxNumber:  "0987654321",
		ProductName:     "Software development services",
	}
}

func TestBuild(t *testing.T) {
	builder := NewBuilder(testIdentity(), 23, 21)

	payload, err := builder.Build(decimal.NewFromInt(15000), dateutil.Date(2022, 12, 1))
	require.NoError(t, err)

	assert.Equal(t, "secret-token", payload.APIToken)

	inv := payload.Invoice
	assert.Equal(t, KindVAT, inv.Kind)
	assert.Nil(t, inv.Number)
	assert.Equal(t, "2022-12-30", inv.SellDate)
	assert.Equal(t, "2022-12-30", inv.IssueDate)
	assert.Equal(t, "2023-01-20", inv.PaymentTo)
	assert.Equal(t, "Jan Kowalski Software", inv.SellerName)
	assert.Equal(t, "1234567890", inv.SellerTaxNo)
	assert.Equal(t, "ACME Sp. z o.o.", inv.BuyerName)
	assert.Equal(t, "0987654321", inv.BuyerTaxNo)

	require.Len(t, inv.Positions, 1)
	position := inv.Positions[0]
	assert.Equal(t, "Software development services", position.Name)
	assert.Equal(t, 23, position.Tax)
	assert.Equal(t, 1, position.Quantity)
	assert.True(t, position.TotalPriceGross.Equal(decimal.NewFromInt(15000)))
}

func TestBuildJSON(t *testing.T) {
	builder := NewBuilder(testIdentity(), 23, 21)

	payload, err := builder.Build(decimal.NewFromInt(7500), dateutil.Date(2022, 11, 10))
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"api_token": "secret-token",
		"invoice": {
			"kind": "vat",
			"number": null,
			"sell_date": "2022-11-30",
			"issue_date": "2022-11-30",
			"payment_to": "2022-12-21",
			"seller_name": "Jan Kowalski Software",
			"seller_tax_no": "1234567890",
			"buyer_name": "ACME Sp. z o.o.",
			"buyer_tax_no": "0987654321",
			"positions": [
				{
					"name": "Software development services",
					"tax": 23,
					"total_price_gross": 7500,
					"quantity": 1
				}
			]
		}
	}`, string(data))
}

func TestBuildMissingIdentity(t *testing.T) {
	identity := testIdentity()
	identity.BuyerTaxNumber = ""
	identity.ProductName = ""

	_, err := NewBuilder(identity, 23, 21).Build(decimal.NewFromInt(15000), dateutil.Date(2023, 1, 1))
	require.ErrorIs(t, err, apperrors.ErrMissingConfiguration)

	var missing *apperrors.MissingConfigError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{config.EnvBuyerTaxNumber, config.EnvProductName}, missing.Keys)
}

func TestBuildRejectsShortLeadTime(t *testing.T) {
	_, err := NewBuilder(testIdentity(), 23, 4).Build(decimal.NewFromInt(15000), dateutil.Date(2023, 1, 1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestIdentityFromConfig(t *testing.T) {
	cfg := &config.Config{
		API:     config.APIConfig{Token: "t", URL: "https://example"},
		Seller:  config.PartyConfig{Name: "S", TaxNumber: "1"},
		Buyer:   config.PartyConfig{Name: "B", TaxNumber: "2"},
		Product: config.ProductConfig{Name: "P"},
	}

	assert.Equal(t, Identity{
		APIToken:        "t",
		SellerName:      "S",
		SellerTaxNumber: "1",
		BuyerName:       "B",
		BuyerTaxNumber:  "2",
		ProductName:     "P",
	}, IdentityFromConfig(cfg))
}

func TestRedacted(t *testing.T) {
	payload := Payload{APIToken: "secret-token"}

	assert.Equal(t, "***", payload.Redacted().APIToken)
	assert.Equal(t, "secret-token", payload.APIToken)
}

func TestAmountUnmarshal(t *testing.T) {
	var position Position
	require.NoError(t, json.Unmarshal([]byte(`{"total_price_gross": "123.45"}`), &position))
	assert.Equal(t, "123.45", position.TotalPriceGross.String())

	require.NoError(t, json.Unmarshal([]byte(`{"total_price_gross": 99}`), &position))
	assert.Equal(t, "99", position.TotalPriceGross.String())
}
