package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/invoice-generator/internal/apperrors"
	"github.com/username/invoice-generator/internal/config"
	"github.com/username/invoice-generator/internal/fakturownia"
	"github.com/username/invoice-generator/internal/invoice"
	"github.com/username/invoice-generator/pkg/dateutil"
	"go.uber.org/zap"
)

type fakeSubmitter struct {
	payloads []*invoice.Payload
	response fakturownia.Response
	err      error
}

func (f *fakeSubmitter) CreateInvoice(ctx context.Context, payload *invoice.Payload) (fakturownia.Response, error) {
	f.payloads = append(f.payloads, payload)
	return f.response, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		API:     config.APIConfig{Token: "secret-token", URL: "https://example.invalid/invoices.json"},
		Seller:  config.PartyConfig{Name: "Seller", TaxNumber: "111"},
		Buyer:   config.PartyConfig{Name: "Buyer", TaxNumber: "222"},
		Product: config.ProductConfig{Name: "Services"},
		Salary:  config.SalaryConfig{Monthly: "15000", BaselineHours: 168, HoursPerDay: 8},
		Invoice: config.InvoiceConfig{TaxPercent: 23, PaymentLeadDays: 21},
	}
}

func newTestGenerator(t *testing.T, cfg *config.Config, submitter Submitter) *Generator {
	t.Helper()
	gen, err := NewFromConfig(cfg, submitter, zap.NewNop())
	require.NoError(t, err)
	return gen
}

func TestRunAutoJanuary2023(t *testing.T) {
	submitter := &fakeSubmitter{response: fakturownia.Response{"id": float64(1)}}
	gen := newTestGenerator(t, testConfig(), submitter)

	result, err := gen.Run(context.Background(), "--auto", dateutil.Date(2023, 1, 1), false)
	require.NoError(t, err)

	assert.Equal(t, 168, result.Hours)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, fakturownia.Response{"id": float64(1)}, result.Response)

	require.Len(t, submitter.payloads, 1)
	payload := submitter.payloads[0]
	assert.Same(t, result.Payload, payload)
	assert.True(t, payload.Invoice.Positions[0].TotalPriceGross.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, "2023-01-31", payload.Invoice.IssueDate)
	assert.Equal(t, "2023-02-21", payload.Invoice.PaymentTo)
}

func TestRunExplicitHours(t *testing.T) {
	submitter := &fakeSubmitter{}
	gen := newTestGenerator(t, testConfig(), submitter)

	result, err := gen.Run(context.Background(), "84", dateutil.Date(2022, 12, 1), false)
	require.NoError(t, err)

	assert.Equal(t, 84, result.Hours)
	assert.Equal(t, "7500", result.Amount.String())
	assert.Equal(t, "2022-12-30", result.Payload.Invoice.SellDate)
	assert.Equal(t, "2023-01-20", result.Payload.Invoice.PaymentTo)
}

func TestRunDryRunDoesNotSubmit(t *testing.T) {
	submitter := &fakeSubmitter{}
	gen := newTestGenerator(t, testConfig(), submitter)

	result, err := gen.Run(context.Background(), "100", dateutil.Date(2023, 1, 1), true)
	require.NoError(t, err)

	assert.Empty(t, submitter.payloads)
	assert.Nil(t, result.Response)
	assert.Equal(t, "8929", result.Amount.String())
}

func TestRunInvalidArgument(t *testing.T) {
	submitter := &fakeSubmitter{}
	gen := newTestGenerator(t, testConfig(), submitter)

	_, err := gen.Run(context.Background(), "lots", dateutil.Date(2023, 1, 1), false)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Empty(t, submitter.payloads)
}

func TestRunMissingConfiguration(t *testing.T) {
	cfg := testConfig()
	cfg.Seller.TaxNumber = ""
	submitter := &fakeSubmitter{}
	gen := newTestGenerator(t, cfg, submitter)

	_, err := gen.Run(context.Background(), "168", dateutil.Date(2023, 1, 1), false)
	assert.ErrorIs(t, err, apperrors.ErrMissingConfiguration)
	assert.Empty(t, submitter.payloads)
}

func TestRunPropagatesTransportError(t *testing.T) {
	submitter := &fakeSubmitter{err: &apperrors.TransportError{StatusCode: 500, Body: "boom"}}
	gen := newTestGenerator(t, testConfig(), submitter)

	_, err := gen.Run(context.Background(), "168", dateutil.Date(2023, 1, 1), false)
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestRunWithCustomBaseline(t *testing.T) {
	cfg := testConfig()
	cfg.Salary.Monthly = "16000"
	cfg.Salary.BaselineHours = 160
	gen := newTestGenerator(t, cfg, &fakeSubmitter{})

	result, err := gen.Run(context.Background(), "160", dateutil.Date(2023, 1, 1), true)
	require.NoError(t, err)
	assert.Equal(t, "16000", result.Amount.String())

	result, err = gen.Run(context.Background(), "80", dateutil.Date(2023, 1, 1), true)
	require.NoError(t, err)
	assert.Equal(t, "8000", result.Amount.String())
}

func TestNewFromConfigRejectsBadSalary(t *testing.T) {
	cfg := testConfig()
	cfg.Salary.Monthly = "n/a"

	_, err := NewFromConfig(cfg, &fakeSubmitter{}, zap.NewNop())
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestRunEndToEnd(t *testing.T) {
	var received invoice.Payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 7, "view_url": "https://example/invoices/7"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	client := fakturownia.NewClient(server.URL, time.Second, zap.NewNop())
	gen := newTestGenerator(t, cfg, client)

	result, err := gen.Run(context.Background(), "--auto", dateutil.Date(2023, 1, 1), false)
	require.NoError(t, err)

	assert.Equal(t, "https://example/invoices/7", result.Response["view_url"])
	assert.Equal(t, "secret-token", received.APIToken)
	assert.Equal(t, "2023-01-31", received.Invoice.IssueDate)
	require.Len(t, received.Invoice.Positions, 1)
	assert.Equal(t, "15000", received.Invoice.Positions[0].TotalPriceGross.String())
	assert.Equal(t, 23, received.Invoice.Positions[0].Tax)
	assert.Equal(t, 1, received.Invoice.Positions[0].Quantity)
}
