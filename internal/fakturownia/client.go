package fakturownia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/username/invoice-generator/internal/apperrors"
	"github.com/username/invoice-generator/internal/invoice"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Response is the decoded response body. Its shape is left to the caller.
type Response map[string]any

// Client submits invoices to the Fakturownia API
type Client struct {
	invoicesURL string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new API client posting to invoicesURL
// (e.g. https://<account>.fakturownia.pl/invoices.json)
func NewClient(invoicesURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		invoicesURL: invoicesURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CreateInvoice posts the payload once. There are no retries: a failure is
// returned as an apperrors.TransportError.
func (c *Client) CreateInvoice(ctx context.Context, payload *invoice.Payload) (Response, error) {
	requestID := uuid.NewString()

	c.logger.Info("Submitting invoice",
		zap.String("request_id", requestID),
		zap.String("issue_date", payload.Invoice.IssueDate),
		zap.String("payment_to", payload.Invoice.PaymentTo),
		zap.Int("positions", len(payload.Invoice.Positions)))

	var result Response
	if err := c.doRequest(ctx, http.MethodPost, c.invoicesURL, requestID, payload, &result); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	c.logger.Info("Invoice created",
		zap.String("request_id", requestID),
		zap.Any("id", result["id"]),
		zap.Any("number", result["number"]))

	return result, nil
}

// doRequest performs a single JSON request
func (c *Client) doRequest(ctx context.Context, method, url, requestID string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return &apperrors.TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.TransportError{Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("API request failed",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode))
		return &apperrors.TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &apperrors.TransportError{
				StatusCode: resp.StatusCode,
				Body:       string(respBody),
				Err:        fmt.Errorf("failed to parse response: %w", err),
			}
		}
	}

	return nil
}
