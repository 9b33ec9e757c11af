package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/iwvelando/house-price/internal/form"
	"github.com/iwvelando/house-price/pkg/constants"
	"go.uber.org/zap"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client posts form values to the prediction route of a server.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the server at baseURL. A nil httpClient uses
// http.DefaultClient and a nil logger discards logs.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + constants.PredictPath,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Endpoint returns the URL predictions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Predict sends one submission. The body is the JSON serialization of fields.
// Server-reported failures are returned as a Failure outcome; anything that
// prevents reading a well-formed verdict is returned as an error wrapping
// ErrTransport. The HTTP status is not consulted: the envelope decides.
func (c *Client) Predict(ctx context.Context, fields form.FieldSet) (Outcome, error) {
	if fields == nil {
		fields = form.FieldSet{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode form values: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close prediction response body",
				zap.String("op", "predict.Predict"),
				zap.Error(closeErr),
			)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	var envelope Response
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response (status %d): %v", ErrTransport, resp.StatusCode, err)
	}

	outcome, err := envelope.Outcome()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("prediction received",
		zap.String("op", "predict.Predict"),
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", *envelope.Success),
	)
	return outcome, nil
}
