// Package netsuite holds the outbound side of the integration: the RESTlet
// client that pushes one order per call and the OAuth2 token source that
// authenticates a batch.
package netsuite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Poleswar/netsuite-order-sync/internal/payload"
)

// CalloutTimeout bounds a single RESTlet call. There is no retry: a stuck
// attempt is cut here and surfaces as a failed outcome.
const CalloutTimeout = 60 * time.Second

// Result classifies one synchronization attempt for a single order.
type Result struct {
	Success      bool
	HTTPStatus   int
	RequestBody  []byte
	ResponseBody string
	// ExternalID is the NetSuite-assigned identifier extracted from a
	// successful response, empty when the response carried none.
	ExternalID string
}

// restletResponse is the success-body shape of the order RESTlet.
// updatedID takes precedence over createdID when both are present.
type restletResponse struct {
	UpdatedID string `json:"updatedID"`
	CreatedID string `json:"createdID"`
}

// Client performs the HTTP POST against the order RESTlet endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

func NewClient(endpoint string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: CalloutTimeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

// SyncOrder serializes the payload and issues exactly one POST. Transport
// failures never surface as errors; they come back as a failed Result with
// the error text in the response body, so the caller can log them the same
// way as HTTP rejections.
func (c *Client) SyncOrder(ctx context.Context, body payload.Order, bearerToken string) Result {
	raw, err := json.Marshal(body)
	if err != nil {
		return Result{ResponseBody: fmt.Sprintf("payload marshal failed: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return Result{RequestBody: raw, ResponseBody: fmt.Sprintf("request build failed: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("NetSuite callout transport failure", "order_id", body.OrderID, "error", err)
		return Result{RequestBody: raw, ResponseBody: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("NetSuite response read failure", "order_id", body.OrderID, "error", err)
		return Result{RequestBody: raw, HTTPStatus: resp.StatusCode, ResponseBody: fmt.Sprintf("response read failed: %v", err)}
	}

	res := Result{
		HTTPStatus:   resp.StatusCode,
		RequestBody:  raw,
		ResponseBody: string(respBody),
	}

	// Only 200 and 201 count as success. Everything else is a failure with
	// the raw body preserved for the audit log.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("NetSuite rejected order", "order_id", body.OrderID, "status", resp.StatusCode)
		return res
	}

	res.Success = true
	var parsed restletResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		c.logger.Warn("NetSuite success body is not parseable, no external ID extracted",
			"order_id", body.OrderID, "error", err)
		return res
	}

	switch {
	case parsed.UpdatedID != "":
		res.ExternalID = parsed.UpdatedID
	case parsed.CreatedID != "":
		res.ExternalID = parsed.CreatedID
	}
	return res
}
