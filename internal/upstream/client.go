// Package upstream is the JSON client for the shipment data service. The
// service is an opaque collaborator: this client fetches snapshots, never
// writes shipment data, and retries only idempotent reads.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const maxRetries = 3

// Option configures a Client.
type Option func(c *Client) error

// WithHTTPClient overrides the transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		c.hc = client
		return nil
	}
}

// WithLogger attaches a named logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) error {
		c.logger = logger.Named("upstream")
		return nil
	}
}

// WithAPIKey sets the service API key sent on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) error {
		c.apiKey = key
		return nil
	}
}

// Client talks to the shipment data service.
type Client struct {
	hc     *http.Client
	logger *zap.SugaredLogger
	url    url.URL
	apiKey string
}

// Open builds a client for the given base URL.
func Open(serviceURL url.URL, opts ...Option) (*Client, error) {
	c := Client{
		hc:     http.DefaultClient,
		logger: zap.NewNop().Sugar(),
		url:    serviceURL,
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// statusError carries the upstream HTTP status and its error body message.
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream returned %d", e.Status)
}

// IsStatus reports whether err wraps an upstream response with the given
// status code.
func IsStatus(err error, status int) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Status == status
	}
	return false
}

// ErrorMessage extracts the upstream-provided error string, if any, so
// handlers can surface it verbatim.
func ErrorMessage(err error) string {
	var se *statusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

// GetShipment fetches one shipment snapshot.
func (c *Client) GetShipment(ctx context.Context, shipmentID string) (*ShipmentSnapshot, error) {
	var snapshot ShipmentSnapshot
	if err := c.doGET(ctx, fmt.Sprintf("/shipments/%s", url.PathEscape(shipmentID)), nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetClaimEligibility fetches the authoritative eligibility flags for a
// shipment.
func (c *Client) GetClaimEligibility(ctx context.Context, shipmentID string) (*ClaimEligibility, error) {
	var elig ClaimEligibility
	if err := c.doGET(ctx, fmt.Sprintf("/shipments/%s/claim-eligibility", url.PathEscape(shipmentID)), nil, &elig); err != nil {
		return nil, err
	}
	return &elig, nil
}

// ListCommissions fetches commission lines, optionally filtered by brand.
func (c *Client) ListCommissions(ctx context.Context, brandID string) ([]Commission, error) {
	params := url.Values{}
	if brandID != "" {
		params.Set("brand_id", brandID)
	}
	var commissions []Commission
	if err := c.doGET(ctx, "/commissions", params, &commissions); err != nil {
		return nil, err
	}
	return commissions, nil
}

// ListInvoiceFiles fetches the files attached to an invoice.
func (c *Client) ListInvoiceFiles(ctx context.Context, invoiceID string) ([]InvoiceFile, error) {
	var files []InvoiceFile
	if err := c.doGET(ctx, fmt.Sprintf("/invoices/%s/files", url.PathEscape(invoiceID)), nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// TriggerSync asks the data service to run a sync pass. Not retried: the
// call is not idempotent.
func (c *Client) TriggerSync(ctx context.Context) (*SyncResult, error) {
	var result SyncResult
	if err := c.doPOST(ctx, "/sync", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyToken checks a brand API token against the data service.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return c.doPOST(ctx, "/tokens/verify", body, nil)
}

func (c *Client) doGET(ctx context.Context, path string, params url.Values, output interface{}) error {
	bckoff := &backoff.Backoff{Jitter: true}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := c.newRequest(ctx, http.MethodGet, path, params, nil)
		if err != nil {
			return err
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			lastErr = errors.Wrapf(err, "GET %s failed", req.URL)
		} else {
			err = c.checkResponse(req, resp, start)
			if err == nil {
				err = decodeJSON(resp.Body, output)
				_ = resp.Body.Close()
				if err == nil {
					return nil
				}
				lastErr = err
			} else {
				_ = resp.Body.Close()
				if !retryable(err) {
					return err
				}
				lastErr = err
			}
		}

		if attempt == maxRetries-1 {
			break
		}
		c.logger.Warnw("retrying upstream request", "path", path, "error", lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(bckoff.Duration()):
		}
	}
	return lastErr
}

func (c *Client) doPOST(ctx context.Context, path string, body interface{}, output interface{}) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		payload = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s failed", req.URL)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkResponse(req, resp, start); err != nil {
		return err
	}
	if output == nil {
		return nil
	}
	return decodeJSON(resp.Body, output)
}

func (c *Client) newRequest(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Request, error) {
	u := c.url
	u.Path = "/v1" + path
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *Client) checkResponse(req *http.Request, resp *http.Response, start time.Time) error {
	c.logger.Infow(req.Method,
		"url", req.URL.String(),
		"time", time.Since(start).Seconds(),
		"status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	se := &statusError{Status: resp.StatusCode}
	var envelope struct {
		Error string `json:"error"`
	}
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		if json.Unmarshal(raw, &envelope) == nil {
			se.Message = envelope.Error
		}
	}
	return se
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	return true
}

func decodeJSON(r io.Reader, output interface{}) error {
	if output == nil {
		_, err := io.Copy(io.Discard, r)
		return err
	}
	if err := json.NewDecoder(r).Decode(output); err != nil {
		return errors.Wrap(err, "decode upstream response")
	}
	return nil
}
