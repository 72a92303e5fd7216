package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient speaks JSON over HTTP to the payment-rail provider. Idempotency
// keys travel in the Idempotency-Key header, matching the provider's replay
// semantics: a repeated call with the same key returns the original resource.
type HTTPClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewHTTPClient returns a client for the given provider endpoint.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type apiError struct {
	Message string `json:"message"`
}

func (c *HTTPClient) CreateExternalAccount(ctx context.Context, req ExternalAccountRequest) (ExternalAccount, error) {
	var acct ExternalAccount
	if err := c.post(ctx, "/external-accounts", req.IdempotencyKey, req, &acct); err != nil {
		return ExternalAccount{}, fmt.Errorf("%w: %v", ErrAccountRejected, err)
	}
	return acct, nil
}

func (c *HTTPClient) CreateTransfer(ctx context.Context, req TransferRequest) (Transfer, error) {
	var xfer Transfer
	if err := c.post(ctx, "/transfers", req.IdempotencyKey, req, &xfer); err != nil {
		return Transfer{}, fmt.Errorf("%w: %v", ErrTransferRejected, err)
	}
	return xfer, nil
}

func (c *HTTPClient) TransferStatus(ctx context.Context, transferID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/transfers/"+transferID, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req, "")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("transfer status query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.decodeError(resp)
	}

	var xfer Transfer
	if err := json.NewDecoder(resp.Body).Decode(&xfer); err != nil {
		return "", fmt.Errorf("decoding transfer status: %w", err)
	}
	return xfer.Status, nil
}

func (c *HTTPClient) post(ctx context.Context, path, idempotencyKey string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setHeaders(req, idempotencyKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("provider call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}
	return nil
}

func (c *HTTPClient) setHeaders(req *http.Request, idempotencyKey string) {
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
}

// decodeError surfaces the provider's human-readable message when present.
func (c *HTTPClient) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var ae apiError
	if json.Unmarshal(body, &ae) == nil && ae.Message != "" {
		return fmt.Errorf("provider returned %d: %s", resp.StatusCode, ae.Message)
	}
	return fmt.Errorf("provider returned %d", resp.StatusCode)
}
