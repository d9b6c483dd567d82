package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// defaultBaseURL is the Razorpay REST API root.
const defaultBaseURL = "https://api.razorpay.com/v1"

// Client invokes the Razorpay link and order creation endpoints. Each call
// is attempted exactly once; the gateway is not guaranteed idempotent on
// retry, so blind retries risk duplicate links or charges. Deadlines come
// from the caller's context.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client. Credentials may be empty; every call
// checks them and fails with a ConfigurationError before touching the
// network.
func NewClient(keyID, keySecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Link is a created hosted payment link.
type Link struct {
	URL string
	ID  string
}

// Order is a created gateway order for the embedded checkout.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// Configured reports credential presence without exposing values.
func (c *Client) Configured() (keyID, keySecret bool) {
	return c.keyID != "", c.keySecret != ""
}

// KeyIDPrefix returns the first characters of the key id for support
// debugging. Never the full key.
func (c *Client) KeyIDPrefix() string {
	if len(c.keyID) > 8 {
		return c.keyID[:8]
	}
	return c.keyID
}

// KeyID returns the public key identifier used by the checkout widget.
func (c *Client) KeyID() string {
	return c.keyID
}

type linkResponse struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

// CreateLink creates a hosted payment link from the built payload.
func (c *Client) CreateLink(ctx context.Context, req *LinkRequest) (*Link, error) {
	var resp linkResponse
	if err := c.post(ctx, "/payment_links", req, &resp); err != nil {
		return nil, err
	}

	if resp.ShortURL == "" {
		return nil, &GatewayError{Message: "gateway response missing payment link URL"}
	}

	return &Link{URL: resp.ShortURL, ID: resp.ID}, nil
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder creates a gateway order for the embedded checkout flow.
func (c *Client) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	var resp orderResponse
	if err := c.post(ctx, "/orders", req, &resp); err != nil {
		return nil, err
	}

	if resp.ID == "" {
		return nil, &GatewayError{Message: "gateway response missing order ID"}
	}

	return &Order{
		ID:       resp.ID,
		Amount:   resp.Amount,
		Currency: resp.Currency,
		Receipt:  resp.Receipt,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	if c.keyID == "" || c.keySecret == "" {
		return &ConfigurationError{Message: "payment gateway credentials are not configured"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute gateway request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal gateway response: %w", err)
	}

	return nil
}

// gatewayErrorBody covers the gateway's documented error shapes: a nested
// error object, a top-level description, or a generic message.
type gatewayErrorBody struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// normalizeError converts a gateway rejection into one typed error value.
// The raw request payload and credentials never appear in the result.
func normalizeError(status int, body []byte) error {
	var parsed gatewayErrorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Error.Description
	if message == "" {
		message = parsed.Description
	}
	if message == "" {
		message = parsed.Message
	}
	if message == "" {
		message = fmt.Sprintf("gateway request failed with status %d", status)
	}

	if status == http.StatusUnauthorized {
		return &AuthenticationError{Message: message}
	}

	return &GatewayError{Status: status, Code: parsed.Error.Code, Message: message}
}
