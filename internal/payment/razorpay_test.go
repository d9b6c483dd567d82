package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinkRequest() *LinkRequest {
	return &LinkRequest{
		Amount:      118000,
		Currency:    "INR",
		Description: "Payment for Invoice #INV-t1",
		Customer:    Customer{Name: "Test Customer", Email: "customer@example.com"},
		ReferenceID: "INV-t1",
	}
}

func TestCreateLinkSuccess(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment_links", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)

		var body LinkRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(118000), body.Amount)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "plink_abc",
			"short_url": "https://pay.example/abc",
			"status":    "created",
		})
	}))
	defer server.Close()

	client := NewClient("rzp_test_key", "secret", server.URL)
	link, err := client.CreateLink(context.Background(), newLinkRequest())
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example/abc", link.URL)
	assert.Equal(t, "plink_abc", link.ID)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestCreateLinkMissingCredentials(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	for _, client := range []*Client{
		NewClient("", "secret", server.URL),
		NewClient("rzp_test_key", "", server.URL),
		NewClient("", "", server.URL),
	} {
		_, err := client.CreateLink(context.Background(), newLinkRequest())

		var configErr *ConfigurationError
		require.ErrorAs(t, err, &configErr)
	}

	assert.Equal(t, int64(0), atomic.LoadInt64(&calls), "no network call may be attempted without credentials")
}

func TestCreateLinkAuthenticationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
	}))
	defer server.Close()

	client := NewClient("rzp_test_key", "wrong", server.URL)
	_, err := client.CreateLink(context.Background(), newLinkRequest())

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Authentication failed", authErr.Message)
}

func TestNormalizeErrorShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "nested description", body: `{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`, want: "amount too small"},
		{name: "top level description", body: `{"description":"currency not supported"}`, want: "currency not supported"},
		{name: "generic message", body: `{"message":"something went wrong"}`, want: "something went wrong"},
		{name: "unparseable body", body: `<html>gateway timeout</html>`, want: "gateway request failed with status 400"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := normalizeError(http.StatusBadRequest, []byte(tc.body))

			var gatewayErr *GatewayError
			require.ErrorAs(t, err, &gatewayErr)
			assert.Equal(t, tc.want, gatewayErr.Message)
			assert.Equal(t, http.StatusBadRequest, gatewayErr.Status)
		})
	}
}

func TestCreateLinkErrorOmitsSecrets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"amount too small"}}`))
	}))
	defer server.Close()

	client := NewClient("rzp_test_key", "super_secret_value", server.URL)
	_, err := client.CreateLink(context.Background(), newLinkRequest())

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super_secret_value")
}

func TestCreateOrderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)

		var body OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "receipt_INV-t1", body.Receipt)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_xyz",
			"amount":   body.Amount,
			"currency": body.Currency,
			"receipt":  body.Receipt,
		})
	}))
	defer server.Close()

	client := NewClient("rzp_test_key", "secret", server.URL)
	order, err := client.CreateOrder(context.Background(), &OrderRequest{
		Amount:   118000,
		Currency: "INR",
		Receipt:  "receipt_INV-t1",
	})
	require.NoError(t, err)

	assert.Equal(t, "order_xyz", order.ID)
	assert.Equal(t, int64(118000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "receipt_INV-t1", order.Receipt)
}

func TestConfiguredAndKeyIDPrefix(t *testing.T) {
	client := NewClient("rzp_test_abcdef12345", "secret", "")
	keyID, keySecret := client.Configured()
	assert.True(t, keyID)
	assert.True(t, keySecret)
	assert.Equal(t, "rzp_test", client.KeyIDPrefix())

	empty := NewClient("", "", "")
	keyID, keySecret = empty.Configured()
	assert.False(t, keyID)
	assert.False(t, keySecret)
	assert.Equal(t, "", empty.KeyIDPrefix())
}
