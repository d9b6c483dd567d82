package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder() *Builder {
	b := NewBuilder("INR", "https://invoices.example.com")
	b.now = func() time.Time {
		return time.Unix(1_700_000_000, 0)
	}
	return b
}

func validInput() LinkInput {
	return LinkInput{
		TransactionID: "a3f8d1c2-0000-0000-0000-000000000001",
		Amount:        decimal.NewFromFloat(1180.00),
		CustomerName:  "Test Customer",
	}
}

func TestBuildRejectsInvalidAmount(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"zero":     decimal.Zero,
		"negative": decimal.NewFromFloat(-10.50),
	}

	b := testBuilder()
	for name, amount := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			in.Amount = amount

			_, err := b.Build(in)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "amount", validationErr.Field)
		})
	}
}

func TestBuildRejectsEmptyCustomerName(t *testing.T) {
	b := testBuilder()
	for _, name := range []string{"", "   ", "\t"} {
		in := validInput()
		in.CustomerName = name

		_, err := b.Build(in)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "customerName", validationErr.Field)
	}
}

func TestBuildRejectsEmptyTransactionID(t *testing.T) {
	b := testBuilder()
	in := validInput()
	in.TransactionID = "  "

	_, err := b.Build(in)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "transactionId", validationErr.Field)
}

func TestBuildDefaults(t *testing.T) {
	b := testBuilder()
	in := validInput()

	req, err := b.Build(in)
	require.NoError(t, err)

	assert.Equal(t, int64(118000), req.Amount)
	assert.Equal(t, "INR", req.Currency)
	assert.False(t, req.AcceptPartial)
	assert.Equal(t, "customer@example.com", req.Customer.Email)
	assert.Empty(t, req.Customer.Contact)
	assert.Equal(t, "INV-a3f8d1c2", req.ReferenceID)
	assert.Equal(t, "Payment for Invoice #INV-a3f8d1c2", req.Description)
	assert.Equal(t, "https://invoices.example.com/transactions/a3f8d1c2-0000-0000-0000-000000000001/invoice", req.CallbackURL)
	assert.Equal(t, "get", req.CallbackMethod)
	assert.Equal(t, int64(1_700_000_000+604800), req.ExpireBy)
	assert.Equal(t, "a3f8d1c2-0000-0000-0000-000000000001", req.Notes["transaction_id"])
}

func TestBuildUsesSuppliedInvoiceNumberAndDescription(t *testing.T) {
	b := testBuilder()
	in := validInput()
	in.InvoiceNumber = "INV-20260110-9C1D"
	in.Description = "Consulting retainer"
	in.CustomerEmail = "billing@client.example"

	req, err := b.Build(in)
	require.NoError(t, err)

	assert.Equal(t, "INV-20260110-9C1D", req.ReferenceID)
	assert.Equal(t, "Consulting retainer", req.Description)
	assert.Equal(t, "billing@client.example", req.Customer.Email)
}

func TestMinorUnitsRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"1000", 100000},
		{"11.005", 1101},
		{"99.994", 9999},
		{"0.01", 1},
		{"1180.00", 118000},
		{"2.675", 268},
	}

	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		require.NoError(t, err)
		assert.Equal(t, tc.want, MinorUnits(amount), "amount %s", tc.amount)
	}
}

func TestNormalizeContact(t *testing.T) {
	cases := []struct {
		name    string
		phone   string
		want    string
		wantErr bool
	}{
		{name: "empty allowed", phone: "", want: ""},
		{name: "already normalized", phone: "+919876543210", want: "+919876543210"},
		{name: "adds plus", phone: "919876543210", want: "+919876543210"},
		{name: "strips separators", phone: "+91 98765-43210", want: "+919876543210"},
		{name: "too short rejected", phone: "+9112", wantErr: true},
		{name: "short local rejected", phone: "12345", wantErr: true},
		{name: "letters rejected", phone: "+91abc4321098", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeContact(tc.phone)
			if tc.wantErr {
				var validationErr *ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, "customerPhone", validationErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildNeverPadsShortPhone(t *testing.T) {
	b := testBuilder()
	in := validInput()
	in.CustomerPhone = "+9112"

	_, err := b.Build(in)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "customerPhone", validationErr.Field)
}

func TestBuildOrder(t *testing.T) {
	b := testBuilder()
	in := validInput()
	in.InvoiceNumber = "INV-20260110-9C1D"

	req, err := b.BuildOrder(in, "receipt_INV-20260110-9C1D")
	require.NoError(t, err)

	assert.Equal(t, int64(118000), req.Amount)
	assert.Equal(t, "INR", req.Currency)
	assert.Equal(t, "receipt_INV-20260110-9C1D", req.Receipt)
	assert.Equal(t, "INV-20260110-9C1D", req.Notes["invoice_number"])
}

func TestBuildOrderRejectsInvalidAmount(t *testing.T) {
	b := testBuilder()
	in := validInput()
	in.Amount = decimal.Zero

	_, err := b.BuildOrder(in, "receipt_x")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
