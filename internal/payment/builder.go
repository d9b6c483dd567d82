package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// linkValidity is the fixed expiry window for hosted payment links.
	linkValidity = 7 * 24 * time.Hour

	// minContactLength is the gateway's minimum accepted contact length,
	// counting the leading plus sign.
	minContactLength = 8

	// placeholderEmail is substituted when the customer email is absent.
	// The gateway requires an email on the customer block.
	placeholderEmail = "customer@example.com"
)

// LinkInput carries the transaction fields needed to request a hosted
// payment link or an embedded-checkout order.
type LinkInput struct {
	TransactionID string
	InvoiceNumber string
	Amount        decimal.Decimal
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Description   string
}

// Customer identifies the payer on a gateway request.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact,omitempty"`
}

// NotifyOptions controls which channels the gateway uses to notify the payer.
type NotifyOptions struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// LinkRequest is the gateway-compliant payment link payload. Amount is in
// the currency's minor unit and is always derived from the transaction's
// total amount, never supplied independently.
type LinkRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	AcceptPartial  bool              `json:"accept_partial"`
	Description    string            `json:"description"`
	Customer       Customer          `json:"customer"`
	Notify         NotifyOptions     `json:"notify"`
	ReminderEnable bool              `json:"reminder_enable"`
	Notes          map[string]string `json:"notes"`
	CallbackURL    string            `json:"callback_url"`
	CallbackMethod string            `json:"callback_method"`
	ExpireBy       int64             `json:"expire_by"`
	ReferenceID    string            `json:"reference_id"`
}

// OrderRequest is the gateway order payload used by the embedded checkout.
type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

// Builder validates transaction input and produces gateway payloads. It is
// a pure transformation with no side effects.
type Builder struct {
	currency string
	baseURL  string
	now      func() time.Time
}

// NewBuilder constructs a Builder for the deployment's currency and base
// URL. The base URL is used to build invoice callback URLs.
func NewBuilder(currency, baseURL string) *Builder {
	return &Builder{
		currency: currency,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}
}

// Build validates the input and returns a payment link payload.
func (b *Builder) Build(in LinkInput) (*LinkRequest, error) {
	id, name, err := b.validate(in)
	if err != nil {
		return nil, err
	}

	contact, err := NormalizeContact(in.CustomerPhone)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.CustomerEmail)
	if email == "" {
		email = placeholderEmail
	}

	invoiceNumber := in.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = deriveInvoiceNumber(id)
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = fmt.Sprintf("Payment for Invoice #%s", invoiceNumber)
	}

	return &LinkRequest{
		Amount:        MinorUnits(in.Amount),
		Currency:      b.currency,
		AcceptPartial: false,
		Description:   description,
		Customer: Customer{
			Name:    name,
			Email:   email,
			Contact: contact,
		},
		Notify:         NotifyOptions{Email: true, SMS: true},
		ReminderEnable: true,
		Notes: map[string]string{
			"transaction_id": id,
			"invoice_number": invoiceNumber,
		},
		CallbackURL:    fmt.Sprintf("%s/transactions/%s/invoice", b.baseURL, id),
		CallbackMethod: "get",
		ExpireBy:       b.now().Add(linkValidity).Unix(),
		ReferenceID:    invoiceNumber,
	}, nil
}

// BuildOrder validates the input and returns an order payload for the
// embedded checkout flow.
func (b *Builder) BuildOrder(in LinkInput, receipt string) (*OrderRequest, error) {
	id, _, err := b.validate(in)
	if err != nil {
		return nil, err
	}

	invoiceNumber := in.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = deriveInvoiceNumber(id)
	}

	return &OrderRequest{
		Amount:   MinorUnits(in.Amount),
		Currency: b.currency,
		Receipt:  receipt,
		Notes: map[string]string{
			"transaction_id": id,
			"invoice_number": invoiceNumber,
		},
	}, nil
}

func (b *Builder) validate(in LinkInput) (id, name string, err error) {
	id = strings.TrimSpace(in.TransactionID)
	if id == "" {
		return "", "", &ValidationError{Field: "transactionId", Message: "transaction ID is required"}
	}

	if !in.Amount.IsPositive() {
		return "", "", &ValidationError{Field: "amount", Message: "amount must be a valid number greater than 0"}
	}

	name = strings.TrimSpace(in.CustomerName)
	if name == "" {
		return "", "", &ValidationError{Field: "customerName", Message: "customer name is required and cannot be empty"}
	}

	return id, name, nil
}

// MinorUnits converts a major-unit amount to the gateway's smallest
// currency unit, rounding half away from zero. Truncation would silently
// undercharge.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// NormalizeContact brings a phone number into the gateway's accepted
// contact format: a leading plus, country code and national number. An
// empty phone is allowed; a phone shorter than the gateway minimum is
// rejected rather than padded with fabricated digits.
func NormalizeContact(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	if cleaned == "" {
		return "", nil
	}

	if !strings.HasPrefix(cleaned, "+") {
		cleaned = "+" + cleaned
	}

	for _, r := range cleaned[1:] {
		if r < '0' || r > '9' {
			return "", &ValidationError{Field: "customerPhone", Message: "phone number may only contain digits after the country code"}
		}
	}

	if len(cleaned) < minContactLength {
		return "", &ValidationError{
			Field:   "customerPhone",
			Message: fmt.Sprintf("phone number must be at least %d characters including the country code", minContactLength),
		}
	}

	return cleaned, nil
}

func deriveInvoiceNumber(transactionID string) string {
	short := transactionID
	if len(short) > 8 {
		short = short[:8]
	}
	return "INV-" + short
}
