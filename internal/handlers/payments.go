package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/example/invopay/internal/payment"
	"github.com/example/invopay/internal/services"
)

// PaymentHandler manages payment-link, order and reconciliation endpoints.
type PaymentHandler struct {
	payments *services.PaymentService
	gateway  *payment.Client
	currency string
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(payments *services.PaymentService, gateway *payment.Client, currency string) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		gateway:  gateway,
		currency: currency,
	}
}

type createLinkRequest struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	Description   string          `json:"description"`
}

// CreatePaymentLink creates a hosted payment link for an invoice.
func (h *PaymentHandler) CreatePaymentLink(c *fiber.Ctx) error {
	var req createLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Invalid amount", "Amount must be a valid number greater than 0")
	}

	result, err := h.payments.CreatePaymentLink(c.UserContext(), services.CreateLinkParams{
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Description:   req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"paymentLink":   result.PaymentLink,
		"paymentLinkId": result.PaymentLinkID,
		"amount":        result.Amount,
	})
}

type createOrderRequest struct {
	TransactionID string `json:"transactionId"`
}

// CreateOrder creates a gateway order for the embedded checkout widget.
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Transaction ID is required", "")
	}

	if strings.TrimSpace(req.TransactionID) == "" {
		return writeError(c, fiber.StatusBadRequest, "Transaction ID is required", "")
	}

	result, err := h.payments.CreateOrder(c.UserContext(), req.TransactionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"orderId":  result.OrderID,
		"amount":   result.Amount,
		"currency": result.Currency,
		"receipt":  result.Receipt,
		"notes":    result.Notes,
	})
}

// ConfigCheck reports whether gateway credentials are configured. Only
// existence booleans and a key-id prefix are returned, never the values.
func (h *PaymentHandler) ConfigCheck(c *fiber.Ctx) error {
	keyIDSet, keySecretSet := h.gateway.Configured()

	var prefix any
	if keyIDSet {
		prefix = h.gateway.KeyIDPrefix()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"credentials": fiber.Map{
			"key_id_exists":     keyIDSet,
			"key_secret_exists": keySecretSet,
			"key_id_prefix":     prefix,
		},
	})
}

// CheckoutConfig returns the public values the embedded checkout widget
// needs to initialize.
func (h *PaymentHandler) CheckoutConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":  true,
		"keyId":    h.gateway.KeyID(),
		"currency": h.currency,
	})
}

type confirmPaymentRequest struct {
	TransactionID string `json:"transactionId"`
	PaymentID     string `json:"paymentId"`
}

// ConfirmPayment reconciles a successful checkout-widget payment.
func (h *PaymentHandler) ConfirmPayment(c *fiber.Ctx) error {
	var req confirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Invalid request body", "")
	}

	if strings.TrimSpace(req.TransactionID) == "" || strings.TrimSpace(req.PaymentID) == "" {
		return writeError(c, fiber.StatusBadRequest, "transactionId and paymentId are required", "")
	}

	txn, err := h.payments.MarkPaid(c.UserContext(), req.TransactionID, req.PaymentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"transaction": txn,
	})
}

// PaymentCallback reconciles a hosted-link return redirect. The gateway
// appends the payment id as query parameters on the callback URL.
func (h *PaymentHandler) PaymentCallback(c *fiber.Ctx) error {
	invoiceID := strings.TrimSpace(c.Query("invoice_id"))
	paymentID := strings.TrimSpace(c.Query("payment_id"))
	if paymentID == "" {
		paymentID = strings.TrimSpace(c.Query("razorpay_payment_id"))
	}

	if invoiceID == "" {
		return writeError(c, fiber.StatusBadRequest, "invoice_id is required", "")
	}
	if paymentID == "" {
		return writeError(c, fiber.StatusBadRequest, "payment_id is required", "")
	}

	txn, err := h.payments.MarkPaid(c.UserContext(), invoiceID, paymentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"transaction": txn,
	})
}
