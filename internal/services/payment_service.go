package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/invopay/internal/models"
	"github.com/example/invopay/internal/payment"
	"github.com/example/invopay/internal/repo"
)

// Gateway abstracts the hosted payment gateway client.
type Gateway interface {
	CreateLink(ctx context.Context, req *payment.LinkRequest) (*payment.Link, error)
	CreateOrder(ctx context.Context, req *payment.OrderRequest) (*payment.Order, error)
}

// NotFoundError indicates the transaction id did not resolve. Lookup
// failure is a hard failure; the workflow never substitutes placeholder
// transaction data.
type NotFoundError struct {
	TransactionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("transaction %s not found", e.TransactionID)
}

// AlreadyPaidError rejects link or order creation for a settled invoice.
type AlreadyPaidError struct {
	TransactionID string
}

func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("transaction %s is already paid", e.TransactionID)
}

// ReconciliationSyncError means the payment succeeded at the gateway but
// the local status update failed. Callers must present this as a
// successful payment with a sync problem, never as a payment failure.
type ReconciliationSyncError struct {
	TransactionID string
	PaymentID     string
	Err           error
}

func (e *ReconciliationSyncError) Error() string {
	return fmt.Sprintf("payment %s succeeded but status sync failed for transaction %s", e.PaymentID, e.TransactionID)
}

func (e *ReconciliationSyncError) Unwrap() error {
	return e.Err
}

// PaymentService runs the payment-link workflow: validate, build the
// gateway payload, call the gateway and reconcile results back into the
// transaction record.
type PaymentService struct {
	txns     repo.TransactionRepo
	builder  *payment.Builder
	gateway  Gateway
	telegram *TelegramService
	currency string
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(txns repo.TransactionRepo, builder *payment.Builder, gateway Gateway, telegram *TelegramService, currency string) *PaymentService {
	return &PaymentService{
		txns:     txns,
		builder:  builder,
		gateway:  gateway,
		telegram: telegram,
		currency: currency,
	}
}

// CreateLinkParams carries the request fields for a hosted payment link.
type CreateLinkParams struct {
	TransactionID string
	Amount        decimal.Decimal
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Description   string
}

// LinkResult is the workflow output for a created payment link.
type LinkResult struct {
	PaymentLink   string
	PaymentLinkID string
	Amount        decimal.Decimal
}

// CreatePaymentLink validates the request, builds the gateway payload and
// creates a hosted payment link. When the transaction id resolves to a
// stored record its lifecycle is respected: a paid invoice never gets
// another link. Ad-hoc links for ids not yet persisted carry the request's
// own customer data.
func (s *PaymentService) CreatePaymentLink(ctx context.Context, params CreateLinkParams) (*LinkResult, error) {
	input := payment.LinkInput{
		TransactionID: params.TransactionID,
		Amount:        params.Amount,
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		CustomerPhone: params.CustomerPhone,
		Description:   params.Description,
	}

	if id, err := uuid.Parse(strings.TrimSpace(params.TransactionID)); err == nil {
		txn, err := s.txns.FindByID(ctx, id)
		switch {
		case err == nil:
			if txn.IsPaid() {
				return nil, &AlreadyPaidError{TransactionID: params.TransactionID}
			}
			input.InvoiceNumber = txn.InvoiceNumber
		case !errors.Is(err, repo.ErrNotFound):
			return nil, err
		}
	}

	req, err := s.builder.Build(input)
	if err != nil {
		return nil, err
	}

	link, err := s.gateway.CreateLink(ctx, req)
	if err != nil {
		return nil, err
	}

	return &LinkResult{
		PaymentLink:   link.URL,
		PaymentLinkID: link.ID,
		Amount:        params.Amount,
	}, nil
}

// OrderResult is the workflow output for a created gateway order.
type OrderResult struct {
	OrderID  string
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// CreateOrder looks up the transaction and creates a gateway order for the
// embedded checkout flow. A missing transaction is a hard failure.
func (s *PaymentService) CreateOrder(ctx context.Context, transactionID string) (*OrderResult, error) {
	id, err := uuid.Parse(strings.TrimSpace(transactionID))
	if err != nil {
		return nil, &NotFoundError{TransactionID: transactionID}
	}

	txn, err := s.txns.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &NotFoundError{TransactionID: transactionID}
		}
		return nil, err
	}

	if txn.IsPaid() {
		return nil, &AlreadyPaidError{TransactionID: transactionID}
	}

	receipt := receiptFor(txn)

	req, err := s.builder.BuildOrder(payment.LinkInput{
		TransactionID: txn.ID.String(),
		InvoiceNumber: txn.InvoiceNumber,
		Amount:        txn.TotalAmount,
		CustomerName:  txn.CustomerName,
		CustomerEmail: txn.CustomerEmail,
	}, receipt)
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	return &OrderResult{
		OrderID:  order.ID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  receipt,
		Notes:    req.Notes,
	}, nil
}

// MarkPaid is the single mutation point for payment status. Both the
// checkout widget callback and the hosted-link return redirect funnel
// through it. Already-paid transactions are a no-op success since
// duplicate callbacks are expected.
func (s *PaymentService) MarkPaid(ctx context.Context, transactionID, externalPaymentID string) (*models.Transaction, error) {
	id, err := uuid.Parse(strings.TrimSpace(transactionID))
	if err != nil {
		return nil, &NotFoundError{TransactionID: transactionID}
	}

	txn, err := s.txns.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &NotFoundError{TransactionID: transactionID}
		}
		return nil, err
	}

	if txn.IsPaid() {
		return txn, nil
	}

	if err := s.txns.SetPaid(ctx, id, externalPaymentID); err != nil {
		return nil, &ReconciliationSyncError{
			TransactionID: transactionID,
			PaymentID:     externalPaymentID,
			Err:           err,
		}
	}

	txn.PaymentStatus = models.PaymentStatusPaid
	txn.PaymentID = externalPaymentID

	if s.telegram != nil {
		notification := PaymentNotification{
			InvoiceNumber: txn.InvoiceNumber,
			CustomerName:  txn.CustomerName,
			Amount:        txn.TotalAmount,
			Currency:      s.currency,
			PaymentID:     externalPaymentID,
		}
		go func() {
			if err := s.telegram.NotifyPaymentReceived(notification); err != nil {
				log.Printf("[Payments] Telegram payment notification failed: %v", err)
			}
		}()
	}

	return txn, nil
}

func receiptFor(txn *models.Transaction) string {
	if txn.InvoiceNumber != "" {
		return "receipt_" + txn.InvoiceNumber
	}
	return "receipt_" + uuid.NewString()[:8]
}
