package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/invopay/internal/models"
	"github.com/example/invopay/internal/repo"
	"github.com/example/invopay/internal/utils"
)

// TransactionHandler manages invoice transaction endpoints.
type TransactionHandler struct {
	txns repo.TransactionRepo
}

// NewTransactionHandler constructs a TransactionHandler.
func NewTransactionHandler(txns repo.TransactionRepo) *TransactionHandler {
	return &TransactionHandler{txns: txns}
}

type transactionItemRequest struct {
	ServiceID          string          `json:"service_id"`
	ServiceName        string          `json:"service_name"`
	ServiceDescription string          `json:"service_description"`
	HSNCode            string          `json:"hsn_code"`
	Price              decimal.Decimal `json:"price"`
	GSTRate            decimal.Decimal `json:"gst_rate"`
	Quantity           int             `json:"quantity"`
}

type createTransactionRequest struct {
	IsTestTransaction bool                     `json:"isTestTransaction"`
	CustomerName      string                   `json:"customer_name"`
	CustomerEmail     string                   `json:"customer_email"`
	CustomerPhone     string                   `json:"customer_phone"`
	CustomerGSTIN     string                   `json:"customer_gstin"`
	CustomerAddress   string                   `json:"customer_address"`
	InvoiceNumber     string                   `json:"invoice_number"`
	InvoiceDate       string                   `json:"invoice_date"`
	Subtotal          decimal.Decimal          `json:"subtotal"`
	DiscountType      string                   `json:"discount_type"`
	DiscountValue     decimal.Decimal          `json:"discount_value"`
	DiscountAmount    decimal.Decimal          `json:"discount_amount"`
	TaxableAmount     decimal.Decimal          `json:"taxable_amount"`
	CGSTAmount        decimal.Decimal          `json:"cgst_amount"`
	SGSTAmount        decimal.Decimal          `json:"sgst_amount"`
	TotalAmount       decimal.Decimal          `json:"total_amount"`
	Items             []transactionItemRequest `json:"items"`
}

// Create stores a new invoice transaction with status pending. A request
// with isTestTransaction seeds a canonical test invoice.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Invalid request body", "")
	}

	if req.IsTestTransaction {
		req = testTransactionRequest()
	}

	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
		return writeError(c, fiber.StatusBadRequest, "Missing required fields: customer_name, customer_email", "")
	}

	if req.TotalAmount.IsNegative() {
		return writeError(c, fiber.StatusBadRequest, "Invalid total_amount", "Total amount cannot be negative")
	}

	if req.InvoiceNumber == "" {
		req.InvoiceNumber = utils.GenerateInvoiceNumber()
	}
	if req.InvoiceDate == "" {
		req.InvoiceDate = time.Now().Format("2006-01-02")
	}

	txn := models.Transaction{
		InvoiceNumber:   req.InvoiceNumber,
		InvoiceDate:     req.InvoiceDate,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerGSTIN:   req.CustomerGSTIN,
		CustomerAddress: req.CustomerAddress,
		Subtotal:        req.Subtotal,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		DiscountAmount:  req.DiscountAmount,
		TaxableAmount:   req.TaxableAmount,
		CGSTAmount:      req.CGSTAmount,
		SGSTAmount:      req.SGSTAmount,
		TotalAmount:     req.TotalAmount,
		PaymentStatus:   models.PaymentStatusPending,
	}

	for _, item := range req.Items {
		txn.Items = append(txn.Items, models.TransactionItem{
			ServiceID:          item.ServiceID,
			ServiceName:        item.ServiceName,
			ServiceDescription: item.ServiceDescription,
			HSNCode:            item.HSNCode,
			Price:              item.Price,
			GSTRate:            item.GSTRate,
			Quantity:           item.Quantity,
		})
	}

	if err := h.txns.Create(c.UserContext(), &txn); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"transaction": txn,
	})
}

// List returns transactions, newest first, with pagination and an optional
// payment_status filter.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	status := strings.TrimSpace(c.Query("payment_status"))
	if status != "" && status != models.PaymentStatusPending && status != models.PaymentStatusPaid {
		return writeError(c, fiber.StatusBadRequest, "Invalid payment_status", "")
	}

	txns, total, err := h.txns.List(c.UserContext(), status, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    txns,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// Get fetches a single transaction. A missing id is a 404, never
// substituted with placeholder data.
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Invalid transaction id", "")
	}

	txn, err := h.txns.FindByID(c.UserContext(), id)
	if err != nil {
		if err == repo.ErrNotFound {
			return writeError(c, fiber.StatusNotFound, "Transaction not found", "")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"transaction": txn,
	})
}

// testTransactionRequest is the canonical seeded invoice: one 1000.00
// service line with 18% GST for a 1180.00 total.
func testTransactionRequest() createTransactionRequest {
	return createTransactionRequest{
		CustomerName:    "Test Customer",
		CustomerEmail:   "test@example.com",
		CustomerGSTIN:   "TEST1234567890",
		CustomerAddress: "123 Test Street, Test City",
		InvoiceNumber:   utils.GenerateInvoiceNumber(),
		InvoiceDate:     time.Now().Format("2006-01-02"),
		Subtotal:        decimal.NewFromInt(1000),
		DiscountType:    "fixed",
		DiscountValue:   decimal.Zero,
		DiscountAmount:  decimal.Zero,
		TaxableAmount:   decimal.NewFromInt(1000),
		CGSTAmount:      decimal.NewFromInt(90),
		SGSTAmount:      decimal.NewFromInt(90),
		TotalAmount:     decimal.NewFromInt(1180),
		Items: []transactionItemRequest{
			{
				ServiceID:          "00000000-0000-0000-0000-000000000001",
				ServiceName:        "Test Service",
				ServiceDescription: "Test Service Description",
				HSNCode:            "9983",
				Price:              decimal.NewFromInt(1000),
				GSTRate:            decimal.NewFromInt(18),
				Quantity:           1,
			},
		},
	}
}
