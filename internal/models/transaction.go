package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment status values for Transaction. The transition is monotonic:
// once a transaction is paid it never returns to pending.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Transaction stores a customer invoice and its payment lifecycle.
type Transaction struct {
	BaseModel
	InvoiceNumber   string            `gorm:"uniqueIndex" json:"invoice_number"`
	InvoiceDate     string            `json:"invoice_date"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerGSTIN   string            `gorm:"column:customer_gstin" json:"customer_gstin"`
	CustomerAddress string            `json:"customer_address"`
	Subtotal        decimal.Decimal   `gorm:"type:numeric(12,2)" json:"subtotal"`
	DiscountType    string            `json:"discount_type"`
	DiscountValue   decimal.Decimal   `gorm:"type:numeric(12,2)" json:"discount_value"`
	DiscountAmount  decimal.Decimal   `gorm:"type:numeric(12,2)" json:"discount_amount"`
	TaxableAmount   decimal.Decimal   `gorm:"type:numeric(12,2)" json:"taxable_amount"`
	CGSTAmount      decimal.Decimal   `gorm:"column:cgst_amount;type:numeric(12,2)" json:"cgst_amount"`
	SGSTAmount      decimal.Decimal   `gorm:"column:sgst_amount;type:numeric(12,2)" json:"sgst_amount"`
	TotalAmount     decimal.Decimal   `gorm:"type:numeric(12,2)" json:"total_amount"`
	PaymentStatus   string            `gorm:"index;default:pending" json:"payment_status"`
	PaymentID       string            `json:"payment_id"`
	Items           []TransactionItem `json:"items,omitempty"`
}

// IsPaid reports whether the transaction has completed payment.
func (t *Transaction) IsPaid() bool {
	return t.PaymentStatus == PaymentStatusPaid
}

// TransactionItem is a single invoiced service line.
type TransactionItem struct {
	BaseModel
	TransactionID      uuid.UUID       `gorm:"type:uuid;index" json:"transaction_id"`
	ServiceID          string          `json:"service_id"`
	ServiceName        string          `json:"service_name"`
	ServiceDescription string          `json:"service_description"`
	HSNCode            string          `gorm:"column:hsn_code" json:"hsn_code"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	GSTRate            decimal.Decimal `gorm:"column:gst_rate;type:numeric(5,2)" json:"gst_rate"`
	Quantity           int             `json:"quantity"`
}
