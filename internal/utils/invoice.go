package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateInvoiceNumber returns a date-based invoice number such as
// INV-20260115-3F2A. Unique enough for display; the database enforces
// uniqueness on insert.
func GenerateInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), suffix)
}
