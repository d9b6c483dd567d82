package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInvoiceNumber(t *testing.T) {
	number := GenerateInvoiceNumber()

	assert.Regexp(t, `^INV-\d{8}-[0-9A-F]{4}$`, number)
	assert.Contains(t, number, time.Now().Format("20060102"))
}

func TestGenerateInvoiceNumberVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateInvoiceNumber()] = true
	}
	assert.Greater(t, len(seen), 1)
}
