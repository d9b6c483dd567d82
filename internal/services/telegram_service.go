package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// TelegramService sends payment notifications to an admin chat.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// PaymentNotification contains payment data for the admin notification.
type PaymentNotification struct {
	InvoiceNumber string
	CustomerName  string
	Amount        decimal.Decimal
	Currency      string
	PaymentID     string
}

// FormatAmount formats an amount with currency and thousand separators.
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = "INR"
	}

	str := amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(str, ".")

	var result strings.Builder
	length := len(intPart)
	for i, digit := range intPart {
		if i > 0 && digit != '-' && (length-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return result.String() + "." + fracPart + " " + currency
}

// NotifyPaymentReceived sends a payment-received notification to the admin chat.
func (s *TelegramService) NotifyPaymentReceived(p PaymentNotification) error {
	var sb strings.Builder
	sb.WriteString("<b>Payment received</b>\n\n")
	sb.WriteString(fmt.Sprintf("Invoice: <b>%s</b>\n", p.InvoiceNumber))
	if p.CustomerName != "" {
		sb.WriteString(fmt.Sprintf("Customer: %s\n", p.CustomerName))
	}
	sb.WriteString(fmt.Sprintf("Amount: %s\n", FormatAmount(p.Amount, p.Currency)))
	sb.WriteString(fmt.Sprintf("Payment ID: <code>%s</code>\n", p.PaymentID))

	return s.SendToAdmin(sb.String())
}
