package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/invopay/internal/payment"
	"github.com/example/invopay/internal/services"
)

// respondError maps the workflow error taxonomy onto the JSON error
// envelope. Configuration details are logged server-side only.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr *payment.ValidationError
		configErr     *payment.ConfigurationError
		authErr       *payment.AuthenticationError
		gatewayErr    *payment.GatewayError
		notFoundErr   *services.NotFoundError
		paidErr       *services.AlreadyPaidError
		syncErr       *services.ReconciliationSyncError
	)

	switch {
	case errors.As(err, &validationErr):
		return writeError(c, fiber.StatusBadRequest, "Invalid "+validationErr.Field, validationErr.Message)
	case errors.As(err, &paidErr):
		return writeError(c, fiber.StatusConflict, "Transaction already paid", paidErr.Error())
	case errors.As(err, &notFoundErr):
		return writeError(c, fiber.StatusNotFound, "Transaction not found", notFoundErr.Error())
	case errors.As(err, &authErr):
		return writeError(c, fiber.StatusUnauthorized, "Payment gateway authentication failed", authErr.Message)
	case errors.As(err, &gatewayErr):
		status := gatewayErr.Status
		if status < 400 || status >= 500 {
			status = fiber.StatusBadRequest
		}
		return writeError(c, status, "Payment gateway error", gatewayErr.Message)
	case errors.As(err, &configErr):
		log.Printf("[Payments] configuration error: %v", configErr)
		return writeError(c, fiber.StatusInternalServerError, "Payment gateway configuration is incomplete", "")
	case errors.As(err, &syncErr):
		log.Printf("[Payments] reconciliation sync failed: %v", syncErr)
		return writeError(c, fiber.StatusBadGateway,
			"Payment succeeded, but we couldn't update the invoice status. Please contact support.",
			"payment id "+syncErr.PaymentID)
	default:
		return err
	}
}

func writeError(c *fiber.Ctx, status int, message, details string) error {
	body := fiber.Map{
		"success": false,
		"error":   message,
	}
	if details != "" {
		body["details"] = details
	}
	return c.Status(status).JSON(body)
}
