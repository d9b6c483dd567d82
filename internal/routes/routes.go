package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/invopay/internal/config"
	"github.com/example/invopay/internal/handlers"
	"github.com/example/invopay/internal/middleware"
	"github.com/example/invopay/internal/payment"
	"github.com/example/invopay/internal/repo"
	"github.com/example/invopay/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	transactionRepo := repo.NewTransactionRepo(db)
	builder := payment.NewBuilder(cfg.Currency, cfg.AppBaseURL)
	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)
	paymentService := services.NewPaymentService(transactionRepo, builder, gateway, telegramService, cfg.Currency)

	authHandler := handlers.NewAuthHandler(db, cfg)
	paymentHandler := handlers.NewPaymentHandler(paymentService, gateway, cfg.Currency)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Payer-facing payment routes
	api.Post("/payment-link", paymentHandler.CreatePaymentLink)
	api.Post("/orders", paymentHandler.CreateOrder)
	api.Get("/config-check", paymentHandler.ConfigCheck)
	api.Get("/checkout/config", paymentHandler.CheckoutConfig)

	payments := api.Group("/payments")
	payments.Post("/confirm", paymentHandler.ConfirmPayment)
	payments.Get("/callback", paymentHandler.PaymentCallback)

	// Protected operator routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Post("/transactions", transactionHandler.Create)
	protected.Get("/transactions", transactionHandler.List)
	protected.Get("/transactions/:id", transactionHandler.Get)
}
