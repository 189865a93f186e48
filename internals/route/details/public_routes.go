package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invoiceController "nhatro_backend/internals/features/finance/invoices/controller"
	authController "nhatro_backend/internals/features/users/auth/controller"
	"nhatro_backend/internals/middlewares"
)

func PublicRoutes(r fiber.Router, db *gorm.DB) {
	auth := authController.NewAuthController(db)
	a := r.Group("/auth")
	a.Post("/register", middlewares.RegisterRateLimiter(), auth.Register)
	a.Post("/login", middlewares.LoginRateLimiter(), auth.Login)
	a.Post("/login-google", middlewares.LoginRateLimiter(), auth.LoginGoogle)
	a.Post("/refresh-token", auth.RefreshToken)

	inv := invoiceController.NewInvoiceController(db)
	r.Post("/payments/midtrans/webhook", inv.MidtransWebhook)
}
