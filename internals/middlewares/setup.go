package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"nhatro_backend/internals/middlewares/logger"
)

// SetupMiddlewares gắn stack middleware dùng chung.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
