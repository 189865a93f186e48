package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nhatro_backend/internals/configs"
	authService "nhatro_backend/internals/features/users/auth/service"
	authMiddleware "nhatro_backend/internals/middlewares/auth"
	routeDetails "nhatro_backend/internals/route/details"
)

// SetupRoutes gắn toàn bộ route của hệ thống:
//   /api/public: không cần đăng nhập (auth, webhook thanh toán)
//   /api/u     : tài khoản của chính người dùng
//   /api/a     : nghiệp vụ quản lý trọ, yêu cầu JWT
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	public := api.Group("/public")
	routeDetails.PublicRoutes(public, db)

	guard := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		BlacklistChecker:    authService.IsBlacklisted(db),
		AllowCookieFallback: true,
	})

	user := api.Group("/u", guard)
	routeDetails.UserRoutes(user, db)

	admin := api.Group("/a", guard)
	routeDetails.RentalRoutes(admin, db)
	routeDetails.FinanceRoutes(admin, db)
}
