package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "nhatro_backend/internals/features/users/auth/controller"
)

func UserRoutes(r fiber.Router, db *gorm.DB) {
	auth := authController.NewAuthController(db)
	r.Get("/me", auth.Me)
	r.Patch("/profile", auth.UpdateProfile)
	r.Post("/change-password", auth.ChangePassword)
	r.Post("/logout", auth.Logout)
}
