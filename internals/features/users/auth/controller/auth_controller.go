package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/users/auth/service"
	userDTO "nhatro_backend/internals/features/users/user/dto"
	userModel "nhatro_backend/internals/features/users/user/model"
	helper "nhatro_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return service.LoginGoogle(ac.DB, c)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.UserUUID(c)
	if err != nil {
		return err
	}
	var u userModel.UserModel
	if err := ac.DB.First(&u, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy tài khoản")
	}
	return helper.JsonOK(c, "", userDTO.ToUserResponse(u))
}

func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.UserUUID(c)
	if err != nil {
		return err
	}
	var in userDTO.UpdateProfileDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	if err := ac.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_full_name", in.UserFullName).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonUpdated(c, "Đã cập nhật hồ sơ", fiber.Map{"user_full_name": in.UserFullName})
}
