package service

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nhatro_backend/internals/configs"
	authModel "nhatro_backend/internals/features/users/auth/model"
	userDTO "nhatro_backend/internals/features/users/user/dto"
	userModel "nhatro_backend/internals/features/users/user/model"
	helper "nhatro_backend/internals/helpers"
)

/* ==========================
   DTO
========================== */

type RegisterDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginDTO struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenPair struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         userDTO.UserResponse `json:"user"`
}

/* ==========================
   Operations
========================== */

// Register tạo tài khoản mới bằng email + mật khẩu.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var in RegisterDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existing userModel.UserModel
	if err := db.First(&existing, "user_email = ?", email).Error; err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email đã được đăng ký")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	u := userModel.UserModel{
		UserEmail:    email,
		UserPassword: string(hash),
		UserFullName: strings.TrimSpace(in.FullName),
	}
	if err := db.Create(&u).Error; err != nil {
		log.Printf("[AUTH] register err: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	return issueTokens(db, c, u, fiber.StatusCreated, "Đăng ký thành công")
}

// Login xác thực email + mật khẩu.
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var in LoginDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var u userModel.UserModel
	if err := db.First(&u, "user_email = ?", email).Error; err != nil {
		// thông điệp giống hệt trường hợp sai mật khẩu, tránh dò email
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sai tài khoản hoặc mật khẩu")
	}
	if u.UserPassword == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Tài khoản này đăng nhập bằng Google")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(in.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sai tài khoản hoặc mật khẩu")
	}

	return issueTokens(db, c, u, fiber.StatusOK, "Đăng nhập thành công")
}

// LoginGoogle xác thực bằng Google ID token; tự tạo user lần đầu.
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var in GoogleLoginDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(in.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token không hợp lệ")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(in.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token không hợp lệ")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	sub := claimSet.Sub

	var u userModel.UserModel
	err = db.First(&u, "user_google_sub = ? OR user_email = ?", sub, email).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = userModel.UserModel{
			UserEmail:     email,
			UserFullName:  strings.TrimSpace(claimSet.Name),
			UserGoogleSub: &sub,
		}
		if u.UserFullName == "" {
			u.UserFullName = email
		}
		if err := db.Create(&u).Error; err != nil {
			log.Printf("[AUTH] google register err: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	default:
		if u.UserGoogleSub == nil {
			_ = db.Model(&u).Update("user_google_sub", sub).Error
		}
	}

	return issueTokens(db, c, u, fiber.StatusOK, "Đăng nhập thành công")
}

// RefreshToken cấp lại access token từ refresh token còn hạn.
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var in RefreshDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	userID, err := parseRefreshToken(in.RefreshToken)
	if err != nil {
		return err
	}

	var stored authModel.RefreshTokenModel
	if err := db.First(&stored,
		"refresh_token_hash = ? AND refresh_token_expires_at > ?",
		hashToken(in.RefreshToken), time.Now(),
	).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Phiên đăng nhập đã hết hạn")
	}

	var u userModel.UserModel
	if err := db.First(&u, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Phiên đăng nhập đã hết hạn")
	}

	// rotate: thu hồi refresh token cũ
	if err := db.Delete(&stored).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return issueTokens(db, c, u, fiber.StatusOK, "ok")
}

// Logout đưa access token hiện tại vào blacklist và xoá refresh token của user.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw, _ := c.Locals("raw_token").(string)
	claims, _ := c.Locals("jwt_claims").(jwt.MapClaims)

	exp := time.Now().Add(accessTTLDefault)
	if claims != nil {
		if v, ok := claims["exp"].(float64); ok {
			exp = time.Unix(int64(v), 0)
		}
	}
	if raw != "" {
		if err := db.Create(&authModel.TokenBlacklistModel{
			TokenBlacklistToken:     raw,
			TokenBlacklistExpiredAt: exp,
		}).Error; err != nil {
			log.Printf("[AUTH] blacklist err: %v", err)
		}
	}
	if userID, err := helper.UserUUID(c); err == nil {
		_ = db.Where("refresh_token_user_id = ?", userID).
			Delete(&authModel.RefreshTokenModel{}).Error
	}
	return helper.JsonOK(c, "Đã đăng xuất", nil)
}

// ChangePassword đổi mật khẩu; user Google đặt mật khẩu lần đầu không cần mật khẩu cũ.
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.UserUUID(c)
	if err != nil {
		return err
	}

	var in userDTO.ChangePasswordDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var u userModel.UserModel
	if err := db.First(&u, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy tài khoản")
	}
	if u.UserPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(in.OldPassword)); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Mật khẩu cũ không đúng")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if err := db.Model(&u).Update("user_password", string(hash)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonUpdated(c, "Đã đổi mật khẩu", nil)
}

func issueTokens(db *gorm.DB, c *fiber.Ctx, u userModel.UserModel, status int, msg string) error {
	access, err := signAccessToken(u.UserID, u.UserEmail)
	if err != nil {
		return err
	}
	refresh, exp, err := signRefreshToken(u.UserID)
	if err != nil {
		return err
	}
	if err := storeRefreshToken(db, u.UserID, refresh, exp); err != nil {
		log.Printf("[AUTH] store refresh err: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	body := tokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         userDTO.ToUserResponse(u),
	}
	if status == fiber.StatusCreated {
		return helper.JsonCreated(c, msg, body)
	}
	return helper.JsonOK(c, msg, body)
}
