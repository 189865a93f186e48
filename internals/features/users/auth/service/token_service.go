package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/configs"
	authModel "nhatro_backend/internals/features/users/auth/model"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func signAccessToken(userID uuid.UUID, email string) (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET chưa được set")
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":    userID.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTTLDefault).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func signRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET chưa được set")
	}
	now := time.Now().UTC()
	exp := now.Add(refreshTTLDefault)
	claims := jwt.MapClaims{
		"id":  userID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return tok, exp, err
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// storeRefreshToken lưu bản băm, token thô chỉ nằm phía client.
func storeRefreshToken(db *gorm.DB, userID uuid.UUID, raw string, exp time.Time) error {
	return db.Create(&authModel.RefreshTokenModel{
		RefreshTokenUserID:    userID,
		RefreshTokenHash:      hashToken(raw),
		RefreshTokenExpiresAt: exp,
	}).Error
}

func parseRefreshToken(raw string) (uuid.UUID, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Phiên đăng nhập đã hết hạn")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "refresh" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	idStr, _ := claims["id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	return id, nil
}

// IsBlacklisted dùng cho middleware AuthJWT.
func IsBlacklisted(db *gorm.DB) func(rawToken string) (bool, error) {
	return func(rawToken string) (bool, error) {
		var n int64
		err := db.Model(&authModel.TokenBlacklistModel{}).
			Where("token_blacklist_token = ? AND token_blacklist_expired_at > ?", rawToken, time.Now()).
			Count(&n).Error
		return n > 0, err
	}
}
