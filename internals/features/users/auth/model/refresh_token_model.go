package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenModel lưu refresh token đã phát (dạng băm SHA-256).
type RefreshTokenModel struct {
	RefreshTokenID        uuid.UUID `gorm:"type:uuid;primaryKey;column:refresh_token_id"`
	RefreshTokenUserID    uuid.UUID `gorm:"type:uuid;not null;index;column:refresh_token_user_id"`
	RefreshTokenHash      string    `gorm:"type:varchar(64);uniqueIndex;not null;column:refresh_token_hash"`
	RefreshTokenExpiresAt time.Time `gorm:"not null;column:refresh_token_expires_at"`

	RefreshTokenCreatedAt time.Time      `gorm:"column:refresh_token_created_at;autoCreateTime"`
	RefreshTokenDeletedAt gorm.DeletedAt `gorm:"column:refresh_token_deleted_at;index"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }

func (r *RefreshTokenModel) BeforeCreate(tx *gorm.DB) error {
	if r.RefreshTokenID == uuid.Nil {
		r.RefreshTokenID = uuid.New()
	}
	return nil
}
