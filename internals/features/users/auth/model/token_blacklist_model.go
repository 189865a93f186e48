package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenBlacklistModel: access token bị thu hồi khi logout, giữ đến khi hết hạn.
type TokenBlacklistModel struct {
	TokenBlacklistID        uuid.UUID `gorm:"type:uuid;primaryKey;column:token_blacklist_id"`
	TokenBlacklistToken     string    `gorm:"type:text;not null;index;column:token_blacklist_token"`
	TokenBlacklistExpiredAt time.Time `gorm:"not null;column:token_blacklist_expired_at"`

	TokenBlacklistCreatedAt time.Time      `gorm:"column:token_blacklist_created_at;autoCreateTime"`
	TokenBlacklistDeletedAt gorm.DeletedAt `gorm:"column:token_blacklist_deleted_at;index"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }

func (t *TokenBlacklistModel) BeforeCreate(tx *gorm.DB) error {
	if t.TokenBlacklistID == uuid.Nil {
		t.TokenBlacklistID = uuid.New()
	}
	return nil
}
