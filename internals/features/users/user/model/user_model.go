package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel đại diện bảng users (chủ trọ đăng nhập app).
type UserModel struct {
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;column:user_id"`
	UserEmail     string    `json:"user_email" gorm:"type:varchar(255);uniqueIndex;not null;column:user_email"`
	UserPassword  string    `json:"-" gorm:"type:text;column:user_password"` // bcrypt; rỗng nếu chỉ đăng nhập Google
	UserFullName  string    `json:"user_full_name" gorm:"type:varchar(100);not null;column:user_full_name"`
	UserGoogleSub *string   `json:"-" gorm:"type:varchar(64);index;column:user_google_sub"`

	UserCreatedAt time.Time      `json:"user_created_at" gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time      `json:"user_updated_at" gorm:"column:user_updated_at;autoUpdateTime"`
	UserDeletedAt gorm.DeletedAt `json:"-" gorm:"column:user_deleted_at;index"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
