package dto

import (
	"time"

	"github.com/google/uuid"

	"nhatro_backend/internals/features/users/user/model"
)

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	UserFullName  string    `json:"user_full_name"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

func ToUserResponse(m model.UserModel) UserResponse {
	return UserResponse{
		UserID:        m.UserID,
		UserEmail:     m.UserEmail,
		UserFullName:  m.UserFullName,
		UserCreatedAt: m.UserCreatedAt,
	}
}

type UpdateProfileDTO struct {
	UserFullName string `json:"user_full_name" validate:"required,min=2,max=100"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" validate:"omitempty,min=6"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}
