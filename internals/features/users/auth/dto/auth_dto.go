// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "quanlysinhvien_backend/internals/features/users/auth/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=60"`
	Password string `json:"password" validate:"required,min=6"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type UserResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	StudentCode *string   `json:"student_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToUserResponse(m *model.UserModel) UserResponse {
	return UserResponse{
		UserID:      m.UserID,
		Username:    m.UserUsername,
		Role:        m.UserRole,
		StudentCode: m.UserStudentCode,
		CreatedAt:   m.UserCreatedAt,
	}
}
