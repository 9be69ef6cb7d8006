// file: internals/features/users/auth/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quanlysinhvien_backend/internals/constants"
)

// UserModel maps the `users` table. A viewer account is linked to a student
// row through user_student_code; admin accounts carry no code.
type UserModel struct {
	UserID           uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`
	UserUsername     string    `json:"user_username" gorm:"column:user_username;type:varchar(60);not null;uniqueIndex:uq_users_username"`
	UserPasswordHash string    `json:"-" gorm:"column:user_password_hash;type:varchar(200);not null"`
	UserRole         string    `json:"user_role" gorm:"column:user_role;type:varchar(10);not null;default:viewer"`
	UserStudentCode  *string   `json:"user_student_code" gorm:"column:user_student_code;type:varchar(20);index:idx_users_student_code"`

	UserCreatedAt time.Time `json:"user_created_at" gorm:"column:user_created_at;not null;autoCreateTime"`
	UserUpdatedAt time.Time `json:"user_updated_at" gorm:"column:user_updated_at;not null;autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	if m.UserRole == "" {
		m.UserRole = constants.RoleViewer
	}
	return nil
}

func (m *UserModel) IsAdmin() bool {
	return m.UserRole == constants.RoleAdmin
}
