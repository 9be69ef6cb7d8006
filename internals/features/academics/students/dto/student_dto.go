// file: internals/features/academics/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "quanlysinhvien_backend/internals/features/academics/students/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateStudentRequest struct {
	StudentCode string  `json:"student_code" validate:"required,max=20"`
	StudentName string  `json:"student_name" validate:"required,max=120"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender" validate:"omitempty,max=10"`
	Class       *string `json:"class" validate:"omitempty,max=30"`
}

type UpdateStudentRequest struct {
	StudentName *string `json:"student_name" validate:"omitempty,max=120"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender" validate:"omitempty,max=10"`
	Class       *string `json:"class" validate:"omitempty,max=30"`
}

type BulkUpsertStudentRequest struct {
	Rows []CreateStudentRequest `json:"rows" validate:"required,min=1,dive"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type StudentResponse struct {
	StudentID   uuid.UUID  `json:"student_id"`
	StudentCode string     `json:"student_code"`
	StudentName string     `json:"student_name"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	Class       *string    `json:"class,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToResponse(m *model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:   m.StudentID,
		StudentCode: m.StudentCode,
		StudentName: m.StudentName,
		BirthDate:   m.StudentBirthDate,
		Gender:      m.StudentGender,
		Class:       m.StudentClass,
		CreatedAt:   m.StudentCreatedAt,
	}
}

type BulkRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
