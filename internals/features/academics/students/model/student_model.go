// file: internals/features/academics/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentModel maps the `students` table. student_code is the natural key
// used in URLs and import files; student_id is the surrogate FK target.
type StudentModel struct {
	// =========================
	// Primary Key
	// =========================
	StudentID uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;primaryKey"`

	// =========================
	// Identity
	// =========================
	StudentCode string `json:"student_code" gorm:"column:student_code;type:varchar(20);not null;uniqueIndex:uq_students_code"`
	StudentName string `json:"student_name" gorm:"column:student_name;type:varchar(120);not null"`

	// =========================
	// Demographics
	// =========================
	StudentBirthDate *time.Time `json:"student_birth_date" gorm:"column:student_birth_date;type:date"`
	StudentGender    *string    `json:"student_gender" gorm:"column:student_gender;type:varchar(10)"`
	StudentClass     *string    `json:"student_class" gorm:"column:student_class;type:varchar(30)"`

	// =========================
	// Timestamps
	// =========================
	StudentCreatedAt time.Time `json:"student_created_at" gorm:"column:student_created_at;not null;autoCreateTime"`
	StudentUpdatedAt time.Time `json:"student_updated_at" gorm:"column:student_updated_at;not null;autoUpdateTime"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
