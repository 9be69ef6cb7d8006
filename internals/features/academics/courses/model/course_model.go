// file: internals/features/academics/courses/model/course_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseModel maps the `courses` table. The two weighting coefficients must
// sum to 1.0; that is enforced at create/update time in the controller, not
// here.
type CourseModel struct {
	// =========================
	// Primary Key
	// =========================
	CourseID uuid.UUID `json:"course_id" gorm:"column:course_id;type:uuid;primaryKey"`

	// =========================
	// Identity
	// =========================
	CourseCode string `json:"course_code" gorm:"column:course_code;type:varchar(20);not null;uniqueIndex:uq_courses_code"`
	CourseName string `json:"course_name" gorm:"column:course_name;type:varchar(120);not null"`

	// =========================
	// Data
	// =========================
	CourseCredits       int     `json:"course_credits" gorm:"column:course_credits;not null"`
	CourseTerm          string  `json:"course_term" gorm:"column:course_term;type:varchar(30);not null;index:idx_courses_term"`
	CourseProcessWeight float64 `json:"course_process_weight" gorm:"column:course_process_weight;type:numeric(3,2);not null"`
	CourseExamWeight    float64 `json:"course_exam_weight" gorm:"column:course_exam_weight;type:numeric(3,2);not null"`

	// =========================
	// Timestamps
	// =========================
	CourseCreatedAt time.Time `json:"course_created_at" gorm:"column:course_created_at;not null;autoCreateTime"`
	CourseUpdatedAt time.Time `json:"course_updated_at" gorm:"column:course_updated_at;not null;autoUpdateTime"`
}

func (CourseModel) TableName() string {
	return "courses"
}

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}
