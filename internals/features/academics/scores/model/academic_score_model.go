// file: internals/features/academics/scores/model/academic_score_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicScoreModel maps the `academic_scores` table. One row per
// (student, course); the course average is derived on read and never stored.
type AcademicScoreModel struct {
	// =========================
	// Primary Key
	// =========================
	AcademicScoreID uuid.UUID `json:"academic_score_id" gorm:"column:academic_score_id;type:uuid;primaryKey"`

	// =========================
	// FKs (natural key: student + course)
	// =========================
	AcademicScoreStudentID uuid.UUID `json:"academic_score_student_id" gorm:"column:academic_score_student_id;type:uuid;not null;uniqueIndex:uq_academic_scores_student_course,priority:1;index:idx_academic_scores_student"`
	AcademicScoreCourseID  uuid.UUID `json:"academic_score_course_id" gorm:"column:academic_score_course_id;type:uuid;not null;uniqueIndex:uq_academic_scores_student_course,priority:2"`

	// =========================
	// Scores (0–10)
	// =========================
	AcademicScoreProcess float64 `json:"academic_score_process" gorm:"column:academic_score_process;type:numeric(4,2);not null"`
	AcademicScoreExam    float64 `json:"academic_score_exam" gorm:"column:academic_score_exam;type:numeric(4,2);not null"`

	// =========================
	// Timestamps
	// =========================
	AcademicScoreCreatedAt time.Time `json:"academic_score_created_at" gorm:"column:academic_score_created_at;not null;autoCreateTime"`
	AcademicScoreUpdatedAt time.Time `json:"academic_score_updated_at" gorm:"column:academic_score_updated_at;not null;autoUpdateTime"`
}

func (AcademicScoreModel) TableName() string {
	return "academic_scores"
}

func (m *AcademicScoreModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicScoreID == uuid.Nil {
		m.AcademicScoreID = uuid.New()
	}
	return nil
}
