// file: internals/features/training/summaries/model/training_score_summary_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrainingScoreSummaryModel maps the `training_score_summaries` table: one
// derived row per (student, term).
//
// summary_total is always summary_base_score + summary_activity_bonus −
// summary_deduction at the instant of write. Only the aggregation engine
// writes summary_activity_bonus and summary_total; base score and deduction
// are the admin-editable inputs.
type TrainingScoreSummaryModel struct {
	// =========================
	// Primary Key
	// =========================
	SummaryID uuid.UUID `json:"summary_id" gorm:"column:summary_id;type:uuid;primaryKey"`

	// =========================
	// Key (one row per student per term)
	// =========================
	SummaryStudentID uuid.UUID `json:"summary_student_id" gorm:"column:summary_student_id;type:uuid;not null;uniqueIndex:uq_summaries_student_term,priority:1;index:idx_summaries_student"`
	SummaryTerm      string    `json:"summary_term" gorm:"column:summary_term;type:varchar(30);not null;uniqueIndex:uq_summaries_student_term,priority:2;index:idx_summaries_term"`

	// =========================
	// Components
	// =========================
	SummaryBaseScore     int `json:"summary_base_score" gorm:"column:summary_base_score;not null;default:0"`
	SummaryActivityBonus int `json:"summary_activity_bonus" gorm:"column:summary_activity_bonus;not null;default:0"`
	SummaryDeduction     int `json:"summary_deduction" gorm:"column:summary_deduction;not null;default:0"`
	SummaryTotal         int `json:"summary_total" gorm:"column:summary_total;not null;default:0"`

	// =========================
	// Timestamps
	// =========================
	SummaryCreatedAt time.Time `json:"summary_created_at" gorm:"column:summary_created_at;not null;autoCreateTime"`
	SummaryUpdatedAt time.Time `json:"summary_updated_at" gorm:"column:summary_updated_at;not null;autoUpdateTime"`
}

func (TrainingScoreSummaryModel) TableName() string {
	return "training_score_summaries"
}

func (m *TrainingScoreSummaryModel) BeforeCreate(tx *gorm.DB) error {
	if m.SummaryID == uuid.Nil {
		m.SummaryID = uuid.New()
	}
	return nil
}
