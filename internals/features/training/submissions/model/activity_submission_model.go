// file: internals/features/training/submissions/model/activity_submission_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quanlysinhvien_backend/internals/constants"
)

// ActivitySubmissionModel maps the `activity_submissions` table. Status is
// pending at creation; the approval transition is one-way.
type ActivitySubmissionModel struct {
	// =========================
	// Primary Key
	// =========================
	SubmissionID uuid.UUID `json:"submission_id" gorm:"column:submission_id;type:uuid;primaryKey"`

	// =========================
	// FKs (one submission per student per activity)
	// =========================
	SubmissionStudentID  uuid.UUID `json:"submission_student_id" gorm:"column:submission_student_id;type:uuid;not null;uniqueIndex:uq_submissions_student_activity,priority:1;index:idx_submissions_student"`
	SubmissionActivityID uuid.UUID `json:"submission_activity_id" gorm:"column:submission_activity_id;type:uuid;not null;uniqueIndex:uq_submissions_student_activity,priority:2;index:idx_submissions_activity"`

	// =========================
	// Data
	// =========================
	SubmissionEvidenceURL string `json:"submission_evidence_url" gorm:"column:submission_evidence_url;type:text;not null"`
	SubmissionStatus      string `json:"submission_status" gorm:"column:submission_status;type:varchar(10);not null;default:pending;index:idx_submissions_status"`

	// =========================
	// Timestamps
	// =========================
	SubmissionCreatedAt time.Time `json:"submission_created_at" gorm:"column:submission_created_at;not null;autoCreateTime"`
	SubmissionUpdatedAt time.Time `json:"submission_updated_at" gorm:"column:submission_updated_at;not null;autoUpdateTime"`
}

func (ActivitySubmissionModel) TableName() string {
	return "activity_submissions"
}

func (m *ActivitySubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	if m.SubmissionStatus == "" {
		m.SubmissionStatus = constants.SubmissionPending
	}
	return nil
}

func (m *ActivitySubmissionModel) IsApproved() bool {
	return m.SubmissionStatus == constants.SubmissionApproved
}
