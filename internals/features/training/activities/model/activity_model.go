// file: internals/features/training/activities/model/activity_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityModel maps the `activities` table. activity_points is the fixed
// point value every approved submission of this activity contributes; editing
// it (or the term) fans out through the recompute coordinator.
type ActivityModel struct {
	// =========================
	// Primary Key
	// =========================
	ActivityID uuid.UUID `json:"activity_id" gorm:"column:activity_id;type:uuid;primaryKey"`

	// =========================
	// Data
	// =========================
	ActivityName   string `json:"activity_name" gorm:"column:activity_name;type:varchar(160);not null"`
	ActivityPoints int    `json:"activity_points" gorm:"column:activity_points;not null"`
	ActivityTerm   string `json:"activity_term" gorm:"column:activity_term;type:varchar(30);not null;index:idx_activities_term"`

	// =========================
	// Timestamps
	// =========================
	ActivityCreatedAt time.Time `json:"activity_created_at" gorm:"column:activity_created_at;not null;autoCreateTime"`
	ActivityUpdatedAt time.Time `json:"activity_updated_at" gorm:"column:activity_updated_at;not null;autoUpdateTime"`
}

func (ActivityModel) TableName() string {
	return "activities"
}

func (m *ActivityModel) BeforeCreate(tx *gorm.DB) error {
	if m.ActivityID == uuid.Nil {
		m.ActivityID = uuid.New()
	}
	return nil
}
