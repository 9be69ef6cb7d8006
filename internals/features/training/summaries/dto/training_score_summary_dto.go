// file: internals/features/training/summaries/dto/training_score_summary_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "quanlysinhvien_backend/internals/features/training/summaries/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Admin upsert of the two manual components. The activity bonus and total
// are refreshed by the aggregation engine, never taken from the client.
type UpsertTrainingScoreSummaryRequest struct {
	StudentCode string `json:"student_code" validate:"required,max=20"`
	Term        string `json:"term" validate:"required,max=30"`
	BaseScore   int    `json:"base_score" validate:"min=0,max=100"`
	Deduction   int    `json:"deduction" validate:"min=0,max=100"`
}

type BulkUpsertTrainingScoreSummaryRequest struct {
	Rows []UpsertTrainingScoreSummaryRequest `json:"rows" validate:"required,min=1,dive"`
}

// Filter / List (query)
type FilterTrainingScoreSummaryRequest struct {
	Term *string `query:"term" validate:"omitempty,max=30"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type TrainingScoreSummaryResponse struct {
	SummaryID            uuid.UUID `json:"summary_id"`
	SummaryStudentID     uuid.UUID `json:"summary_student_id"`
	StudentCode          string    `json:"student_code,omitempty"`
	StudentName          string    `json:"student_name,omitempty"`
	SummaryTerm          string    `json:"summary_term"`
	SummaryBaseScore     int       `json:"summary_base_score"`
	SummaryActivityBonus int       `json:"summary_activity_bonus"`
	SummaryDeduction     int       `json:"summary_deduction"`
	SummaryTotal         int       `json:"summary_total"`
	SummaryCreatedAt     time.Time `json:"summary_created_at"`
	SummaryUpdatedAt     time.Time `json:"summary_updated_at"`
}

func ToResponse(m *model.TrainingScoreSummaryModel) TrainingScoreSummaryResponse {
	return TrainingScoreSummaryResponse{
		SummaryID:            m.SummaryID,
		SummaryStudentID:     m.SummaryStudentID,
		SummaryTerm:          m.SummaryTerm,
		SummaryBaseScore:     m.SummaryBaseScore,
		SummaryActivityBonus: m.SummaryActivityBonus,
		SummaryDeduction:     m.SummaryDeduction,
		SummaryTotal:         m.SummaryTotal,
		SummaryCreatedAt:     m.SummaryCreatedAt,
		SummaryUpdatedAt:     m.SummaryUpdatedAt,
	}
}

// One approved activity behind a summary row (detail view).
type SummaryActivityItem struct {
	ActivityName   string `json:"activity_name"`
	ActivityPoints int    `json:"activity_points"`
	ActivityTerm   string `json:"activity_term"`
}

type TrainingScoreSummaryDetailResponse struct {
	Summary    TrainingScoreSummaryResponse `json:"summary"`
	Activities []SummaryActivityItem        `json:"activities"`
}

// Per-row failure inside a bulk upsert.
type BulkRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
