// file: internals/features/training/submissions/dto/activity_submission_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "quanlysinhvien_backend/internals/features/training/submissions/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Create (JSON). The evidence file itself is uploaded by the storage
// collaborator beforehand; only the returned reference lands here.
type CreateActivitySubmissionRequest struct {
	ActivityID  uuid.UUID `json:"activity_id" validate:"required"`
	EvidenceURL string    `json:"evidence_url" validate:"required,max=500"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type ActivitySubmissionResponse struct {
	SubmissionID          uuid.UUID `json:"submission_id"`
	SubmissionStudentID   uuid.UUID `json:"submission_student_id"`
	SubmissionActivityID  uuid.UUID `json:"submission_activity_id"`
	SubmissionEvidenceURL string    `json:"submission_evidence_url"`
	SubmissionStatus      string    `json:"submission_status"`
	SubmissionCreatedAt   time.Time `json:"submission_created_at"`

	// joined activity info, for listings
	ActivityName   string `json:"activity_name,omitempty"`
	ActivityPoints int    `json:"activity_points,omitempty"`
	ActivityTerm   string `json:"activity_term,omitempty"`
}

func ToResponse(m *model.ActivitySubmissionModel) ActivitySubmissionResponse {
	return ActivitySubmissionResponse{
		SubmissionID:          m.SubmissionID,
		SubmissionStudentID:   m.SubmissionStudentID,
		SubmissionActivityID:  m.SubmissionActivityID,
		SubmissionEvidenceURL: m.SubmissionEvidenceURL,
		SubmissionStatus:      m.SubmissionStatus,
		SubmissionCreatedAt:   m.SubmissionCreatedAt,
	}
}

// Pending submissions grouped per student (admin review screen).
type PendingByStudentResponse struct {
	StudentCode string                       `json:"student_code"`
	StudentName string                       `json:"student_name"`
	Submissions []ActivitySubmissionResponse `json:"submissions"`
}
