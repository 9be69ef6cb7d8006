// file: internals/features/training/activities/dto/activity_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "quanlysinhvien_backend/internals/features/training/activities/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateActivityRequest struct {
	ActivityName   string `json:"activity_name" validate:"required,max=160"`
	ActivityPoints int    `json:"activity_points" validate:"required"`
	ActivityTerm   string `json:"activity_term" validate:"required,max=30"`
}

type UpdateActivityRequest struct {
	ActivityName   *string `json:"activity_name" validate:"omitempty,max=160"`
	ActivityPoints *int    `json:"activity_points" validate:"omitempty"`
	ActivityTerm   *string `json:"activity_term" validate:"omitempty,max=30"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type ActivityResponse struct {
	ActivityID        uuid.UUID `json:"activity_id"`
	ActivityName      string    `json:"activity_name"`
	ActivityPoints    int       `json:"activity_points"`
	ActivityTerm      string    `json:"activity_term"`
	ActivityCreatedAt time.Time `json:"activity_created_at"`
	ActivityUpdatedAt time.Time `json:"activity_updated_at"`
}

func ToResponse(m *model.ActivityModel) ActivityResponse {
	return ActivityResponse{
		ActivityID:        m.ActivityID,
		ActivityName:      m.ActivityName,
		ActivityPoints:    m.ActivityPoints,
		ActivityTerm:      m.ActivityTerm,
		ActivityCreatedAt: m.ActivityCreatedAt,
		ActivityUpdatedAt: m.ActivityUpdatedAt,
	}
}
