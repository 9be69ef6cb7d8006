// file: internals/features/academics/courses/dto/course_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "quanlysinhvien_backend/internals/features/academics/courses/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateCourseRequest struct {
	CourseCode    string  `json:"course_code" validate:"required,max=20"`
	CourseName    string  `json:"course_name" validate:"required,max=120"`
	Credits       int     `json:"credits" validate:"min=0,max=20"`
	Term          string  `json:"term" validate:"required,max=30"`
	ProcessWeight float64 `json:"process_weight" validate:"min=0,max=1"`
	ExamWeight    float64 `json:"exam_weight" validate:"min=0,max=1"`
}

type UpdateCourseRequest struct {
	CourseName    *string  `json:"course_name" validate:"omitempty,max=120"`
	Credits       *int     `json:"credits" validate:"omitempty,min=0,max=20"`
	Term          *string  `json:"term" validate:"omitempty,max=30"`
	ProcessWeight *float64 `json:"process_weight" validate:"omitempty,min=0,max=1"`
	ExamWeight    *float64 `json:"exam_weight" validate:"omitempty,min=0,max=1"`
}

type BulkUpsertCourseRequest struct {
	Rows []CreateCourseRequest `json:"rows" validate:"required,min=1,dive"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type CourseResponse struct {
	CourseID      uuid.UUID `json:"course_id"`
	CourseCode    string    `json:"course_code"`
	CourseName    string    `json:"course_name"`
	Credits       int       `json:"credits"`
	Term          string    `json:"term"`
	ProcessWeight float64   `json:"process_weight"`
	ExamWeight    float64   `json:"exam_weight"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToResponse(m *model.CourseModel) CourseResponse {
	return CourseResponse{
		CourseID:      m.CourseID,
		CourseCode:    m.CourseCode,
		CourseName:    m.CourseName,
		Credits:       m.CourseCredits,
		Term:          m.CourseTerm,
		ProcessWeight: m.CourseProcessWeight,
		ExamWeight:    m.CourseExamWeight,
		CreatedAt:     m.CourseCreatedAt,
	}
}

// Courses of one term, for the grouped listing.
type TermCoursesResponse struct {
	Term    string           `json:"term"`
	Courses []CourseResponse `json:"courses"`
}

type BulkRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
