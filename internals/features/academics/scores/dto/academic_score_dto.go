// file: internals/features/academics/scores/dto/academic_score_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "quanlysinhvien_backend/internals/features/academics/scores/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateAcademicScoreRequest struct {
	StudentCode  string  `json:"student_code" validate:"required,max=20"`
	CourseCode   string  `json:"course_code" validate:"required,max=20"`
	ProcessScore float64 `json:"process_score" validate:"min=0,max=10"`
	ExamScore    float64 `json:"exam_score" validate:"min=0,max=10"`
}

type UpdateAcademicScoreRequest struct {
	ProcessScore *float64 `json:"process_score" validate:"omitempty,min=0,max=10"`
	ExamScore    *float64 `json:"exam_score" validate:"omitempty,min=0,max=10"`
}

type BulkUpsertAcademicScoreRequest struct {
	Rows []CreateAcademicScoreRequest `json:"rows" validate:"required,min=1,dive"`
}

// Filter / List (query)
type FilterAcademicScoreRequest struct {
	Term       *string `query:"term" validate:"omitempty,max=30"`
	CourseCode *string `query:"course_code" validate:"omitempty,max=20"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type AcademicScoreResponse struct {
	AcademicScoreID uuid.UUID `json:"academic_score_id"`
	StudentCode     string    `json:"student_code"`
	StudentName     string    `json:"student_name"`
	CourseCode      string    `json:"course_code"`
	CourseName      string    `json:"course_name"`
	CourseTerm      string    `json:"course_term"`
	CourseCredits   int       `json:"course_credits"`
	ProcessScore    float64   `json:"process_score"`
	ExamScore       float64   `json:"exam_score"`
	CourseAverage   float64   `json:"course_average"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToResponse(m *model.AcademicScoreModel) AcademicScoreResponse {
	return AcademicScoreResponse{
		AcademicScoreID: m.AcademicScoreID,
		ProcessScore:    m.AcademicScoreProcess,
		ExamScore:       m.AcademicScoreExam,
		CreatedAt:       m.AcademicScoreCreatedAt,
	}
}

// A failing course row (course_average < 4.0), for the warning list.
type FailingScoreResponse struct {
	StudentCode   string  `json:"student_code"`
	StudentName   string  `json:"student_name"`
	CourseCode    string  `json:"course_code"`
	CourseName    string  `json:"course_name"`
	CourseTerm    string  `json:"course_term"`
	CourseAverage float64 `json:"course_average"`
}

type BulkRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
