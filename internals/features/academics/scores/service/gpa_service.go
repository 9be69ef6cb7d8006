// file: internals/features/academics/scores/service/gpa_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ========================================================
   GPA calculator

   Read-only: folds academic score rows joined to course weighting metadata
   into per-term buckets. Nothing here is persisted; callers always see the
   current rows.
======================================================== */

type GPAService struct {
	DB *gorm.DB
}

func NewGPAService(db *gorm.DB) *GPAService {
	return &GPAService{DB: db}
}

type CourseScore struct {
	CourseCode    string  `json:"course_code" gorm:"column:course_code"`
	CourseName    string  `json:"course_name" gorm:"column:course_name"`
	CourseCredits int     `json:"course_credits" gorm:"column:course_credits"`
	CourseTerm    string  `json:"course_term" gorm:"column:course_term"`
	ProcessScore  float64 `json:"process_score" gorm:"column:academic_score_process"`
	ExamScore     float64 `json:"exam_score" gorm:"column:academic_score_exam"`
	ProcessWeight float64 `json:"process_weight" gorm:"column:course_process_weight"`
	ExamWeight    float64 `json:"exam_weight" gorm:"column:course_exam_weight"`
	CourseAverage float64 `json:"course_average" gorm:"-"`
}

type TermGPA struct {
	Term         string        `json:"term"`
	Scores       []CourseScore `json:"scores"`
	TotalCredits int           `json:"total_credits"`
	GPA          float64       `json:"gpa"`
}

// GPAByTerm buckets the student's scores per term in scan order and computes
// the credit-weighted average per bucket. A term whose courses carry zero
// credits reports gpa = 0 instead of dividing by zero.
func (s *GPAService) GPAByTerm(studentID uuid.UUID) ([]TermGPA, error) {
	var rows []CourseScore
	err := s.DB.Table("academic_scores").
		Select(`courses.course_code, courses.course_name, courses.course_credits, courses.course_term,
			academic_scores.academic_score_process, academic_scores.academic_score_exam,
			courses.course_process_weight, courses.course_exam_weight`).
		Joins("JOIN courses ON courses.course_id = academic_scores.academic_score_course_id").
		Where("academic_scores.academic_score_student_id = ?", studentID).
		Order("courses.course_term, courses.course_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var (
		out          []TermGPA
		index        = map[string]int{}
		creditPoints = map[string]float64{}
	)
	for i := range rows {
		rows[i].CourseAverage = rows[i].ProcessScore*rows[i].ProcessWeight + rows[i].ExamScore*rows[i].ExamWeight

		term := rows[i].CourseTerm
		pos, ok := index[term]
		if !ok {
			pos = len(out)
			index[term] = pos
			out = append(out, TermGPA{Term: term})
		}
		out[pos].Scores = append(out[pos].Scores, rows[i])
		out[pos].TotalCredits += rows[i].CourseCredits
		creditPoints[term] += rows[i].CourseAverage * float64(rows[i].CourseCredits)
	}

	for i := range out {
		if out[i].TotalCredits > 0 {
			out[i].GPA = creditPoints[out[i].Term] / float64(out[i].TotalCredits)
		}
	}
	return out, nil
}
