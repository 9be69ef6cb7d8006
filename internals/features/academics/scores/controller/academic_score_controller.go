// file: internals/features/academics/scores/controller/academic_score_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	coursemodel "quanlysinhvien_backend/internals/features/academics/courses/model"
	dto "quanlysinhvien_backend/internals/features/academics/scores/dto"
	model "quanlysinhvien_backend/internals/features/academics/scores/model"
	studentmodel "quanlysinhvien_backend/internals/features/academics/students/model"
	helper "quanlysinhvien_backend/internals/helpers"
)

// Course averages below this threshold land on the academic warning list.
const failingAverage = 4.0

/* ========================================================
   Controller
======================================================== */
type AcademicScoreController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAcademicScoreController(db *gorm.DB) *AcademicScoreController {
	return &AcademicScoreController{
		DB:        db,
		Validator: validator.New(),
	}
}

type scoreRow struct {
	model.AcademicScoreModel
	StudentCode   string  `gorm:"column:student_code"`
	StudentName   string  `gorm:"column:student_name"`
	CourseCode    string  `gorm:"column:course_code"`
	CourseName    string  `gorm:"column:course_name"`
	CourseTerm    string  `gorm:"column:course_term"`
	CourseCredits int     `gorm:"column:course_credits"`
	ProcessWeight float64 `gorm:"column:course_process_weight"`
	ExamWeight    float64 `gorm:"column:course_exam_weight"`
}

/* ========================================================
   Handlers
======================================================== */

// GET /academic-scores
// Query (optional): term, course_code. The response carries the score list
// and the failing-grade warning list for the same filter.
func (ctl *AcademicScoreController) List(c *fiber.Ctx) error {
	var filter dto.FilterAcademicScoreRequest
	if err := c.QueryParser(&filter); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctl.Validator.Struct(&filter); err != nil {
		return helper.ValidationError(c, err)
	}

	q := ctl.DB.WithContext(c.Context()).
		Table("academic_scores").
		Select(`academic_scores.*, students.student_code, students.student_name,
			courses.course_code, courses.course_name, courses.course_term, courses.course_credits,
			courses.course_process_weight, courses.course_exam_weight`).
		Joins("JOIN students ON students.student_id = academic_scores.academic_score_student_id").
		Joins("JOIN courses ON courses.course_id = academic_scores.academic_score_course_id")
	if filter.Term != nil && strings.TrimSpace(*filter.Term) != "" {
		q = q.Where("courses.course_term = ?", strings.TrimSpace(*filter.Term))
	}
	if filter.CourseCode != nil && strings.TrimSpace(*filter.CourseCode) != "" {
		q = q.Where("courses.course_code = ?", strings.TrimSpace(*filter.CourseCode))
	}

	var rows []scoreRow
	if err := q.Order("courses.course_term DESC, courses.course_name, students.student_code").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, err)
	}

	scores := make([]dto.AcademicScoreResponse, 0, len(rows))
	warnings := make([]dto.FailingScoreResponse, 0)
	for i := range rows {
		avg := rows[i].AcademicScoreProcess*rows[i].ProcessWeight + rows[i].AcademicScoreExam*rows[i].ExamWeight
		resp := dto.ToResponse(&rows[i].AcademicScoreModel)
		resp.StudentCode = rows[i].StudentCode
		resp.StudentName = rows[i].StudentName
		resp.CourseCode = rows[i].CourseCode
		resp.CourseName = rows[i].CourseName
		resp.CourseTerm = rows[i].CourseTerm
		resp.CourseCredits = rows[i].CourseCredits
		resp.CourseAverage = avg
		scores = append(scores, resp)

		if avg < failingAverage {
			warnings = append(warnings, dto.FailingScoreResponse{
				StudentCode:   rows[i].StudentCode,
				StudentName:   rows[i].StudentName,
				CourseCode:    rows[i].CourseCode,
				CourseName:    rows[i].CourseName,
				CourseTerm:    rows[i].CourseTerm,
				CourseAverage: avg,
			})
		}
	}

	return helper.Success(c, "OK", fiber.Map{
		"scores":   scores,
		"warnings": warnings,
	})
}

// POST /academic-scores
func (ctl *AcademicScoreController) Create(c *fiber.Ctx) error {
	var req dto.CreateAcademicScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	score, err := ctl.createOne(c, &req, false)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.SuccessWithCode(c, http.StatusCreated, "Score created", dto.ToResponse(score))
}

// POST /academic-scores/bulk
// Batch entry point for the import collaborator; per-row errors are
// collected and valid rows still land.
func (ctl *AcademicScoreController) BulkUpsert(c *fiber.Ctx) error {
	var req dto.BulkUpsertAcademicScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var rowErrors []dto.BulkRowError
	applied := 0
	for i := range req.Rows {
		if _, err := ctl.createOne(c, &req.Rows[i], true); err != nil {
			rowErrors = append(rowErrors, dto.BulkRowError{Row: i + 1, Message: err.Error()})
			continue
		}
		applied++
	}

	if len(rowErrors) > 0 {
		return helper.ErrorWithDetails(c, http.StatusMultiStatus,
			fmt.Sprintf("Applied %d of %d rows", applied, len(req.Rows)), rowErrors)
	}
	return helper.Success(c, fmt.Sprintf("Applied %d rows", applied), nil)
}

// PATCH /academic-scores/:id
func (ctl *AcademicScoreController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid score id")
	}

	var req dto.UpdateAcademicScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.ProcessScore != nil {
		updates["academic_score_process"] = *req.ProcessScore
	}
	if req.ExamScore != nil {
		updates["academic_score_exam"] = *req.ExamScore
	}
	if len(updates) == 0 {
		return helper.Error(c, http.StatusBadRequest, "Nothing to update")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&model.AcademicScoreModel{}).
		Where("academic_score_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "Score not found")
	}
	return helper.Success(c, "Score updated", nil)
}

// DELETE /academic-scores/:id
func (ctl *AcademicScoreController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid score id")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("academic_score_id = ?", id).
		Delete(&model.AcademicScoreModel{})
	if res.Error != nil {
		return helper.JsonError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "Score not found")
	}
	return helper.Success(c, "Score deleted", nil)
}

/* ========================================================
   Internals
======================================================== */

func (ctl *AcademicScoreController) createOne(c *fiber.Ctx, req *dto.CreateAcademicScoreRequest, upsert bool) (*model.AcademicScoreModel, error) {
	db := ctl.DB.WithContext(c.Context())

	var student studentmodel.StudentModel
	err := db.Where("student_code = ?", strings.TrimSpace(req.StudentCode)).Take(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: student %s", helper.ErrInvalidReference, req.StudentCode)
	}
	if err != nil {
		return nil, err
	}

	var course coursemodel.CourseModel
	err = db.Where("course_code = ?", strings.TrimSpace(req.CourseCode)).Take(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: course %s", helper.ErrInvalidReference, req.CourseCode)
	}
	if err != nil {
		return nil, err
	}

	var existing model.AcademicScoreModel
	err = db.Where("academic_score_student_id = ? AND academic_score_course_id = ?", student.StudentID, course.CourseID).
		Take(&existing).Error
	switch {
	case err == nil && !upsert:
		return nil, fmt.Errorf("%w: student %s already has a score for course %s",
			helper.ErrDuplicate, req.StudentCode, req.CourseCode)
	case err == nil && upsert:
		if err := db.Model(&existing).Updates(map[string]interface{}{
			"academic_score_process": req.ProcessScore,
			"academic_score_exam":    req.ExamScore,
		}).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// create below
	default:
		return nil, err
	}

	score := model.AcademicScoreModel{
		AcademicScoreStudentID: student.StudentID,
		AcademicScoreCourseID:  course.CourseID,
		AcademicScoreProcess:   req.ProcessScore,
		AcademicScoreExam:      req.ExamScore,
	}
	if err := db.Create(&score).Error; err != nil {
		return nil, err
	}
	return &score, nil
}
