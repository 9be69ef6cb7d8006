// file: internals/features/academics/courses/controller/course_controller.go
package controller

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "quanlysinhvien_backend/internals/features/academics/courses/dto"
	model "quanlysinhvien_backend/internals/features/academics/courses/model"
	scoremodel "quanlysinhvien_backend/internals/features/academics/scores/model"
	helper "quanlysinhvien_backend/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */
type CourseController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{
		DB:        db,
		Validator: validator.New(),
	}
}

// checkWeights rejects weighting pairs that do not sum to 1.0. The sum is
// rounded to one decimal first so 0.4 + 0.6 style inputs survive float noise.
func checkWeights(process, exam float64) error {
	if math.Round((process+exam)*10)/10 != 1.0 {
		return fmt.Errorf("%w: process_weight + exam_weight must equal 1.0", helper.ErrValidation)
	}
	return nil
}

/* ========================================================
   Handlers
======================================================== */

// GET /courses
// Query (optional): term. Courses come back grouped per term.
func (ctl *CourseController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).Model(&model.CourseModel{})
	if term := strings.TrimSpace(c.Query("term")); term != "" {
		q = q.Where("course_term = ?", term)
	}

	var courses []model.CourseModel
	if err := q.Order("course_term, course_name").Find(&courses).Error; err != nil {
		return helper.JsonError(c, err)
	}

	var (
		groups []dto.TermCoursesResponse
		index  = map[string]int{}
	)
	for i := range courses {
		term := courses[i].CourseTerm
		pos, ok := index[term]
		if !ok {
			pos = len(groups)
			index[term] = pos
			groups = append(groups, dto.TermCoursesResponse{Term: term})
		}
		groups[pos].Courses = append(groups[pos].Courses, dto.ToResponse(&courses[i]))
	}

	return helper.Success(c, "OK", fiber.Map{"terms": groups})
}

// POST /courses
func (ctl *CourseController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	course, err := ctl.upsertOne(c, &req, false)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.SuccessWithCode(c, http.StatusCreated, "Course created", dto.ToResponse(course))
}

// POST /courses/bulk
// Rows are validated up front; invalid rows are reported per index and the
// valid ones still land.
func (ctl *CourseController) BulkUpsert(c *fiber.Ctx) error {
	var req dto.BulkUpsertCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var rowErrors []dto.BulkRowError
	applied := 0
	for i := range req.Rows {
		if _, err := ctl.upsertOne(c, &req.Rows[i], true); err != nil {
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

// PATCH /courses/:code
func (ctl *CourseController) Update(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	db := ctl.DB.WithContext(c.Context())

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var course model.CourseModel
	err := db.Where("course_code = ?", code).Take(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, http.StatusNotFound, "Course not found")
	}
	if err != nil {
		return helper.JsonError(c, err)
	}

	updates := map[string]interface{}{}
	if req.CourseName != nil {
		updates["course_name"] = strings.TrimSpace(*req.CourseName)
	}
	if req.Credits != nil {
		updates["course_credits"] = *req.Credits
	}
	if req.Term != nil {
		updates["course_term"] = strings.TrimSpace(*req.Term)
	}

	// The weight pair is validated against the merged state so a partial
	// update cannot leave the pair summing to something other than 1.0.
	process := course.CourseProcessWeight
	exam := course.CourseExamWeight
	if req.ProcessWeight != nil {
		process = *req.ProcessWeight
		updates["course_process_weight"] = process
	}
	if req.ExamWeight != nil {
		exam = *req.ExamWeight
		updates["course_exam_weight"] = exam
	}
	if req.ProcessWeight != nil || req.ExamWeight != nil {
		if err := checkWeights(process, exam); err != nil {
			return helper.JsonError(c, err)
		}
	}

	if len(updates) == 0 {
		return helper.Error(c, http.StatusBadRequest, "Nothing to update")
	}
	if err := db.Model(&course).Updates(updates).Error; err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, "Course updated", nil)
}

// DELETE /courses/:code
// A course that already has score rows cannot be removed.
func (ctl *CourseController) Delete(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	db := ctl.DB.WithContext(c.Context())

	var course model.CourseModel
	err := db.Where("course_code = ?", code).Take(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, http.StatusNotFound, "Course not found")
	}
	if err != nil {
		return helper.JsonError(c, err)
	}

	var scoreCount int64
	if err := db.Model(&scoremodel.AcademicScoreModel{}).
		Where("academic_score_course_id = ?", course.CourseID).
		Count(&scoreCount).Error; err != nil {
		return helper.JsonError(c, err)
	}
	if scoreCount > 0 {
		return helper.Error(c, http.StatusConflict,
			fmt.Sprintf("Course %s has %d score rows and cannot be deleted", code, scoreCount))
	}

	if err := db.Delete(&course).Error; err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, "Course deleted", nil)
}

/* ========================================================
   Internals
======================================================== */

func (ctl *CourseController) upsertOne(c *fiber.Ctx, req *dto.CreateCourseRequest, upsert bool) (*model.CourseModel, error) {
	if err := checkWeights(req.ProcessWeight, req.ExamWeight); err != nil {
		return nil, err
	}

	db := ctl.DB.WithContext(c.Context())
	code := strings.TrimSpace(req.CourseCode)

	var existing model.CourseModel
	err := db.Where("course_code = ?", code).Take(&existing).Error
	switch {
	case err == nil && !upsert:
		return nil, fmt.Errorf("%w: course %s already exists", helper.ErrDuplicate, code)
	case err == nil && upsert:
		if err := db.Model(&existing).Updates(map[string]interface{}{
			"course_name":           strings.TrimSpace(req.CourseName),
			"course_credits":        req.Credits,
			"course_term":           strings.TrimSpace(req.Term),
			"course_process_weight": req.ProcessWeight,
			"course_exam_weight":    req.ExamWeight,
		}).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// create below
	default:
		return nil, err
	}

	course := model.CourseModel{
		CourseCode:          code,
		CourseName:          strings.TrimSpace(req.CourseName),
		CourseCredits:       req.Credits,
		CourseTerm:          strings.TrimSpace(req.Term),
		CourseProcessWeight: req.ProcessWeight,
		CourseExamWeight:    req.ExamWeight,
	}
	if err := db.Create(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}
