// file: internals/features/academics/students/controller/student_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scoremodel "quanlysinhvien_backend/internals/features/academics/scores/model"
	scoreservice "quanlysinhvien_backend/internals/features/academics/scores/service"
	dto "quanlysinhvien_backend/internals/features/academics/students/dto"
	model "quanlysinhvien_backend/internals/features/academics/students/model"
	submissionmodel "quanlysinhvien_backend/internals/features/training/submissions/model"
	summarydto "quanlysinhvien_backend/internals/features/training/summaries/dto"
	summarymodel "quanlysinhvien_backend/internals/features/training/summaries/model"
	authmodel "quanlysinhvien_backend/internals/features/users/auth/model"
	helper "quanlysinhvien_backend/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */
type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	GPA       *scoreservice.GPAService
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{
		DB:        db,
		Validator: validator.New(),
		GPA:       scoreservice.NewGPAService(db),
	}
}

/* ========================================================
   Handlers
======================================================== */

// GET /students
// Query (optional): class, q (matches code or name), page, per_page.
func (ctl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.StudentModel{})
	if class := strings.TrimSpace(c.Query("class")); class != "" {
		q = q.Where("student_class = ?", class)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("student_code LIKE ? OR student_name LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, err)
	}

	var students []model.StudentModel
	if err := q.Order("student_code").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, err)
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		items = append(items, dto.ToResponse(&students[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"students":   items,
		"pagination": helper.BuildPagination(paging, total, len(items)),
	})
}

// GET /students/:code
// Full academic profile: identity, per-term GPA buckets, and every training
// score summary the student has.
func (ctl *StudentController) Detail(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	db := ctl.DB.WithContext(c.Context())

	var student model.StudentModel
	err := db.Where("student_code = ?", code).Take(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, http.StatusNotFound, "Student not found")
	}
	if err != nil {
		return helper.JsonError(c, err)
	}

	terms, err := ctl.GPA.GPAByTerm(student.StudentID)
	if err != nil {
		return helper.JsonError(c, err)
	}

	var summaries []summarymodel.TrainingScoreSummaryModel
	if err := db.Where("summary_student_id = ?", student.StudentID).
		Order("summary_term").
		Find(&summaries).Error; err != nil {
		return helper.JsonError(c, err)
	}
	trainingScores := make([]summarydto.TrainingScoreSummaryResponse, 0, len(summaries))
	for i := range summaries {
		trainingScores = append(trainingScores, summarydto.ToResponse(&summaries[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"student":         dto.ToResponse(&student),
		"terms":           terms,
		"training_scores": trainingScores,
	})
}

// POST /students
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	student, err := ctl.upsertOne(c, &req, false)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.SuccessWithCode(c, http.StatusCreated, "Student created", dto.ToResponse(student))
}

// POST /students/bulk
// Import entry point; per-row errors are collected and valid rows still land.
func (ctl *StudentController) BulkUpsert(c *fiber.Ctx) error {
	var req dto.BulkUpsertStudentRequest
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

// PATCH /students/:code
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.StudentName != nil {
		updates["student_name"] = strings.TrimSpace(*req.StudentName)
	}
	if req.BirthDate != nil {
		birth, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return helper.Error(c, http.StatusBadRequest, "Invalid birth_date")
		}
		updates["student_birth_date"] = birth
	}
	if req.Gender != nil {
		updates["student_gender"] = *req.Gender
	}
	if req.Class != nil {
		updates["student_class"] = *req.Class
	}
	if len(updates) == 0 {
		return helper.Error(c, http.StatusBadRequest, "Nothing to update")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&model.StudentModel{}).
		Where("student_code = ?", code).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "Student not found")
	}
	return helper.Success(c, "Student updated", nil)
}

// DELETE /students/:code
// Removes the student and every dependent row in one transaction so no
// orphaned scores or submissions survive.
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))

	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var student model.StudentModel
		err := tx.Where("student_code = ?", code).Take(&student).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: student %s", helper.ErrNotFound, code)
		}
		if err != nil {
			return err
		}

		if err := tx.Where("academic_score_student_id = ?", student.StudentID).
			Delete(&scoremodel.AcademicScoreModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_student_id = ?", student.StudentID).
			Delete(&submissionmodel.ActivitySubmissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("summary_student_id = ?", student.StudentID).
			Delete(&summarymodel.TrainingScoreSummaryModel{}).Error; err != nil {
			return err
		}
		// The seeded viewer account is keyed to the student code; a surviving
		// login would fail every student-scoped request afterwards.
		if err := tx.Where("user_student_code = ?", student.StudentCode).
			Delete(&authmodel.UserModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&student).Error
	})
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, "Student deleted", nil)
}

/* ========================================================
   Internals
======================================================== */

func (ctl *StudentController) upsertOne(c *fiber.Ctx, req *dto.CreateStudentRequest, upsert bool) (*model.StudentModel, error) {
	db := ctl.DB.WithContext(c.Context())
	code := strings.TrimSpace(req.StudentCode)

	var birth *time.Time
	if req.BirthDate != nil && strings.TrimSpace(*req.BirthDate) != "" {
		parsed, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid birth_date for %s", helper.ErrValidation, code)
		}
		birth = &parsed
	}

	var existing model.StudentModel
	err := db.Where("student_code = ?", code).Take(&existing).Error
	switch {
	case err == nil && !upsert:
		return nil, fmt.Errorf("%w: student %s already exists", helper.ErrDuplicate, code)
	case err == nil && upsert:
		updates := map[string]interface{}{
			"student_name": strings.TrimSpace(req.StudentName),
		}
		if birth != nil {
			updates["student_birth_date"] = *birth
		}
		if req.Gender != nil {
			updates["student_gender"] = *req.Gender
		}
		if req.Class != nil {
			updates["student_class"] = *req.Class
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// create below
	default:
		return nil, err
	}

	student := model.StudentModel{
		StudentCode:      code,
		StudentName:      strings.TrimSpace(req.StudentName),
		StudentBirthDate: birth,
		StudentGender:    req.Gender,
		StudentClass:     req.Class,
	}
	if err := db.Create(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
