// file: internals/features/training/summaries/controller/training_score_summary_controller.go
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

	"quanlysinhvien_backend/internals/constants"
	studentmodel "quanlysinhvien_backend/internals/features/academics/students/model"
	dto "quanlysinhvien_backend/internals/features/training/summaries/dto"
	model "quanlysinhvien_backend/internals/features/training/summaries/model"
	service "quanlysinhvien_backend/internals/features/training/summaries/service"
	helper "quanlysinhvien_backend/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */
type TrainingScoreSummaryController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Aggregator *service.AggregationService
}

func NewTrainingScoreSummaryController(db *gorm.DB) *TrainingScoreSummaryController {
	return &TrainingScoreSummaryController{
		DB:         db,
		Validator:  validator.New(),
		Aggregator: service.NewAggregationService(db),
	}
}

type summaryRow struct {
	model.TrainingScoreSummaryModel
	StudentCode string `gorm:"column:student_code"`
	StudentName string `gorm:"column:student_name"`
}

func toListResponse(rows []summaryRow) []dto.TrainingScoreSummaryResponse {
	out := make([]dto.TrainingScoreSummaryResponse, 0, len(rows))
	for i := range rows {
		resp := dto.ToResponse(&rows[i].TrainingScoreSummaryModel)
		resp.StudentCode = rows[i].StudentCode
		resp.StudentName = rows[i].StudentName
		out = append(out, resp)
	}
	return out
}

/* ========================================================
   Handlers
======================================================== */

// GET /training-score-summaries
// Query (optional): term, page, per_page
func (ctl *TrainingScoreSummaryController) List(c *fiber.Ctx) error {
	var filter dto.FilterTrainingScoreSummaryRequest
	if err := c.QueryParser(&filter); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctl.Validator.Struct(&filter); err != nil {
		return helper.ValidationError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.Context()).
		Table("training_score_summaries").
		Select("training_score_summaries.*, students.student_code, students.student_name").
		Joins("JOIN students ON students.student_id = training_score_summaries.summary_student_id")
	if filter.Term != nil && strings.TrimSpace(*filter.Term) != "" {
		q = q.Where("training_score_summaries.summary_term = ?", strings.TrimSpace(*filter.Term))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, err)
	}

	var rows []summaryRow
	if err := q.Order("training_score_summaries.summary_term DESC, students.student_code").
		Limit(paging.Limit).Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, "OK", fiber.Map{
		"summaries":  toListResponse(rows),
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /training-score-summaries/:id
// Detail: the summary plus the approved activities behind its bonus.
func (ctl *TrainingScoreSummaryController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid summary id")
	}

	var row summaryRow
	err = ctl.DB.WithContext(c.Context()).
		Table("training_score_summaries").
		Select("training_score_summaries.*, students.student_code, students.student_name").
		Joins("JOIN students ON students.student_id = training_score_summaries.summary_student_id").
		Where("training_score_summaries.summary_id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, http.StatusNotFound, "Training score summary not found")
	}
	if err != nil {
		return helper.JsonError(c, err)
	}

	// Same term-containment rule as the aggregation engine, so the listed
	// activities always add up to the displayed bonus.
	var activities []dto.SummaryActivityItem
	err = ctl.DB.WithContext(c.Context()).
		Table("activity_submissions").
		Select("activities.activity_name, activities.activity_points, activities.activity_term").
		Joins("JOIN activities ON activities.activity_id = activity_submissions.submission_activity_id").
		Where("activity_submissions.submission_student_id = ?", row.SummaryStudentID).
		Where("activity_submissions.submission_status = ?", constants.SubmissionApproved).
		Where("activities.activity_term LIKE ?", "%"+row.SummaryTerm+"%").
		Order("activities.activity_name").
		Scan(&activities).Error
	if err != nil {
		return helper.JsonError(c, err)
	}

	resp := dto.ToResponse(&row.TrainingScoreSummaryModel)
	resp.StudentCode = row.StudentCode
	resp.StudentName = row.StudentName

	return helper.Success(c, "OK", dto.TrainingScoreSummaryDetailResponse{
		Summary:    resp,
		Activities: activities,
	})
}

// POST /training-score-summaries
// Admin upsert of base score / deduction; the engine refreshes bonus+total.
func (ctl *TrainingScoreSummaryController) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertTrainingScoreSummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	summary, err := ctl.upsertOne(c, &req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, "Training score summary saved", dto.ToResponse(summary))
}

// POST /training-score-summaries/bulk
// Batch entry point for the import collaborator. Rows fail independently;
// valid rows are still applied (each row is its own transaction).
func (ctl *TrainingScoreSummaryController) BulkUpsert(c *fiber.Ctx) error {
	var req dto.BulkUpsertTrainingScoreSummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var rowErrors []dto.BulkRowError
	applied := 0
	for i := range req.Rows {
		if _, err := ctl.upsertOne(c, &req.Rows[i]); err != nil {
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

// DELETE /training-score-summaries/:id
// Manual correction path; deliberately does not trigger a recompute.
func (ctl *TrainingScoreSummaryController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid summary id")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("summary_id = ?", id).
		Delete(&model.TrainingScoreSummaryModel{})
	if res.Error != nil {
		return helper.JsonError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "Training score summary not found")
	}
	return helper.Success(c, "Training score summary deleted", nil)
}

/* ========================================================
   Internals
======================================================== */

func (ctl *TrainingScoreSummaryController) upsertOne(c *fiber.Ctx, req *dto.UpsertTrainingScoreSummaryRequest) (*model.TrainingScoreSummaryModel, error) {
	var student studentmodel.StudentModel
	err := ctl.DB.WithContext(c.Context()).
		Where("student_code = ?", strings.TrimSpace(req.StudentCode)).
		Take(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: student %s", helper.ErrNotFound, req.StudentCode)
	}
	if err != nil {
		return nil, err
	}
	return ctl.Aggregator.SetBaseAndDeduction(student.StudentID, strings.TrimSpace(req.Term), req.BaseScore, req.Deduction)
}
