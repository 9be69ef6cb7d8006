// file: internals/features/training/submissions/controller/activity_submission_controller.go
package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quanlysinhvien_backend/internals/constants"
	studentmodel "quanlysinhvien_backend/internals/features/academics/students/model"
	activitymodel "quanlysinhvien_backend/internals/features/training/activities/model"
	dto "quanlysinhvien_backend/internals/features/training/submissions/dto"
	model "quanlysinhvien_backend/internals/features/training/submissions/model"
	summarydto "quanlysinhvien_backend/internals/features/training/summaries/dto"
	summaryservice "quanlysinhvien_backend/internals/features/training/summaries/service"
	helper "quanlysinhvien_backend/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */
type ActivitySubmissionController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Aggregator *summaryservice.AggregationService
}

func NewActivitySubmissionController(db *gorm.DB) *ActivitySubmissionController {
	return &ActivitySubmissionController{
		DB:         db,
		Validator:  validator.New(),
		Aggregator: summaryservice.NewAggregationService(db),
	}
}

/* ========================================================
   Handlers
======================================================== */

// POST /activity-submissions
// Student-only. Creates a pending submission carrying the evidence reference.
func (ctl *ActivitySubmissionController) Submit(c *fiber.Ctx) error {
	studentCode, err := helper.GetStudentCodeFromToken(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	var req dto.CreateActivitySubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := ctl.DB.WithContext(c.Context())

	var student studentmodel.StudentModel
	if err := db.Where("student_code = ?", studentCode).Take(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusUnprocessableEntity,
				"Your account's student code does not match any student")
		}
		return helper.JsonError(c, err)
	}

	var activity activitymodel.ActivityModel
	if err := db.Where("activity_id = ?", req.ActivityID).Take(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusUnprocessableEntity, "Activity not found")
		}
		return helper.JsonError(c, err)
	}

	var existing int64
	if err := db.Model(&model.ActivitySubmissionModel{}).
		Where("submission_student_id = ? AND submission_activity_id = ?", student.StudentID, activity.ActivityID).
		Count(&existing).Error; err != nil {
		return helper.JsonError(c, err)
	}
	if existing > 0 {
		return helper.Error(c, http.StatusConflict, "You already submitted evidence for this activity")
	}

	sub := model.ActivitySubmissionModel{
		SubmissionStudentID:   student.StudentID,
		SubmissionActivityID:  activity.ActivityID,
		SubmissionEvidenceURL: req.EvidenceURL,
		SubmissionStatus:      constants.SubmissionPending,
	}
	if err := db.Create(&sub).Error; err != nil {
		return helper.JsonError(c, err)
	}

	return helper.SuccessWithCode(c, http.StatusCreated,
		"Evidence submitted. Waiting for approval.", dto.ToResponse(&sub))
}

// GET /activity-submissions/me
// Student-only: own submissions newest first, with activity info.
func (ctl *ActivitySubmissionController) ListMine(c *fiber.Ctx) error {
	studentCode, err := helper.GetStudentCodeFromToken(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	type row struct {
		model.ActivitySubmissionModel
		ActivityName   string `gorm:"column:activity_name"`
		ActivityPoints int    `gorm:"column:activity_points"`
		ActivityTerm   string `gorm:"column:activity_term"`
	}
	var rows []row
	err = ctl.DB.WithContext(c.Context()).
		Table("activity_submissions").
		Select("activity_submissions.*, activities.activity_name, activities.activity_points, activities.activity_term").
		Joins("JOIN activities ON activities.activity_id = activity_submissions.submission_activity_id").
		Joins("JOIN students ON students.student_id = activity_submissions.submission_student_id").
		Where("students.student_code = ?", studentCode).
		Order("activity_submissions.submission_created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, err)
	}

	out := make([]dto.ActivitySubmissionResponse, 0, len(rows))
	for i := range rows {
		resp := dto.ToResponse(&rows[i].ActivitySubmissionModel)
		resp.ActivityName = rows[i].ActivityName
		resp.ActivityPoints = rows[i].ActivityPoints
		resp.ActivityTerm = rows[i].ActivityTerm
		out = append(out, resp)
	}
	return helper.Success(c, "OK", out)
}

// GET /activity-submissions/pending
// Admin review screen: pending submissions grouped per student.
func (ctl *ActivitySubmissionController) ListPending(c *fiber.Ctx) error {
	type row struct {
		model.ActivitySubmissionModel
		StudentCode    string `gorm:"column:student_code"`
		StudentName    string `gorm:"column:student_name"`
		ActivityName   string `gorm:"column:activity_name"`
		ActivityPoints int    `gorm:"column:activity_points"`
		ActivityTerm   string `gorm:"column:activity_term"`
	}
	var rows []row
	err := ctl.DB.WithContext(c.Context()).
		Table("activity_submissions").
		Select(`activity_submissions.*, students.student_code, students.student_name,
			activities.activity_name, activities.activity_points, activities.activity_term`).
		Joins("JOIN students ON students.student_id = activity_submissions.submission_student_id").
		Joins("JOIN activities ON activities.activity_id = activity_submissions.submission_activity_id").
		Where("activity_submissions.submission_status = ?", constants.SubmissionPending).
		Order("students.student_name, activity_submissions.submission_created_at").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, err)
	}

	// group per student, keeping scan order
	var out []PendingGroup = nil
	index := map[string]int{}
	for i := range rows {
		code := rows[i].StudentCode
		pos, ok := index[code]
		if !ok {
			pos = len(out)
			index[code] = pos
			out = append(out, PendingGroup{
				StudentCode: code,
				StudentName: rows[i].StudentName,
			})
		}
		resp := dto.ToResponse(&rows[i].ActivitySubmissionModel)
		resp.ActivityName = rows[i].ActivityName
		resp.ActivityPoints = rows[i].ActivityPoints
		resp.ActivityTerm = rows[i].ActivityTerm
		out[pos].Submissions = append(out[pos].Submissions, resp)
	}
	return helper.Success(c, "OK", out)
}

type PendingGroup = dto.PendingByStudentResponse

// POST /activity-submissions/:id/approve
// Admin-only. Transition + recompute + summary upsert commit together;
// approving an already-approved submission is a safe no-op.
func (ctl *ActivitySubmissionController) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid submission id")
	}

	var (
		summary         *summarydto.TrainingScoreSummaryResponse
		alreadyApproved bool
	)
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var sub model.ActivitySubmissionModel
		if err := tx.Where("submission_id = ?", id).Take(&sub).Error; err != nil {
			return err
		}

		var activity activitymodel.ActivityModel
		if err := tx.Where("activity_id = ?", sub.SubmissionActivityID).Take(&activity).Error; err != nil {
			return err
		}

		if sub.IsApproved() {
			// idempotent: re-running the engine is harmless, but this is not
			// a fresh approval event
			alreadyApproved = true
			return nil
		}

		if err := tx.Model(&model.ActivitySubmissionModel{}).
			Where("submission_id = ?", sub.SubmissionID).
			Update("submission_status", constants.SubmissionApproved).Error; err != nil {
			return err
		}

		s, err := ctl.Aggregator.Recompute(tx, sub.SubmissionStudentID, activity.ActivityTerm)
		if err != nil {
			return err
		}
		resp := summarydto.ToResponse(s)
		summary = &resp
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, http.StatusNotFound, "Submission not found")
	}
	if err != nil {
		return helper.JsonError(c, err)
	}

	if alreadyApproved {
		return helper.Success(c, "Submission was already approved", nil)
	}
	log.Printf("[INFO] submission %s approved", id)
	return helper.Success(c, "Submission approved and training score updated", summary)
}

// DELETE /activity-submissions/:id
// Admin undo for erroneous entries. Deliberately does not recompute the
// summary; corrections go through the manual base/deduction path.
func (ctl *ActivitySubmissionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid submission id")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("submission_id = ?", id).
		Delete(&model.ActivitySubmissionModel{})
	if res.Error != nil {
		return helper.JsonError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "Submission not found")
	}
	return helper.Success(c, "Submission deleted", nil)
}
