// file: internals/features/training/activities/controller/activity_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quanlysinhvien_backend/internals/constants"
	dto "quanlysinhvien_backend/internals/features/training/activities/dto"
	model "quanlysinhvien_backend/internals/features/training/activities/model"
	service "quanlysinhvien_backend/internals/features/training/activities/service"
	submissionmodel "quanlysinhvien_backend/internals/features/training/submissions/model"
	helper "quanlysinhvien_backend/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */
type ActivityController struct {
	DB          *gorm.DB
	Validator   *validator.Validate
	Coordinator *service.RecomputeCoordinator
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{
		DB:          db,
		Validator:   validator.New(),
		Coordinator: service.NewRecomputeCoordinator(db),
	}
}

/* ========================================================
   Handlers
======================================================== */

// GET /activities
func (ctl *ActivityController) List(c *fiber.Ctx) error {
	var activities []model.ActivityModel
	q := ctl.DB.WithContext(c.Context()).Order("activity_term, activity_name")
	if term := strings.TrimSpace(c.Query("term")); term != "" {
		q = q.Where("activity_term = ?", term)
	}
	if err := q.Find(&activities).Error; err != nil {
		return helper.JsonError(c, err)
	}

	out := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, dto.ToResponse(&activities[i]))
	}
	return helper.Success(c, "OK", out)
}

// POST /activities
func (ctl *ActivityController) Create(c *fiber.Ctx) error {
	var req dto.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	activity := model.ActivityModel{
		ActivityName:   strings.TrimSpace(req.ActivityName),
		ActivityPoints: req.ActivityPoints,
		ActivityTerm:   strings.TrimSpace(req.ActivityTerm),
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&activity).Error; err != nil {
		return helper.JsonError(c, err)
	}
	return helper.SuccessWithCode(c, http.StatusCreated, "Activity created", dto.ToResponse(&activity))
}

// PUT /activities/:id
// Point or term edits retroactively change every approved submission of the
// activity, so the coordinator fans out a recompute for each affected
// student after the edit commits.
func (ctl *ActivityController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid activity id")
	}

	var req dto.UpdateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := ctl.DB.WithContext(c.Context())

	var activity model.ActivityModel
	if err := db.Where("activity_id = ?", id).Take(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Activity not found")
		}
		return helper.JsonError(c, err)
	}
	oldTerm := activity.ActivityTerm

	updates := map[string]interface{}{}
	if req.ActivityName != nil {
		updates["activity_name"] = strings.TrimSpace(*req.ActivityName)
	}
	if req.ActivityPoints != nil {
		updates["activity_points"] = *req.ActivityPoints
	}
	if req.ActivityTerm != nil {
		updates["activity_term"] = strings.TrimSpace(*req.ActivityTerm)
	}
	if len(updates) == 0 {
		return helper.Error(c, http.StatusBadRequest, "Nothing to update")
	}

	if err := db.Model(&model.ActivityModel{}).
		Where("activity_id = ?", id).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, err)
	}

	newTerm := oldTerm
	if req.ActivityTerm != nil {
		newTerm = strings.TrimSpace(*req.ActivityTerm)
	}

	failures, err := ctl.Coordinator.OnActivityChanged(id, oldTerm, newTerm)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if len(failures) > 0 {
		return helper.ErrorWithDetails(c, http.StatusMultiStatus,
			"Activity updated, but some training scores could not be recomputed", failures)
	}

	if err := db.Where("activity_id = ?", id).Take(&activity).Error; err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, "Activity updated and affected training scores recomputed", dto.ToResponse(&activity))
}

// DELETE /activities/:id
// Refused while approved submissions reference the activity; those points are
// already folded into summaries.
func (ctl *ActivityController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid activity id")
	}

	db := ctl.DB.WithContext(c.Context())

	var refs int64
	if err := db.Model(&submissionmodel.ActivitySubmissionModel{}).
		Where("submission_activity_id = ?", id).
		Where("submission_status = ?", constants.SubmissionApproved).
		Count(&refs).Error; err != nil {
		return helper.JsonError(c, err)
	}
	if refs > 0 {
		return helper.Error(c, http.StatusConflict,
			"Cannot delete this activity: students already have approved submissions for it")
	}

	res := db.Where("activity_id = ?", id).Delete(&model.ActivityModel{})
	if res.Error != nil {
		return helper.JsonError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "Activity not found")
	}
	return helper.Success(c, "Activity deleted", nil)
}
