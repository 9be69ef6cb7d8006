package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quanlysinhvien_backend/internals/constants"
	studentmodel "quanlysinhvien_backend/internals/features/academics/students/model"
	activitymodel "quanlysinhvien_backend/internals/features/training/activities/model"
	model "quanlysinhvien_backend/internals/features/training/submissions/model"
	summarymodel "quanlysinhvien_backend/internals/features/training/summaries/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&studentmodel.StudentModel{},
		&activitymodel.ActivityModel{},
		&model.ActivitySubmissionModel{},
		&summarymodel.TrainingScoreSummaryModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newApproveApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ctl := NewActivitySubmissionController(db)
	app.Post("/activity-submissions/:id/approve", ctl.Approve)
	return app
}

func approve(t *testing.T, app *fiber.App, id string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/activity-submissions/"+id+"/approve", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestApproveTransitionsAndRecomputes(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newApproveApp(db)

	student := studentmodel.StudentModel{StudentCode: "SV301", StudentName: "A"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	activity := activitymodel.ActivityModel{ActivityName: "Blood donation", ActivityPoints: 5, ActivityTerm: "HK1"}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("create activity: %v", err)
	}
	sub := model.ActivitySubmissionModel{
		SubmissionStudentID:   student.StudentID,
		SubmissionActivityID:  activity.ActivityID,
		SubmissionEvidenceURL: "https://evidence.example/x.jpg",
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}

	// Existing manual components: 10 base, 2 deduction.
	seed := summarymodel.TrainingScoreSummaryModel{
		SummaryStudentID: student.StudentID,
		SummaryTerm:      "HK1",
		SummaryBaseScore: 10,
		SummaryDeduction: 2,
		SummaryTotal:     8,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed summary: %v", err)
	}

	resp := approve(t, app, sub.SubmissionID.String())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d, want 200", resp.StatusCode)
	}

	var got model.ActivitySubmissionModel
	if err := db.Where("submission_id = ?", sub.SubmissionID).Take(&got).Error; err != nil {
		t.Fatalf("reload submission: %v", err)
	}
	if got.SubmissionStatus != constants.SubmissionApproved {
		t.Errorf("status = %q, want approved", got.SubmissionStatus)
	}

	var summary summarymodel.TrainingScoreSummaryModel
	if err := db.Where("summary_student_id = ? AND summary_term = ?", student.StudentID, "HK1").
		Take(&summary).Error; err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if summary.SummaryActivityBonus != 5 {
		t.Errorf("bonus = %d, want 5", summary.SummaryActivityBonus)
	}
	if want := 10 + 5 - 2; summary.SummaryTotal != want {
		t.Errorf("total = %d, want %d", summary.SummaryTotal, want)
	}
}

func TestApproveTwiceIsNoOp(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newApproveApp(db)

	student := studentmodel.StudentModel{StudentCode: "SV302", StudentName: "B"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	activity := activitymodel.ActivityModel{ActivityName: "Volunteering", ActivityPoints: 7, ActivityTerm: "HK1"}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("create activity: %v", err)
	}
	sub := model.ActivitySubmissionModel{
		SubmissionStudentID:   student.StudentID,
		SubmissionActivityID:  activity.ActivityID,
		SubmissionEvidenceURL: "https://evidence.example/x.jpg",
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}

	for i := 0; i < 2; i++ {
		resp := approve(t, app, sub.SubmissionID.String())
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("approve #%d status = %d, want 200", i+1, resp.StatusCode)
		}
	}

	var summary summarymodel.TrainingScoreSummaryModel
	if err := db.Where("summary_student_id = ? AND summary_term = ?", student.StudentID, "HK1").
		Take(&summary).Error; err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if summary.SummaryActivityBonus != 7 || summary.SummaryTotal != 7 {
		t.Errorf("bonus/total = %d/%d after double approve, want 7/7",
			summary.SummaryActivityBonus, summary.SummaryTotal)
	}
}

func TestApproveConcurrentSameStudentTerm(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newApproveApp(db)

	student := studentmodel.StudentModel{StudentCode: "SV303", StudentName: "C"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}

	points := []int{5, 3}
	ids := make([]string, 0, len(points))
	for i, pts := range points {
		activity := activitymodel.ActivityModel{
			ActivityName:   fmt.Sprintf("Event %d", i+1),
			ActivityPoints: pts,
			ActivityTerm:   "HK1",
		}
		if err := db.Create(&activity).Error; err != nil {
			t.Fatalf("create activity: %v", err)
		}
		sub := model.ActivitySubmissionModel{
			SubmissionStudentID:   student.StudentID,
			SubmissionActivityID:  activity.ActivityID,
			SubmissionEvidenceURL: "https://evidence.example/x.jpg",
		}
		if err := db.Create(&sub).Error; err != nil {
			t.Fatalf("create submission: %v", err)
		}
		ids = append(ids, sub.SubmissionID.String())
	}

	// Both approvals race through the transition + recompute transaction for
	// the same (student, term). Neither contribution may be lost.
	var wg sync.WaitGroup
	statuses := make([]int, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/activity-submissions/"+id+"/approve", nil)
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Errorf("app.Test: %v", err)
				return
			}
			statuses[i] = resp.StatusCode
		}(i, id)
	}
	wg.Wait()

	for i, code := range statuses {
		if code != http.StatusOK {
			t.Errorf("approve #%d status = %d, want 200", i+1, code)
		}
	}

	var summary summarymodel.TrainingScoreSummaryModel
	if err := db.Where("summary_student_id = ? AND summary_term = ?", student.StudentID, "HK1").
		Take(&summary).Error; err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if summary.SummaryActivityBonus != 8 || summary.SummaryTotal != 8 {
		t.Errorf("bonus/total = %d/%d after concurrent approvals, want 8/8",
			summary.SummaryActivityBonus, summary.SummaryTotal)
	}

	var approved int64
	db.Model(&model.ActivitySubmissionModel{}).
		Where("submission_student_id = ?", student.StudentID).
		Where("submission_status = ?", constants.SubmissionApproved).
		Count(&approved)
	if approved != 2 {
		t.Errorf("approved count = %d, want 2", approved)
	}
}

func TestApproveUnknownSubmission(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newApproveApp(db)

	resp := approve(t, app, uuid.NewString())
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}

	resp = approve(t, app, "not-a-uuid")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status for malformed id = %d, want 400", resp.StatusCode)
	}
}
