package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quanlysinhvien_backend/internals/constants"
	studentmodel "quanlysinhvien_backend/internals/features/academics/students/model"
	activitymodel "quanlysinhvien_backend/internals/features/training/activities/model"
	submissionmodel "quanlysinhvien_backend/internals/features/training/submissions/model"
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
		&submissionmodel.ActivitySubmissionModel{},
		&summarymodel.TrainingScoreSummaryModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedApproved(t *testing.T, db *gorm.DB, code string, activityID uuid.UUID) *studentmodel.StudentModel {
	t.Helper()
	student := studentmodel.StudentModel{StudentCode: code, StudentName: "Student " + code}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	sub := submissionmodel.ActivitySubmissionModel{
		SubmissionStudentID:   student.StudentID,
		SubmissionActivityID:  activityID,
		SubmissionEvidenceURL: "https://evidence.example/x.jpg",
		SubmissionStatus:      constants.SubmissionApproved,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}
	return &student
}

func summaryOf(t *testing.T, db *gorm.DB, studentID uuid.UUID, term string) *summarymodel.TrainingScoreSummaryModel {
	t.Helper()
	var out summarymodel.TrainingScoreSummaryModel
	if err := db.Where("summary_student_id = ? AND summary_term = ?", studentID, term).
		Take(&out).Error; err != nil {
		t.Fatalf("read summary %s/%s: %v", studentID, term, err)
	}
	return &out
}

func TestOnActivityChangedPointEdit(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	coord := NewRecomputeCoordinator(db)

	activity := activitymodel.ActivityModel{ActivityName: "Blood donation", ActivityPoints: 5, ActivityTerm: "HK1"}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("create activity: %v", err)
	}
	a := seedApproved(t, db, "SV101", activity.ActivityID)
	b := seedApproved(t, db, "SV102", activity.ActivityID)

	// Untouched student with a bonus from a different activity.
	other := activitymodel.ActivityModel{ActivityName: "Other", ActivityPoints: 2, ActivityTerm: "HK1"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create other activity: %v", err)
	}
	c := seedApproved(t, db, "SV103", other.ActivityID)

	for _, s := range []*studentmodel.StudentModel{a, b, c} {
		if _, err := coord.Aggregator.Recompute(nil, s.StudentID, "HK1"); err != nil {
			t.Fatalf("initial recompute: %v", err)
		}
	}

	if err := db.Model(&activity).Update("activity_points", 8).Error; err != nil {
		t.Fatalf("edit points: %v", err)
	}
	failures, err := coord.OnActivityChanged(activity.ActivityID, "HK1", "HK1")
	if err != nil {
		t.Fatalf("OnActivityChanged: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %+v", failures)
	}

	if got := summaryOf(t, db, a.StudentID, "HK1"); got.SummaryActivityBonus != 8 {
		t.Errorf("student A bonus = %d, want 8", got.SummaryActivityBonus)
	}
	if got := summaryOf(t, db, b.StudentID, "HK1"); got.SummaryActivityBonus != 8 {
		t.Errorf("student B bonus = %d, want 8", got.SummaryActivityBonus)
	}
	if got := summaryOf(t, db, c.StudentID, "HK1"); got.SummaryActivityBonus != 2 {
		t.Errorf("unrelated student bonus = %d, want 2 (must stay untouched)", got.SummaryActivityBonus)
	}
}

func TestOnActivityChangedTermMove(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	coord := NewRecomputeCoordinator(db)

	activity := activitymodel.ActivityModel{ActivityName: "Career fair", ActivityPoints: 6, ActivityTerm: "HK1"}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("create activity: %v", err)
	}
	student := seedApproved(t, db, "SV110", activity.ActivityID)
	if _, err := coord.Aggregator.Recompute(nil, student.StudentID, "HK1"); err != nil {
		t.Fatalf("initial recompute: %v", err)
	}

	if err := db.Model(&activity).Update("activity_term", "HK2").Error; err != nil {
		t.Fatalf("move term: %v", err)
	}
	failures, err := coord.OnActivityChanged(activity.ActivityID, "HK1", "HK2")
	if err != nil {
		t.Fatalf("OnActivityChanged: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %+v", failures)
	}

	if got := summaryOf(t, db, student.StudentID, "HK1"); got.SummaryActivityBonus != 0 {
		t.Errorf("old bucket bonus = %d, want 0 after term move", got.SummaryActivityBonus)
	}
	if got := summaryOf(t, db, student.StudentID, "HK2"); got.SummaryActivityBonus != 6 {
		t.Errorf("new bucket bonus = %d, want 6 after term move", got.SummaryActivityBonus)
	}
}

func TestOnActivityChangedNoApprovedSubmissions(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	coord := NewRecomputeCoordinator(db)

	activity := activitymodel.ActivityModel{ActivityName: "Unused", ActivityPoints: 3, ActivityTerm: "HK1"}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("create activity: %v", err)
	}

	failures, err := coord.OnActivityChanged(activity.ActivityID, "HK1", "HK1")
	if err != nil {
		t.Fatalf("OnActivityChanged: %v", err)
	}
	if len(failures) != 0 {
		t.Errorf("no students affected, expected no failures, got %+v", failures)
	}

	var count int64
	db.Model(&summarymodel.TrainingScoreSummaryModel{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no summary rows, got %d", count)
	}
}
