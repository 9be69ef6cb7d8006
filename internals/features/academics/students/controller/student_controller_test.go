package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	scoremodel "quanlysinhvien_backend/internals/features/academics/scores/model"
	model "quanlysinhvien_backend/internals/features/academics/students/model"
	submissionmodel "quanlysinhvien_backend/internals/features/training/submissions/model"
	summarymodel "quanlysinhvien_backend/internals/features/training/summaries/model"
	authmodel "quanlysinhvien_backend/internals/features/users/auth/model"
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
		&model.StudentModel{},
		&scoremodel.AcademicScoreModel{},
		&submissionmodel.ActivitySubmissionModel{},
		&summarymodel.TrainingScoreSummaryModel{},
		&authmodel.UserModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newStudentApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ctl := NewStudentController(db)
	app.Delete("/students/:code", ctl.Delete)
	return app
}

func TestDeleteStudentCascades(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newStudentApp(db)

	student := model.StudentModel{StudentCode: "SV501", StudentName: "Nguyễn Văn An"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}

	score := scoremodel.AcademicScoreModel{
		AcademicScoreStudentID: student.StudentID,
		AcademicScoreCourseID:  uuid.New(),
		AcademicScoreProcess:   7,
		AcademicScoreExam:      8,
	}
	if err := db.Create(&score).Error; err != nil {
		t.Fatalf("create score: %v", err)
	}
	sub := submissionmodel.ActivitySubmissionModel{
		SubmissionStudentID:   student.StudentID,
		SubmissionActivityID:  uuid.New(),
		SubmissionEvidenceURL: "https://evidence.example/x.jpg",
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}
	summary := summarymodel.TrainingScoreSummaryModel{
		SummaryStudentID: student.StudentID,
		SummaryTerm:      "HK1",
		SummaryBaseScore: 70,
		SummaryTotal:     70,
	}
	if err := db.Create(&summary).Error; err != nil {
		t.Fatalf("create summary: %v", err)
	}
	code := student.StudentCode
	account := authmodel.UserModel{
		UserUsername:     "anSV501",
		UserPasswordHash: "x",
		UserRole:         "viewer",
		UserStudentCode:  &code,
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/students/SV501", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	for table, q := range map[string]*gorm.DB{
		"students":    db.Model(&model.StudentModel{}),
		"scores":      db.Model(&scoremodel.AcademicScoreModel{}),
		"submissions": db.Model(&submissionmodel.ActivitySubmissionModel{}),
		"summaries":   db.Model(&summarymodel.TrainingScoreSummaryModel{}),
		"users":       db.Model(&authmodel.UserModel{}),
	} {
		var n int64
		if err := q.Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s count = %d after delete, want 0", table, n)
		}
	}
}

func TestDeleteStudentKeepsUnrelatedAccount(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newStudentApp(db)

	student := model.StudentModel{StudentCode: "SV502", StudentName: "Trần Thị Bình"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	code := student.StudentCode
	viewer := authmodel.UserModel{
		UserUsername: "binhSV502", UserPasswordHash: "x", UserRole: "viewer", UserStudentCode: &code,
	}
	if err := db.Create(&viewer).Error; err != nil {
		t.Fatalf("create viewer: %v", err)
	}
	admin := authmodel.UserModel{
		UserUsername: "admin", UserPasswordHash: "x", UserRole: "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/students/SV502", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var left []authmodel.UserModel
	if err := db.Find(&left).Error; err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(left) != 1 || left[0].UserUsername != "admin" {
		t.Errorf("remaining accounts = %+v, want only admin", left)
	}
}

func TestDeleteUnknownStudent(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newStudentApp(db)

	req := httptest.NewRequest(http.MethodDelete, "/students/SV999", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
