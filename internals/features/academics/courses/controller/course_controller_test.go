package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	coursemodel "quanlysinhvien_backend/internals/features/academics/courses/model"
	scoremodel "quanlysinhvien_backend/internals/features/academics/scores/model"
	studentmodel "quanlysinhvien_backend/internals/features/academics/students/model"
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
		&coursemodel.CourseModel{},
		&scoremodel.AcademicScoreModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newCourseApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ctl := NewCourseController(db)
	app.Post("/courses", ctl.Create)
	app.Delete("/courses/:code", ctl.Delete)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestCheckWeights(t *testing.T) {
	t.Parallel()

	valid := [][2]float64{{0.4, 0.6}, {0.5, 0.5}, {0, 1}, {0.3, 0.7}}
	for _, pair := range valid {
		if err := checkWeights(pair[0], pair[1]); err != nil {
			t.Errorf("checkWeights(%v, %v) = %v, want nil", pair[0], pair[1], err)
		}
	}

	invalid := [][2]float64{{0.4, 0.4}, {0.7, 0.7}, {0, 0}, {1, 1}}
	for _, pair := range invalid {
		if err := checkWeights(pair[0], pair[1]); err == nil {
			t.Errorf("checkWeights(%v, %v) = nil, want error", pair[0], pair[1])
		}
	}
}

func TestCreateCourseRejectsBadWeights(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newCourseApp(db)

	resp := postJSON(t, app, "/courses", map[string]interface{}{
		"course_code":    "MATH1",
		"course_name":    "Calculus",
		"credits":        3,
		"term":           "HK1",
		"process_weight": 0.4,
		"exam_weight":    0.4,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for weights not summing to 1.0", resp.StatusCode)
	}

	var count int64
	db.Model(&coursemodel.CourseModel{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid course was persisted")
	}
}

func TestCreateCourseAndDuplicate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newCourseApp(db)

	body := map[string]interface{}{
		"course_code":    "PROG1",
		"course_name":    "Programming 1",
		"credits":        4,
		"term":           "HK1",
		"process_weight": 0.3,
		"exam_weight":    0.7,
	}
	if resp := postJSON(t, app, "/courses", body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/courses", body); resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}
}

func TestDeleteCourseWithScoresRefused(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	app := newCourseApp(db)

	student := studentmodel.StudentModel{StudentCode: "SV401", StudentName: "A"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	course := coursemodel.CourseModel{
		CourseCode: "PHYS1", CourseName: "Physics", CourseCredits: 3,
		CourseTerm: "HK1", CourseProcessWeight: 0.5, CourseExamWeight: 0.5,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	score := scoremodel.AcademicScoreModel{
		AcademicScoreStudentID: student.StudentID,
		AcademicScoreCourseID:  course.CourseID,
		AcademicScoreProcess:   7,
		AcademicScoreExam:      8,
	}
	if err := db.Create(&score).Error; err != nil {
		t.Fatalf("create score: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/courses/PHYS1", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409 when scores reference the course", resp.StatusCode)
	}

	var count int64
	db.Model(&coursemodel.CourseModel{}).Count(&count)
	if count != 1 {
		t.Errorf("course was deleted despite referencing scores")
	}
}
