package service

import (
	"fmt"
	"math"
	"strings"
	"testing"

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

func addCourseScore(t *testing.T, db *gorm.DB, student *studentmodel.StudentModel,
	code, name, term string, credits int, pw, ew, process, exam float64) {
	t.Helper()

	course := coursemodel.CourseModel{
		CourseCode:          code,
		CourseName:          name,
		CourseCredits:       credits,
		CourseTerm:          term,
		CourseProcessWeight: pw,
		CourseExamWeight:    ew,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course %s: %v", code, err)
	}
	score := scoremodel.AcademicScoreModel{
		AcademicScoreStudentID: student.StudentID,
		AcademicScoreCourseID:  course.CourseID,
		AcademicScoreProcess:   process,
		AcademicScoreExam:      exam,
	}
	if err := db.Create(&score).Error; err != nil {
		t.Fatalf("create score for %s: %v", code, err)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGPAByTermWeighting(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewGPAService(db)

	student := studentmodel.StudentModel{StudentCode: "SV201", StudentName: "A"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}

	// HK1: (0.4*6 + 0.6*8 = 7.2, 3 credits) and (0.5*4 + 0.5*6 = 5.0, 2 credits)
	addCourseScore(t, db, &student, "MATH1", "Calculus", "HK1", 3, 0.4, 0.6, 6, 8)
	addCourseScore(t, db, &student, "PHYS1", "Physics", "HK1", 2, 0.5, 0.5, 4, 6)
	// HK2: single course
	addCourseScore(t, db, &student, "PROG2", "Programming", "HK2", 4, 0.3, 0.7, 9, 8)

	terms, err := svc.GPAByTerm(student.StudentID)
	if err != nil {
		t.Fatalf("GPAByTerm: %v", err)
	}
	if len(terms) != 2 {
		t.Fatalf("got %d term buckets, want 2", len(terms))
	}

	hk1 := terms[0]
	if hk1.Term != "HK1" {
		t.Fatalf("first bucket = %q, want HK1 (ordered by term)", hk1.Term)
	}
	if hk1.TotalCredits != 5 {
		t.Errorf("HK1 credits = %d, want 5", hk1.TotalCredits)
	}
	wantHK1 := (7.2*3 + 5.0*2) / 5
	if !almostEqual(hk1.GPA, wantHK1) {
		t.Errorf("HK1 GPA = %v, want %v", hk1.GPA, wantHK1)
	}

	hk2 := terms[1]
	wantHK2 := 0.3*9 + 0.7*8
	if !almostEqual(hk2.GPA, wantHK2) {
		t.Errorf("HK2 GPA = %v, want %v", hk2.GPA, wantHK2)
	}
	if len(hk2.Scores) != 1 || !almostEqual(hk2.Scores[0].CourseAverage, wantHK2) {
		t.Errorf("HK2 course average not folded into scores: %+v", hk2.Scores)
	}
}

func TestGPAByTermZeroCredits(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewGPAService(db)

	student := studentmodel.StudentModel{StudentCode: "SV202", StudentName: "B"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	addCourseScore(t, db, &student, "PE1", "Physical education", "HK1", 0, 0.5, 0.5, 8, 9)

	terms, err := svc.GPAByTerm(student.StudentID)
	if err != nil {
		t.Fatalf("GPAByTerm: %v", err)
	}
	if len(terms) != 1 {
		t.Fatalf("got %d buckets, want 1", len(terms))
	}
	if terms[0].GPA != 0 {
		t.Errorf("zero-credit term GPA = %v, want 0 (no division by zero)", terms[0].GPA)
	}
}

func TestGPAByTermNoScores(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewGPAService(db)

	student := studentmodel.StudentModel{StudentCode: "SV203", StudentName: "C"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}

	terms, err := svc.GPAByTerm(student.StudentID)
	if err != nil {
		t.Fatalf("GPAByTerm: %v", err)
	}
	if len(terms) != 0 {
		t.Errorf("expected no buckets for a student without scores, got %+v", terms)
	}
}
