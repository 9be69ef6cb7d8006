package database

import (
	"log"

	"gorm.io/gorm"

	courseModel "quanlysinhvien_backend/internals/features/academics/courses/model"
	scoreModel "quanlysinhvien_backend/internals/features/academics/scores/model"
	studentModel "quanlysinhvien_backend/internals/features/academics/students/model"
	activityModel "quanlysinhvien_backend/internals/features/training/activities/model"
	submissionModel "quanlysinhvien_backend/internals/features/training/submissions/model"
	summaryModel "quanlysinhvien_backend/internals/features/training/summaries/model"
	authModel "quanlysinhvien_backend/internals/features/users/auth/model"
)

// MigrateAll creates or updates every table the app owns. Run it behind
// AUTO_MIGRATE=true; production schemas are managed with SQL migrations.
func MigrateAll(db *gorm.DB) error {
	log.Println("🔧 Running auto-migration...")
	return db.AutoMigrate(
		&studentModel.StudentModel{},
		&courseModel.CourseModel{},
		&scoreModel.AcademicScoreModel{},
		&activityModel.ActivityModel{},
		&submissionModel.ActivitySubmissionModel{},
		&summaryModel.TrainingScoreSummaryModel{},
		&authModel.UserModel{},
		&authModel.TokenBlacklist{},
		&authModel.RefreshTokenModel{},
	)
}
