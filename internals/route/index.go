// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quanlysinhvien_backend/internals/constants"
	courseRoute "quanlysinhvien_backend/internals/features/academics/courses/route"
	scoreRoute "quanlysinhvien_backend/internals/features/academics/scores/route"
	studentRoute "quanlysinhvien_backend/internals/features/academics/students/route"
	activityRoute "quanlysinhvien_backend/internals/features/training/activities/route"
	submissionRoute "quanlysinhvien_backend/internals/features/training/submissions/route"
	summaryRoute "quanlysinhvien_backend/internals/features/training/summaries/route"
	authRoute "quanlysinhvien_backend/internals/features/users/auth/route"
	authMiddleware "quanlysinhvien_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes wires the three surfaces:
//
//	/api/auth  public (login, refresh)
//	/api/u     any authenticated account
//	/api/a     admin accounts only
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up PUBLIC auth routes...")
	public := app.Group("/api")
	authRoute.AuthPublicRoutes(public, db)

	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	authRoute.AuthProtectedRoutes(user, db)
	studentRoute.StudentUserRoutes(user, db)
	courseRoute.CourseUserRoutes(user, db)
	scoreRoute.AcademicScoreUserRoutes(user, db)
	activityRoute.ActivityUserRoutes(user, db)
	submissionRoute.ActivitySubmissionUserRoutes(user, db)
	summaryRoute.TrainingScoreSummaryUserRoutes(user, db)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("this area"), constants.RoleAdmin),
	)
	studentRoute.StudentAdminRoutes(admin, db)
	courseRoute.CourseAdminRoutes(admin, db)
	scoreRoute.AcademicScoreAdminRoutes(admin, db)
	activityRoute.ActivityAdminRoutes(admin, db)
	submissionRoute.ActivitySubmissionAdminRoutes(admin, db)
	summaryRoute.TrainingScoreSummaryAdminRoutes(admin, db)
}
