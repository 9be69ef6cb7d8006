package route

import (
	ctrl "quanlysinhvien_backend/internals/features/training/submissions/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ActivitySubmissionUserRoutes(r fiber.Router, db *gorm.DB) {
	submissionController := ctrl.NewActivitySubmissionController(db)

	group := r.Group("/activity-submissions")
	group.Post("/", submissionController.Submit)
	group.Get("/me", submissionController.ListMine)
}
