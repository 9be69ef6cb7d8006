package route

import (
	ctrl "quanlysinhvien_backend/internals/features/training/submissions/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ActivitySubmissionAdminRoutes(r fiber.Router, db *gorm.DB) {
	submissionController := ctrl.NewActivitySubmissionController(db)

	group := r.Group("/activity-submissions")
	group.Get("/pending", submissionController.ListPending)
	group.Post("/:id/approve", submissionController.Approve)
	group.Delete("/:id", submissionController.Delete)
}
