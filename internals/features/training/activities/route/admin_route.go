package route

import (
	ctrl "quanlysinhvien_backend/internals/features/training/activities/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ActivityAdminRoutes(r fiber.Router, db *gorm.DB) {
	activityController := ctrl.NewActivityController(db)

	group := r.Group("/activities")
	group.Post("/", activityController.Create)
	group.Put("/:id", activityController.Update) // fans out recompute to affected students
	group.Delete("/:id", activityController.Delete)
}
