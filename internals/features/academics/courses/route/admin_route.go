package route

import (
	ctrl "quanlysinhvien_backend/internals/features/academics/courses/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CourseAdminRoutes(r fiber.Router, db *gorm.DB) {
	courseController := ctrl.NewCourseController(db)

	group := r.Group("/courses")
	group.Post("/", courseController.Create)
	group.Post("/bulk", courseController.BulkUpsert)
	group.Patch("/:code", courseController.Update)
	group.Delete("/:code", courseController.Delete)
}
