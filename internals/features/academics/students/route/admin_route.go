package route

import (
	ctrl "quanlysinhvien_backend/internals/features/academics/students/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	studentController := ctrl.NewStudentController(db)

	group := r.Group("/students")
	group.Post("/", studentController.Create)
	group.Post("/bulk", studentController.BulkUpsert)
	group.Patch("/:code", studentController.Update)
	group.Delete("/:code", studentController.Delete)
}
