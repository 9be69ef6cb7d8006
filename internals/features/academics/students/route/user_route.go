package route

import (
	ctrl "quanlysinhvien_backend/internals/features/academics/students/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StudentUserRoutes(r fiber.Router, db *gorm.DB) {
	studentController := ctrl.NewStudentController(db)

	group := r.Group("/students")
	group.Get("/", studentController.List)
	group.Get("/:code", studentController.Detail)
}
