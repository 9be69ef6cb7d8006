package route

import (
	ctrl "quanlysinhvien_backend/internals/features/academics/courses/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CourseUserRoutes(r fiber.Router, db *gorm.DB) {
	courseController := ctrl.NewCourseController(db)

	group := r.Group("/courses")
	group.Get("/", courseController.List)
}
