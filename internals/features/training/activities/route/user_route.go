package route

import (
	ctrl "quanlysinhvien_backend/internals/features/training/activities/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ActivityUserRoutes(r fiber.Router, db *gorm.DB) {
	activityController := ctrl.NewActivityController(db)

	group := r.Group("/activities")
	group.Get("/", activityController.List)
}
