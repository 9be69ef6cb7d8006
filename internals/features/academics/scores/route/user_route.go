package route

import (
	ctrl "quanlysinhvien_backend/internals/features/academics/scores/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AcademicScoreUserRoutes(r fiber.Router, db *gorm.DB) {
	scoreController := ctrl.NewAcademicScoreController(db)

	group := r.Group("/academic-scores")
	group.Get("/", scoreController.List)
}
