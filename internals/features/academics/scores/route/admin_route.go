package route

import (
	ctrl "quanlysinhvien_backend/internals/features/academics/scores/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AcademicScoreAdminRoutes(r fiber.Router, db *gorm.DB) {
	scoreController := ctrl.NewAcademicScoreController(db)

	group := r.Group("/academic-scores")
	group.Post("/", scoreController.Create)
	group.Post("/bulk", scoreController.BulkUpsert)
	group.Patch("/:id", scoreController.Update)
	group.Delete("/:id", scoreController.Delete)
}
