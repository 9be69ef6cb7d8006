package route

import (
	ctrl "quanlysinhvien_backend/internals/features/training/summaries/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TrainingScoreSummaryUserRoutes(r fiber.Router, db *gorm.DB) {
	summaryController := ctrl.NewTrainingScoreSummaryController(db)

	group := r.Group("/training-score-summaries")
	group.Get("/", summaryController.List)
	group.Get("/:id", summaryController.GetByID)
}
