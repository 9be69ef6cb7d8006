package route

import (
	ctrl "quanlysinhvien_backend/internals/features/training/summaries/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TrainingScoreSummaryAdminRoutes(r fiber.Router, db *gorm.DB) {
	summaryController := ctrl.NewTrainingScoreSummaryController(db)

	group := r.Group("/training-score-summaries")
	group.Post("/", summaryController.Upsert)        // base/deduction upsert (re-runs the engine)
	group.Post("/bulk", summaryController.BulkUpsert)
	group.Delete("/:id", summaryController.Delete)
}
