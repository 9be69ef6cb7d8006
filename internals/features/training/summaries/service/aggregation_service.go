// file: internals/features/training/summaries/service/aggregation_service.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quanlysinhvien_backend/internals/constants"
	helper "quanlysinhvien_backend/internals/helpers"
	model "quanlysinhvien_backend/internals/features/training/summaries/model"
)

/* ========================================================
   Aggregation engine

   Recompute folds the approved activity submissions of one (student, term)
   into the persisted summary row. The result is a pure function of the
   current approved-submission state plus the stored base score / deduction,
   so re-running it with nothing changed writes the same row again.
======================================================== */

type AggregationService struct {
	DB *gorm.DB
}

func NewAggregationService(db *gorm.DB) *AggregationService {
	return &AggregationService{DB: db}
}

// lockForUpdate takes a row lock on postgres. sqlite (dev/tests) rejects
// FOR UPDATE and already serializes writers at the database level.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Recompute recalculates summary_activity_bonus and summary_total for
// (studentID, term) and upserts the summary row. base score and deduction
// are never touched here; a row created lazily starts both at 0.
//
// tx may be nil (runs on s.DB) or an open transaction, e.g. the approval
// transaction, so the bonus is summed read-after-write against the freshly
// transitioned submission.
func (s *AggregationService) Recompute(tx *gorm.DB, studentID uuid.UUID, term string) (*model.TrainingScoreSummaryModel, error) {
	db := s.DB
	if tx != nil {
		db = tx
	}

	// Locking read of the student row: serializes concurrent recomputes for
	// the same student even before a summary row exists, and doubles as the
	// existence check.
	var locked struct {
		StudentID uuid.UUID `gorm:"column:student_id"`
	}
	err := lockForUpdate(db).
		Table("students").
		Select("student_id").
		Where("student_id = ?", studentID).
		Take(&locked).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: student %s", helper.ErrNotFound, studentID)
	}
	if err != nil {
		return nil, err
	}

	// Activity bonus: approved submissions whose activity term contains the
	// target term. Substring matching is the documented behavior (a
	// sub-labelled activity such as "HK1-DotA" still lands in the "HK1"
	// bucket).
	var bonus int
	err = db.Table("activity_submissions").
		Joins("JOIN activities ON activities.activity_id = activity_submissions.submission_activity_id").
		Where("activity_submissions.submission_student_id = ?", studentID).
		Where("activity_submissions.submission_status = ?", constants.SubmissionApproved).
		Where("activities.activity_term LIKE ?", "%"+term+"%").
		Select("COALESCE(SUM(activities.activity_points), 0)").
		Scan(&bonus).Error
	if err != nil {
		return nil, err
	}

	// Existing base score / deduction; both 0 when the row is created lazily.
	baseScore, deduction := 0, 0
	var existing model.TrainingScoreSummaryModel
	err = db.Where("summary_student_id = ? AND summary_term = ?", studentID, term).
		Take(&existing).Error
	switch err {
	case nil:
		baseScore = existing.SummaryBaseScore
		deduction = existing.SummaryDeduction
	case gorm.ErrRecordNotFound:
		// lazy creation below
	default:
		return nil, err
	}

	row := model.TrainingScoreSummaryModel{
		SummaryStudentID:     studentID,
		SummaryTerm:          term,
		SummaryBaseScore:     baseScore,
		SummaryActivityBonus: bonus,
		SummaryDeduction:     deduction,
		SummaryTotal:         baseScore + bonus - deduction,
	}

	// Race-safe upsert; on conflict the total is recomputed in SQL against
	// the stored base score / deduction so a concurrent base edit cannot be
	// clobbered with a stale value.
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "summary_student_id"}, {Name: "summary_term"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"summary_activity_bonus": bonus,
			"summary_total": gorm.Expr(
				"training_score_summaries.summary_base_score + ? - training_score_summaries.summary_deduction", bonus),
			"summary_updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var out model.TrainingScoreSummaryModel
	if err := db.Where("summary_student_id = ? AND summary_term = ?", studentID, term).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// SetBaseAndDeduction is the admin edit path for the two manual components.
// It writes them and re-runs Recompute in the same transaction so
// summary_total can never drift from its parts.
func (s *AggregationService) SetBaseAndDeduction(studentID uuid.UUID, term string, baseScore, deduction int) (*model.TrainingScoreSummaryModel, error) {
	var out *model.TrainingScoreSummaryModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TrainingScoreSummaryModel{}).
			Where("summary_student_id = ? AND summary_term = ?", studentID, term).
			Updates(map[string]interface{}{
				"summary_base_score": baseScore,
				"summary_deduction":  deduction,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			row := model.TrainingScoreSummaryModel{
				SummaryStudentID: studentID,
				SummaryTerm:      term,
				SummaryBaseScore: baseScore,
				SummaryDeduction: deduction,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		summary, err := s.Recompute(tx, studentID, term)
		if err != nil {
			return err
		}
		out = summary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
