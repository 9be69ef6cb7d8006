// file: internals/features/training/activities/service/recompute_coordinator.go
package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quanlysinhvien_backend/internals/constants"
	summaryservice "quanlysinhvien_backend/internals/features/training/summaries/service"
)

/* ========================================================
   Retroactive recompute

   Editing an activity's point value or term invalidates every summary built
   from its approved submissions. The coordinator fans the recompute out to
   each affected student; failures are collected per student, never aborting
   the rest of the batch.
======================================================== */

type RecomputeCoordinator struct {
	DB         *gorm.DB
	Aggregator *summaryservice.AggregationService
}

func NewRecomputeCoordinator(db *gorm.DB) *RecomputeCoordinator {
	return &RecomputeCoordinator{
		DB:         db,
		Aggregator: summaryservice.NewAggregationService(db),
	}
}

type RecomputeFailure struct {
	StudentID uuid.UUID `json:"student_id"`
	Term      string    `json:"term"`
	Message   string    `json:"message"`
}

// OnActivityChanged recomputes (student, oldTerm) for every student with an
// approved submission of the activity, plus (student, newTerm) when the
// activity moved buckets. Each recompute runs in its own transaction.
func (s *RecomputeCoordinator) OnActivityChanged(activityID uuid.UUID, oldTerm, newTerm string) ([]RecomputeFailure, error) {
	var studentIDs []uuid.UUID
	err := s.DB.Table("activity_submissions").
		Distinct("submission_student_id").
		Where("submission_activity_id = ?", activityID).
		Where("submission_status = ?", constants.SubmissionApproved).
		Pluck("submission_student_id", &studentIDs).Error
	if err != nil {
		return nil, err
	}

	var failures []RecomputeFailure
	for _, studentID := range studentIDs {
		terms := []string{oldTerm}
		if newTerm != oldTerm {
			terms = append(terms, newTerm)
		}
		for _, term := range terms {
			err := s.DB.Transaction(func(tx *gorm.DB) error {
				_, err := s.Aggregator.Recompute(tx, studentID, term)
				return err
			})
			if err != nil {
				log.Printf("[ERROR] recompute student=%s term=%s: %v", studentID, term, err)
				failures = append(failures, RecomputeFailure{
					StudentID: studentID,
					Term:      term,
					Message:   err.Error(),
				})
			}
		}
	}
	return failures, nil
}
