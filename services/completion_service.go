package services

import (
	"math"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/google/uuid"
)

// CourseCompletion is computed on the fly from the sessions of one
// (learner, teacher, listing) triple; nothing is stored.
type CourseCompletion struct {
	TotalSessions     int64 `json:"total_sessions"`
	CompletedSessions int64 `json:"completed_sessions"`
	Progress          int   `json:"progress"`
	IsCompleted       bool  `json:"is_completed"`
	CanRate           bool  `json:"can_rate"`
	CanReview         bool  `json:"can_review"`
}

// ComputeCourseCompletion reports completion for a triple. Zero sessions is
// not an error: the course is simply not completed.
func ComputeCourseCompletion(learnerID, teacherID, listingID uuid.UUID) (CourseCompletion, error) {
	var completion CourseCompletion

	if err := database.DB.Model(&models.Session{}).
		Where("learner_id = ? AND teacher_id = ? AND skill_listing_id = ?", learnerID, teacherID, listingID).
		Count(&completion.TotalSessions).Error; err != nil {
		return completion, err
	}
	if err := database.DB.Model(&models.Session{}).
		Where("learner_id = ? AND teacher_id = ? AND skill_listing_id = ? AND status = ?", learnerID, teacherID, listingID, "completed").
		Count(&completion.CompletedSessions).Error; err != nil {
		return completion, err
	}

	if completion.TotalSessions > 0 {
		completion.Progress = int(math.Round(100 * float64(completion.CompletedSessions) / float64(completion.TotalSessions)))
		completion.IsCompleted = completion.CompletedSessions == completion.TotalSessions
	}
	completion.CanRate = completion.IsCompleted
	completion.CanReview = completion.IsCompleted

	return completion, nil
}
