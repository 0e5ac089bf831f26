package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RescheduleRequest is a pending proposal from the teacher; NewTime == nil
// means no proposal is open.
type RescheduleRequest struct {
	NewDate     *string    `gorm:"size:10" json:"new_date"`
	NewTime     *string    `gorm:"size:5" json:"new_time"`
	RequestedAt *time.Time `json:"requested_at"`
}

type Session struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LearnerID      uuid.UUID `gorm:"not null" json:"learner_id"`
	TeacherID      uuid.UUID `gorm:"not null" json:"teacher_id"`
	SkillListingID uuid.UUID `gorm:"not null" json:"skill_listing_id"`

	ScheduledTime time.Time `gorm:"not null" json:"scheduled_time"`
	Status        string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Note          *string   `gorm:"type:text" json:"note"`

	// Snapshot of the listing at booking time.
	SkillName *string  `gorm:"size:255" json:"skill_name"`
	Price     *float64 `gorm:"type:numeric(10,2)" json:"price"`

	Reschedule RescheduleRequest `gorm:"embedded;embeddedPrefix:reschedule_" json:"reschedule_request"`

	Learner      User         `gorm:"foreignkey:LearnerID" json:"learner,omitempty"`
	Teacher      User         `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	SkillListing SkillListing `gorm:"foreignkey:SkillListingID" json:"skill_listing,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
