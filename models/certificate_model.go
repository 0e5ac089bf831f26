package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LearnerID      uuid.UUID `gorm:"not null" json:"learner_id"`
	TeacherID      uuid.UUID `gorm:"not null" json:"teacher_id"`
	ListingID      uuid.UUID `gorm:"not null" json:"listing_id"`
	CourseTitle    string    `gorm:"size:255;not null" json:"course_title"`
	CompletionDate time.Time `json:"completion_date"`
	CertificateURL string    `gorm:"size:255" json:"certificate_url"`

	Learner User         `gorm:"foreignkey:LearnerID" json:"learner,omitempty"`
	Teacher User         `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Listing SkillListing `gorm:"foreignkey:ListingID" json:"listing,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
