package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LearnerID  uuid.UUID `gorm:"not null" json:"learner_id"`
	TeacherID  uuid.UUID `gorm:"not null" json:"teacher_id"`
	ListingID  uuid.UUID `gorm:"not null" json:"listing_id"`
	ReviewText string    `gorm:"type:text;not null" json:"review_text"`
	Rating     int       `gorm:"not null" json:"rating"`

	Learner User         `gorm:"foreignkey:LearnerID" json:"learner,omitempty"`
	Teacher User         `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Listing SkillListing `gorm:"foreignkey:ListingID" json:"listing,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
