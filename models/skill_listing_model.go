package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentMethod struct {
	Name    string `json:"name"`
	Account string `json:"account"`
}

type SkillListing struct {
	ID             uuid.UUID                          `gorm:"type:uuid;primary_key" json:"id"`
	Title          string                             `gorm:"size:255;not null" json:"title"`
	Description    string                             `gorm:"type:text" json:"description"`
	Fee            float64                            `gorm:"type:numeric(10,2);not null" json:"fee"`
	Duration       string                             `gorm:"size:50" json:"duration"`
	PaymentMethods datatypes.JSONSlice[PaymentMethod] `json:"payment_methods"`
	Proficiency    string                             `gorm:"size:50" json:"proficiency"`
	AverageRating  float64                            `gorm:"default:0" json:"average_rating"`
	ListingImgURL  *string                            `gorm:"size:255" json:"listing_img_url"`

	// Clock times ("15:04") a learner can still book; consumed on
	// reschedule acceptance.
	AvailableSlots datatypes.JSONSlice[string] `json:"available_slots"`

	TeacherID uuid.UUID `gorm:"not null" json:"teacher_id"`
	SkillID   uuid.UUID `gorm:"not null" json:"skill_id"`
	Teacher   User      `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Skill     Skill     `gorm:"foreignkey:SkillID" json:"skill,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *SkillListing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
