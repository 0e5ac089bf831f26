package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisteredCourse struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID     uuid.UUID `gorm:"not null" json:"student_id"`
	CourseID      uuid.UUID `gorm:"not null" json:"course_id"`
	ContactNumber string    `gorm:"size:30" json:"contact_number"`
	PaymentMethod string    `gorm:"size:50" json:"payment_method"`
	TransactionID string    `gorm:"size:100" json:"transaction_id"`
	Status        string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	Student User         `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Course  SkillListing `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RegisteredCourse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
