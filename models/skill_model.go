package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Skill struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	Name            string                      `gorm:"size:255;not null;unique" json:"name"`
	Description     string                      `gorm:"type:text" json:"description"`
	Category        string                      `gorm:"size:100" json:"category"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	Level           string                      `gorm:"size:50" json:"level"`
	YearsExperience int                         `gorm:"default:0" json:"years_experience"`

	// Populated by nothing yet; listings carry the maintained aggregate.
	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	TotalRatings  int     `gorm:"default:0" json:"total_ratings"`

	CreatorID uuid.UUID `gorm:"not null" json:"creator_id"`
	Creator   User      `gorm:"foreignkey:CreatorID" json:"creator,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
