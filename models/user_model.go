package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Phone    *string   `gorm:"size:30" json:"phone"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'learner'" json:"role"`

	Bio               *string                     `gorm:"type:text" json:"bio"`
	Skills            datatypes.JSONSlice[string] `json:"skills"`
	ProfilePictureURL *string                     `gorm:"size:255" json:"profile_picture_url"`
	ResumeURL         *string                     `gorm:"size:255" json:"resume_url"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`
	IsActive                    bool       `gorm:"default:true" json:"-"`

	Chats []*Chat `gorm:"many2many:chat_users;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
