package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat is a two-party conversation; Users always holds exactly two
// distinct users.
type Chat struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	LatestMessageID *uuid.UUID `json:"latest_message_id"`

	Users         []*User  `gorm:"many2many:chat_users;" json:"users"`
	LatestMessage *Message `gorm:"foreignkey:LatestMessageID" json:"latest_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
