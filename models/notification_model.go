package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SenderID    uuid.UUID `gorm:"not null" json:"sender_id"`
	RecipientID uuid.UUID `gorm:"not null" json:"recipient_id"`
	Type        string    `gorm:"size:30;not null" json:"type"`
	Content     string    `gorm:"type:text" json:"content"`
	MeetingLink *string   `gorm:"size:255" json:"meeting_link"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`

	Sender    User `gorm:"foreignkey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignkey:RecipientID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
