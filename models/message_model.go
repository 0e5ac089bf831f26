package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Message struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ChatID   uuid.UUID `gorm:"not null" json:"chat_id"`
	SenderID uuid.UUID `gorm:"not null" json:"sender_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`

	// User IDs that have read this message.
	ReadBy datatypes.JSONSlice[string] `json:"read_by"`

	Sender User `gorm:"foreignkey:SenderID" json:"sender,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Message) ReadByUser(userID uuid.UUID) bool {
	id := userID.String()
	for _, r := range m.ReadBy {
		if r == id {
			return true
		}
	}
	return false
}
