package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is one entry of the global, append-only chat log. The
// persisted table is the single source of truth; the websocket relay
// only fans out notifications.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName  string    `gorm:"not null;size:255" json:"user"`
	Text      string    `gorm:"not null;size:2000" json:"text"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
