package dbmysql

import (
	"time"
)

type Message struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	ConversationID string    `gorm:"size:36;not null;index:idx_message_conversation_created,priority:1"`
	SenderID       string    `gorm:"size:36;not null;index"`
	Content        string    `gorm:"type:text;not null"`
	IsRead         bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"index:idx_message_conversation_created,priority:2"`
}
