package common

import (
	"time"
)

type NotificationType string

const (
	MessageType NotificationType = "message"
	SystemType  NotificationType = "system"
)

type NotificationMetadata map[string]interface{}

type NotificationEvent struct {
	Type          NotificationType
	UserID        string
	TriggerUserID *string
	Header        string
	Content       string
	Priority      int
	Metadata      NotificationMetadata
	CreatedAt     time.Time
}
