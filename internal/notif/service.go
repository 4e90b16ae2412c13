// Package notif tells users about new messages outside the chat view.
package notif

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"prestevent/internal/chat/models"
	"prestevent/internal/common"
	"prestevent/internal/config"
)

// previewLength is how many characters of a message a notification carries.
const previewLength = 140

type ParticipantLookup interface {
	GetParticipant(ctx context.Context, userID string) (*models.Participant, error)
}

// NotificationService turns stored chat messages into notification events.
type NotificationService struct {
	manager *NotificationManager
	people  ParticipantLookup
	enabled bool
	logger  *slog.Logger
}

// NewNotificationService subscribes the log observer, plus the email observer when emailService
// is not nil.
func NewNotificationService(
	cfg *config.Config,
	people ParticipantLookup,
	emailService common.EmailService,
	logger *slog.Logger,
) *NotificationService {
	manager := NewNotificationManager(cfg.Notification.Workers, cfg.Notification.ChannelBufferSize, logger)

	manager.Subscribe(NewLogObserver(logger))
	if emailService != nil {
		manager.Subscribe(NewEmailNotificationObserver(emailService, people, logger))
	}

	return &NotificationService{
		manager: manager,
		people:  people,
		enabled: cfg.Notification.Enabled,
		logger:  logger,
	}
}

// MessagePosted queues a message notification for the recipient. It never blocks the sender.
func (s *NotificationService) MessagePosted(ctx context.Context, conv *models.Conversation, msg *models.Message) {
	if !s.enabled {
		return
	}

	senderName := "Someone"
	if sender, err := s.people.GetParticipant(ctx, msg.SenderID); err == nil && sender.DisplayName != "" {
		senderName = sender.DisplayName
	}

	senderID := msg.SenderID
	s.manager.NotifyAsync(common.NotificationEvent{
		Type:          common.MessageType,
		UserID:        conv.OtherParticipant(msg.SenderID),
		TriggerUserID: &senderID,
		Header:        fmt.Sprintf("Message from %s", senderName),
		Content:       preview(msg.Content),
		Priority:      4,
		Metadata: common.NotificationMetadata{
			"conversation_id": conv.ID,
			"message_id":      msg.ID,
		},
		CreatedAt: msg.CreatedAt,
	})
}

func (s *NotificationService) Shutdown() {
	s.manager.Shutdown()
	s.logger.Info("notification service shutdown complete")
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:previewLength-1]) + "…"
}
