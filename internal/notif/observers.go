package notif

import (
	"context"
	"fmt"
	"log/slog"

	"prestevent/internal/common"
)

// LogObserver records every notification in the service log.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Name() string {
	return "log_observer"
}

func (o *LogObserver) Update(_ context.Context, event common.NotificationEvent) error {
	attrs := []any{"type", event.Type, "user_id", event.UserID, "priority", event.Priority}
	if id, ok := event.Metadata["conversation_id"]; ok {
		attrs = append(attrs, "conversation_id", id)
	}
	o.logger.Info("notification", attrs...)
	return nil
}

// EmailNotificationObserver mails high priority notifications to the recipient.
type EmailNotificationObserver struct {
	emailService common.EmailService
	people       ParticipantLookup
	logger       *slog.Logger
}

func NewEmailNotificationObserver(emailService common.EmailService, people ParticipantLookup, logger *slog.Logger) *EmailNotificationObserver {
	return &EmailNotificationObserver{
		emailService: emailService,
		people:       people,
		logger:       logger,
	}
}

func (e *EmailNotificationObserver) Name() string {
	return "email_observer"
}

func (e *EmailNotificationObserver) Update(ctx context.Context, event common.NotificationEvent) error {
	if event.Priority < 4 {
		return nil
	}

	recipient, err := e.people.GetParticipant(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("lookup recipient: %w", err)
	}
	if recipient.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Prest'Event: %s", event.Header)
	if err := e.emailService.SendEmail(ctx, recipient.Email, subject, event.Content); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	e.logger.Debug("email notification sent", "user_id", event.UserID)
	return nil
}
