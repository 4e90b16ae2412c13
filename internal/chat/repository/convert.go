package repository

import (
	"fmt"

	"prestevent/internal/chat/models"
	"prestevent/internal/dbmysql"
)

// ErrMalformedRecord is returned for rows that do not satisfy the conversation model.
var ErrMalformedRecord = fmt.Errorf("malformed record: %w", models.ErrStoreUnavailable)

func toConversation(rec *dbmysql.Conversation) (*models.Conversation, error) {
	if rec.ID == "" || models.ValidateParticipants(rec.ParticipantA, rec.ParticipantB) != nil {
		return nil, fmt.Errorf("conversation %q: %w", rec.ID, ErrMalformedRecord)
	}

	listing, ok := models.ParseListingKey(rec.ListingKey)
	if !ok || listing.AnnonceID != deref(rec.AnnonceID) || listing.ServiceID != deref(rec.ServiceID) {
		return nil, fmt.Errorf("conversation %q listing %q: %w", rec.ID, rec.ListingKey, ErrMalformedRecord)
	}

	return &models.Conversation{
		ID:           rec.ID,
		ParticipantA: rec.ParticipantA,
		ParticipantB: rec.ParticipantB,
		Listing:      listing,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}

func toConversationRecord(conv *models.Conversation) *dbmysql.Conversation {
	return &dbmysql.Conversation{
		ID:           conv.ID,
		ParticipantA: conv.ParticipantA,
		ParticipantB: conv.ParticipantB,
		PairKey:      models.PairKey(conv.ParticipantA, conv.ParticipantB),
		ListingKey:   conv.Listing.Key(),
		AnnonceID:    ref(conv.Listing.AnnonceID),
		ServiceID:    ref(conv.Listing.ServiceID),
		CreatedAt:    conv.CreatedAt,
		UpdatedAt:    conv.UpdatedAt,
	}
}

func toMessage(rec *dbmysql.Message) (*models.Message, error) {
	if rec.ID == 0 || rec.ConversationID == "" || rec.SenderID == "" {
		return nil, fmt.Errorf("message %d: %w", rec.ID, ErrMalformedRecord)
	}
	return &models.Message{
		ID:             rec.ID,
		ConversationID: rec.ConversationID,
		SenderID:       rec.SenderID,
		Content:        rec.Content,
		IsRead:         rec.IsRead,
		CreatedAt:      rec.CreatedAt,
	}, nil
}

func toMessages(recs []*dbmysql.Message) ([]*models.Message, error) {
	msgs := make([]*models.Message, 0, len(recs))
	for _, rec := range recs {
		msg, err := toMessage(rec)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
