package handler

import (
	"strings"

	"google.golang.org/protobuf/types/known/timestamppb"

	chatpb "prestevent/api/v1/chat"
	"prestevent/internal/chat/models"
)

func listingFromRequest(annonceID, serviceID string) models.ListingRef {
	return models.ListingRef{
		AnnonceID: strings.TrimSpace(annonceID),
		ServiceID: strings.TrimSpace(serviceID),
	}
}

func toProtoMessage(m *models.Message) *chatpb.ChatMessage {
	if m == nil {
		return nil
	}
	return &chatpb.ChatMessage{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		SentAt:         timestamppb.New(m.CreatedAt),
	}
}

func toProtoMessages(msgs []*models.Message) []*chatpb.ChatMessage {
	out := make([]*chatpb.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toProtoMessage(m))
	}
	return out
}

func toProtoConversation(c *models.Conversation) *chatpb.Conversation {
	if c == nil {
		return nil
	}
	return &chatpb.Conversation{
		ID:           c.ID,
		ParticipantA: c.ParticipantA,
		ParticipantB: c.ParticipantB,
		AnnonceID:    c.Listing.AnnonceID,
		ServiceID:    c.Listing.ServiceID,
		CreatedAt:    timestamppb.New(c.CreatedAt),
		UpdatedAt:    timestamppb.New(c.UpdatedAt),
	}
}

func toProtoParticipant(p *models.Participant) *chatpb.Participant {
	if p == nil {
		return nil
	}
	return &chatpb.Participant{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		AvatarRef:   p.AvatarRef,
		Role:        string(p.Role),
	}
}

func toProtoListing(l *models.ListingSummary) *chatpb.ListingSummary {
	if l == nil {
		return nil
	}
	return &chatpb.ListingSummary{
		Kind:        string(l.Kind),
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
	}
}

func toProtoSummary(s *models.ConversationSummary) *chatpb.ConversationSummary {
	return &chatpb.ConversationSummary{
		Conversation:     toProtoConversation(s.Conversation),
		OtherParticipant: toProtoParticipant(s.OtherParticipant),
		LastMessage:      toProtoMessage(s.LastMessage),
		UnreadCount:      s.UnreadCount,
	}
}

// page returns msgs[offset:offset+limit]. A non-positive limit means no limit.
func page(msgs []*models.Message, limit, offset int) []*models.Message {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(msgs) {
		return nil
	}
	end := len(msgs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return msgs[offset:end]
}
