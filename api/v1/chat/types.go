package chat

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type ChatMessage struct {
	ID             uint64                 `json:"id"`
	ConversationID string                 `json:"conversation_id"`
	SenderID       string                 `json:"sender_id"`
	Content        string                 `json:"content"`
	IsRead         bool                   `json:"is_read"`
	SentAt         *timestamppb.Timestamp `json:"sent_at"`
}

type Conversation struct {
	ID           string                 `json:"id"`
	ParticipantA string                 `json:"participant_a"`
	ParticipantB string                 `json:"participant_b"`
	AnnonceID    string                 `json:"annonce_id,omitempty"`
	ServiceID    string                 `json:"service_id,omitempty"`
	CreatedAt    *timestamppb.Timestamp `json:"created_at"`
	UpdatedAt    *timestamppb.Timestamp `json:"updated_at"`
}

type Participant struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarRef   string `json:"avatar_ref,omitempty"`
	Role        string `json:"role"`
}

type ListingSummary struct {
	Kind        string `json:"kind"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ConversationSummary struct {
	Conversation     *Conversation `json:"conversation"`
	OtherParticipant *Participant  `json:"other_participant,omitempty"`
	LastMessage      *ChatMessage  `json:"last_message,omitempty"`
	UnreadCount      int64         `json:"unread_count"`
}

type ResolveConversationRequest struct {
	TargetUserID string `json:"target_user_id"`
	AnnonceID    string `json:"annonce_id,omitempty"`
	ServiceID    string `json:"service_id,omitempty"`
}

type ConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
}

type StartConversationRequest struct {
	TargetUserID string `json:"target_user_id"`
	AnnonceID    string `json:"annonce_id,omitempty"`
	ServiceID    string `json:"service_id,omitempty"`
	Content      string `json:"content"`
}

type StartConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
	Message      *ChatMessage  `json:"message,omitempty"`
}

type GetConversationRequest struct {
	ConversationID string `json:"conversation_id"`
}

type GetConversationResponse struct {
	Conversation     *Conversation   `json:"conversation"`
	OtherParticipant *Participant    `json:"other_participant"`
	Listing          *ListingSummary `json:"listing,omitempty"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

type SendMessageResponse struct {
	Success bool         `json:"success"`
	Message *ChatMessage `json:"message"`
}

type GetChatHistoryRequest struct {
	ConversationID string `json:"conversation_id"`
	Limit          int32  `json:"limit"`
	Offset         int32  `json:"offset"`
}

type GetChatHistoryResponse struct {
	Messages []*ChatMessage `json:"messages"`
	Total    int32          `json:"total"`
}

type MarkReadRequest struct {
	ConversationID string `json:"conversation_id"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

type ListConversationsRequest struct{}

type ListConversationsResponse struct {
	Conversations []*ConversationSummary `json:"conversations"`
}

type StreamMessagesRequest struct {
	ConversationID string `json:"conversation_id"`
}
