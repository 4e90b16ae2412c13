// Package handler exposes the chat service over gRPC and websockets.
package handler

import (
	"context"
	"log/slog"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	chatpb "prestevent/api/v1/chat"
	"prestevent/internal/chat/models"
	"prestevent/internal/chat/service"
)

// streamBuffer is how many live messages may wait for a stream. A stream that falls further
// behind is closed with ResourceExhausted so the broker never waits on it.
const streamBuffer = 32

type ChatHandler struct {
	chatpb.UnimplementedChatServiceServer
	chatService service.ChatService
	logger      *slog.Logger
}

func NewChatHandler(chatService service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

func (h *ChatHandler) ResolveConversation(ctx context.Context, req *chatpb.ResolveConversationRequest) (*chatpb.ConversationResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	conv, err := h.chatService.ResolveOrCreate(ctx, viewer, req.TargetUserID, listingFromRequest(req.AnnonceID, req.ServiceID))
	if err != nil {
		return nil, toStatus(err)
	}
	return &chatpb.ConversationResponse{Conversation: toProtoConversation(conv)}, nil
}

func (h *ChatHandler) StartConversation(ctx context.Context, req *chatpb.StartConversationRequest) (*chatpb.StartConversationResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	conv, msg, err := h.chatService.StartConversation(ctx, viewer, req.TargetUserID, listingFromRequest(req.AnnonceID, req.ServiceID), req.Content)
	if err != nil {
		return nil, toStatus(err)
	}
	return &chatpb.StartConversationResponse{
		Conversation: toProtoConversation(conv),
		Message:      toProtoMessage(msg),
	}, nil
}

func (h *ChatHandler) GetConversation(ctx context.Context, req *chatpb.GetConversationRequest) (*chatpb.GetConversationResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	detail, err := h.chatService.DescribeConversation(ctx, req.ConversationID, viewer)
	if err != nil {
		return nil, toStatus(err)
	}
	return &chatpb.GetConversationResponse{
		Conversation:     toProtoConversation(detail.Conversation),
		OtherParticipant: toProtoParticipant(detail.OtherParticipant),
		Listing:          toProtoListing(detail.Listing),
	}, nil
}

func (h *ChatHandler) SendMessage(ctx context.Context, req *chatpb.SendMessageRequest) (*chatpb.SendMessageResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := h.chatService.PostMessage(ctx, req.ConversationID, viewer, req.Content)
	if err != nil {
		return nil, toStatus(err)
	}
	return &chatpb.SendMessageResponse{
		Success: true,
		Message: toProtoMessage(msg),
	}, nil
}

// GetChatHistory returns one page of the conversation; Total is the size of the whole history.
func (h *ChatHandler) GetChatHistory(ctx context.Context, req *chatpb.GetChatHistoryRequest) (*chatpb.GetChatHistoryResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	msgs, err := h.chatService.ListMessages(ctx, req.ConversationID, viewer)
	if err != nil {
		return nil, toStatus(err)
	}
	return &chatpb.GetChatHistoryResponse{
		Messages: toProtoMessages(page(msgs, int(req.Limit), int(req.Offset))),
		Total:    int32(len(msgs)),
	}, nil
}

func (h *ChatHandler) MarkRead(ctx context.Context, req *chatpb.MarkReadRequest) (*chatpb.MarkReadResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	n, err := h.chatService.MarkRead(ctx, req.ConversationID, viewer)
	if err != nil {
		return nil, toStatus(err)
	}
	return &chatpb.MarkReadResponse{Updated: n}, nil
}

func (h *ChatHandler) ListConversations(ctx context.Context, _ *chatpb.ListConversationsRequest) (*chatpb.ListConversationsResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := h.chatService.Inbox(ctx, viewer)
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]*chatpb.ConversationSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toProtoSummary(s))
	}
	return &chatpb.ListConversationsResponse{Conversations: out}, nil
}

// StreamMessages marks the conversation read for the viewer, then pushes every new message
// until the client goes away. Messages from the other participant are marked read once sent.
func (h *ChatHandler) StreamMessages(req *chatpb.StreamMessagesRequest, stream chatpb.ChatService_StreamMessagesServer) error {
	ctx := stream.Context()
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return err
	}

	incoming := make(chan *models.Message, streamBuffer)
	overflow := make(chan struct{})
	var overflowOnce sync.Once
	unsubscribe, err := h.chatService.Subscribe(ctx, req.ConversationID, viewer, func(msg *models.Message) {
		select {
		case incoming <- msg:
		default:
			overflowOnce.Do(func() { close(overflow) })
		}
	})
	if err != nil {
		return toStatus(err)
	}
	defer unsubscribe()

	if _, err := h.chatService.MarkRead(ctx, req.ConversationID, viewer); err != nil {
		return toStatus(err)
	}
	h.logger.Debug("stream opened", "conversation_id", req.ConversationID, "user_id", viewer)

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("stream closed", "conversation_id", req.ConversationID, "user_id", viewer)
			return status.FromContextError(ctx.Err()).Err()
		case <-overflow:
			h.logger.Warn("stream too slow, closing", "conversation_id", req.ConversationID, "user_id", viewer)
			return status.Error(codes.ResourceExhausted, "stream fell behind, reconnect and reload history")
		case msg := <-incoming:
			if err := stream.Send(toProtoMessage(msg)); err != nil {
				return status.Errorf(codes.Unavailable, "send failed: %v", err)
			}
			if err := h.chatService.AcknowledgeMessage(ctx, viewer, msg); err != nil {
				h.logger.Warn("acknowledge failed", "conversation_id", msg.ConversationID, "message_id", msg.ID, "error", err)
			}
		}
	}
}
