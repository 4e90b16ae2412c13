package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	chatpb "prestevent/api/v1/chat"
	"prestevent/internal/chat/handler/mocks"
	"prestevent/internal/chat/models"
	"prestevent/internal/common"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func asUser(userID string) context.Context {
	return common.WithIdentity(context.Background(), userID, "client")
}

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleConversation() *models.Conversation {
	return &models.Conversation{
		ID:           "conv-1",
		ParticipantA: "alice",
		ParticipantB: "bob",
		Listing:      models.AnnonceRef("ann1"),
		CreatedAt:    t0,
		UpdatedAt:    t0,
	}
}

func sampleMessages(n int) []*models.Message {
	msgs := make([]*models.Message, 0, n)
	for i := 1; i <= n; i++ {
		msgs = append(msgs, &models.Message{
			ID:             uint64(i),
			ConversationID: "conv-1",
			SenderID:       "alice",
			Content:        fmt.Sprintf("message %d", i),
			CreatedAt:      t0.Add(time.Duration(i) * time.Second),
		})
	}
	return msgs
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{models.ErrInvalidParticipants, codes.InvalidArgument},
		{models.ErrEmptyMessage, codes.InvalidArgument},
		{models.ErrConflictingListingReference, codes.InvalidArgument},
		{fmt.Errorf("conversation x: %w", models.ErrNotParticipant), codes.PermissionDenied},
		{models.ErrConversationNotFound, codes.NotFound},
		{fmt.Errorf("save: %w: %w", models.ErrStoreUnavailable, errors.New("conn refused")), codes.Unavailable},
		{context.Canceled, codes.Canceled},
		{errors.New("boom"), codes.Internal},
		{status.Error(codes.Unauthenticated, "no"), codes.Unauthenticated},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(toStatus(tt.err)), "%v", tt.err)
	}
	assert.NoError(t, toStatus(nil))
}

func TestChatHandler_RequiresIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewChatHandler(mocks.NewMockChatService(ctrl), discardLogger())

	_, err := h.SendMessage(context.Background(), &chatpb.SendMessageRequest{ConversationID: "conv-1", Content: "hi"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = h.ListConversations(context.Background(), &chatpb.ListConversationsRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestChatHandler_ResolveConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockChatService(ctrl)
	h := NewChatHandler(mockService, discardLogger())

	tests := []struct {
		name      string
		request   *chatpb.ResolveConversationRequest
		mockSetup func()
		wantCode  codes.Code
	}{
		{
			name:    "resolves_for_annonce",
			request: &chatpb.ResolveConversationRequest{TargetUserID: "bob", AnnonceID: " ann1 "},
			mockSetup: func() {
				mockService.EXPECT().
					ResolveOrCreate(gomock.Any(), "alice", "bob", models.AnnonceRef("ann1")).
					Return(sampleConversation(), nil)
			},
			wantCode: codes.OK,
		},
		{
			name:    "conflicting_listing",
			request: &chatpb.ResolveConversationRequest{TargetUserID: "bob", AnnonceID: "ann1", ServiceID: "svc1"},
			mockSetup: func() {
				mockService.EXPECT().
					ResolveOrCreate(gomock.Any(), "alice", "bob", models.ListingRef{AnnonceID: "ann1", ServiceID: "svc1"}).
					Return(nil, models.ErrConflictingListingReference)
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name:    "self_conversation",
			request: &chatpb.ResolveConversationRequest{TargetUserID: "alice"},
			mockSetup: func() {
				mockService.EXPECT().
					ResolveOrCreate(gomock.Any(), "alice", "alice", models.ListingRef{}).
					Return(nil, models.ErrInvalidParticipants)
			},
			wantCode: codes.InvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			resp, err := h.ResolveConversation(asUser("alice"), tt.request)
			require.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode != codes.OK {
				assert.Nil(t, resp)
				return
			}
			require.NotNil(t, resp.Conversation)
			assert.Equal(t, "conv-1", resp.Conversation.ID)
			assert.Equal(t, "ann1", resp.Conversation.AnnonceID)
			assert.Empty(t, resp.Conversation.ServiceID)
			assert.Equal(t, t0.Unix(), resp.Conversation.CreatedAt.AsTime().Unix())
		})
	}
}

func TestChatHandler_StartConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockChatService(ctrl)
	h := NewChatHandler(mockService, discardLogger())

	msg := sampleMessages(1)[0]
	mockService.EXPECT().
		StartConversation(gomock.Any(), "alice", "bob", models.ServiceRef("svc9"), "Bonjour").
		Return(sampleConversation(), msg, nil)

	resp, err := h.StartConversation(asUser("alice"), &chatpb.StartConversationRequest{
		TargetUserID: "bob",
		ServiceID:    "svc9",
		Content:      "Bonjour",
	})
	require.NoError(t, err)
	assert.Equal(t, "conv-1", resp.Conversation.ID)
	require.NotNil(t, resp.Message)
	assert.Equal(t, uint64(1), resp.Message.ID)

	mockService.EXPECT().
		StartConversation(gomock.Any(), "alice", "bob", models.ListingRef{}, "").
		Return(sampleConversation(), nil, nil)

	resp, err = h.StartConversation(asUser("alice"), &chatpb.StartConversationRequest{TargetUserID: "bob"})
	require.NoError(t, err)
	assert.Nil(t, resp.Message)
}

func TestChatHandler_GetConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockChatService(ctrl)
	h := NewChatHandler(mockService, discardLogger())

	mockService.EXPECT().
		DescribeConversation(gomock.Any(), "conv-1", "bob").
		Return(&models.ConversationDetail{
			Conversation:     sampleConversation(),
			OtherParticipant: &models.Participant{ID: "alice", DisplayName: "Alice", Role: models.RoleClient},
			Listing:          &models.ListingSummary{Kind: models.ListingAnnonce, ID: "ann1", Title: "Mariage"},
		}, nil)

	resp, err := h.GetConversation(asUser("bob"), &chatpb.GetConversationRequest{ConversationID: "conv-1"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.OtherParticipant.DisplayName)
	assert.Equal(t, "client", resp.OtherParticipant.Role)
	require.NotNil(t, resp.Listing)
	assert.Equal(t, "annonce", resp.Listing.Kind)
	assert.Equal(t, "Mariage", resp.Listing.Title)

	mockService.EXPECT().
		DescribeConversation(gomock.Any(), "conv-1", "mallory").
		Return(nil, models.ErrNotParticipant)

	_, err = h.GetConversation(asUser("mallory"), &chatpb.GetConversationRequest{ConversationID: "conv-1"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestChatHandler_SendMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockChatService(ctrl)
	h := NewChatHandler(mockService, discardLogger())

	tests := []struct {
		name        string
		request     *chatpb.SendMessageRequest
		mockSetup   func()
		wantCode    codes.Code
		checkResult func(*chatpb.SendMessageResponse)
	}{
		{
			name:    "successful_message_send",
			request: &chatpb.SendMessageRequest{ConversationID: "conv-1", Content: "Hello World!"},
			mockSetup: func() {
				mockService.EXPECT().
					PostMessage(gomock.Any(), "conv-1", "alice", "Hello World!").
					Return(&models.Message{ID: 7, ConversationID: "conv-1", SenderID: "alice", Content: "Hello World!", CreatedAt: t0}, nil)
			},
			wantCode: codes.OK,
			checkResult: func(resp *chatpb.SendMessageResponse) {
				assert.True(t, resp.Success)
				assert.Equal(t, uint64(7), resp.Message.ID)
				assert.Equal(t, "alice", resp.Message.SenderID)
				assert.False(t, resp.Message.IsRead)
			},
		},
		{
			name:    "empty_message",
			request: &chatpb.SendMessageRequest{ConversationID: "conv-1", Content: "   "},
			mockSetup: func() {
				mockService.EXPECT().
					PostMessage(gomock.Any(), "conv-1", "alice", "   ").
					Return(nil, models.ErrEmptyMessage)
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name:    "unknown_conversation",
			request: &chatpb.SendMessageRequest{ConversationID: "nope", Content: "hi"},
			mockSetup: func() {
				mockService.EXPECT().
					PostMessage(gomock.Any(), "nope", "alice", "hi").
					Return(nil, models.ErrConversationNotFound)
			},
			wantCode: codes.NotFound,
		},
		{
			name:    "store_down",
			request: &chatpb.SendMessageRequest{ConversationID: "conv-1", Content: "hi"},
			mockSetup: func() {
				mockService.EXPECT().
					PostMessage(gomock.Any(), "conv-1", "alice", "hi").
					Return(nil, fmt.Errorf("save message: %w: %w", models.ErrStoreUnavailable, errors.New("database error")))
			},
			wantCode: codes.Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			resp, err := h.SendMessage(asUser("alice"), tt.request)
			require.Equal(t, tt.wantCode, status.Code(err))
			if tt.checkResult != nil {
				require.NotNil(t, resp)
				tt.checkResult(resp)
			}
		})
	}
}

func TestChatHandler_GetChatHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockChatService(ctrl)
	h := NewChatHandler(mockService, discardLogger())

	history := sampleMessages(5)

	tests := []struct {
		name    string
		limit   int32
		offset  int32
		wantIDs []uint64
	}{
		{"all_when_no_limit", 0, 0, []uint64{1, 2, 3, 4, 5}},
		{"first_page", 2, 0, []uint64{1, 2}},
		{"middle_page", 2, 2, []uint64{3, 4}},
		{"last_partial_page", 2, 4, []uint64{5}},
		{"offset_past_end", 2, 10, nil},
		{"negative_offset", 1, -3, []uint64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.EXPECT().ListMessages(gomock.Any(), "conv-1", "bob").Return(history, nil)

			resp, err := h.GetChatHistory(asUser("bob"), &chatpb.GetChatHistoryRequest{
				ConversationID: "conv-1",
				Limit:          tt.limit,
				Offset:         tt.offset,
			})
			require.NoError(t, err)
			assert.Equal(t, int32(5), resp.Total)

			var ids []uint64
			for _, m := range resp.Messages {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("not_participant", func(t *testing.T) {
		mockService.EXPECT().ListMessages(gomock.Any(), "conv-1", "mallory").Return(nil, models.ErrNotParticipant)

		_, err := h.GetChatHistory(asUser("mallory"), &chatpb.GetChatHistoryRequest{ConversationID: "conv-1"})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})
}

func TestChatHandler_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockChatService(ctrl)
	h := NewChatHandler(mockService, discardLogger())

	gomock.InOrder(
		mockService.EXPECT().MarkRead(gomock.Any(), "conv-1", "bob").Return(int64(3), nil),
		mockService.EXPECT().MarkRead(gomock.Any(), "conv-1", "bob").Return(int64(0), nil),
	)

	resp, err := h.MarkRead(asUser("bob"), &chatpb.MarkReadRequest{ConversationID: "conv-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Updated)

	resp, err = h.MarkRead(asUser("bob"), &chatpb.MarkReadRequest{ConversationID: "conv-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Updated)
}

func TestChatHandler_ListConversations(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockChatService(ctrl)
	h := NewChatHandler(mockService, discardLogger())

	last := sampleMessages(1)[0]
	mockService.EXPECT().Inbox(gomock.Any(), "bob").Return([]*models.ConversationSummary{
		{
			Conversation:     sampleConversation(),
			OtherParticipant: &models.Participant{ID: "alice", DisplayName: "Alice"},
			LastMessage:      last,
			UnreadCount:      1,
		},
		{Conversation: &models.Conversation{ID: "conv-2", ParticipantA: "bob", ParticipantB: "carol"}},
	}, nil)

	resp, err := h.ListConversations(asUser("bob"), &chatpb.ListConversationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Conversations, 2)
	assert.Equal(t, "conv-1", resp.Conversations[0].Conversation.ID)
	assert.Equal(t, int64(1), resp.Conversations[0].UnreadCount)
	assert.Equal(t, "message 1", resp.Conversations[0].LastMessage.Content)
	assert.Nil(t, resp.Conversations[1].LastMessage)
	assert.Nil(t, resp.Conversations[1].OtherParticipant)
}
