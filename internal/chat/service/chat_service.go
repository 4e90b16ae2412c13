package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"prestevent/internal/chat/live"
	"prestevent/internal/chat/models"
	"prestevent/internal/chat/repository"
)

// publishTimeout bounds live delivery after a message is stored. Delivery is detached from
// the sender's context so a sender leaving mid-request does not cancel it.
const publishTimeout = 5 * time.Second

// ParticipantDirectory is the identity store lookup.
type ParticipantDirectory interface {
	GetParticipant(ctx context.Context, userID string) (*models.Participant, error)
}

// ListingDirectory is the listing store lookup.
type ListingDirectory interface {
	GetListingSummary(ctx context.Context, ref models.ListingRef) (*models.ListingSummary, error)
}

// MessageNotifier is told about every stored message.
type MessageNotifier interface {
	MessagePosted(ctx context.Context, conv *models.Conversation, msg *models.Message)
}

// ChatService defines the interface exposed to the handler layer
type ChatService interface {
	ResolveOrCreate(ctx context.Context, userA, userB string, listing models.ListingRef) (*models.Conversation, error)
	StartConversation(ctx context.Context, senderID, recipientID string, listing models.ListingRef, firstMessage string) (*models.Conversation, *models.Message, error)
	GetConversation(ctx context.Context, conversationID, viewerID string) (*models.Conversation, error)
	DescribeConversation(ctx context.Context, conversationID, viewerID string) (*models.ConversationDetail, error)

	PostMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error)
	ListMessages(ctx context.Context, conversationID, viewerID string) ([]*models.Message, error)
	MarkRead(ctx context.Context, conversationID, viewerID string) (int64, error)
	AcknowledgeMessage(ctx context.Context, viewerID string, msg *models.Message) error

	Summarize(ctx context.Context, conversations []*models.Conversation, viewerID string) ([]*models.ConversationSummary, error)
	Inbox(ctx context.Context, viewerID string) ([]*models.ConversationSummary, error)

	Subscribe(ctx context.Context, conversationID, viewerID string, onMessage func(*models.Message)) (unsubscribe func(), err error)
}

type chatService struct {
	repo     repository.ChatRepository
	people   ParticipantDirectory
	listings ListingDirectory
	broker   live.Broker
	notifier MessageNotifier
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// Constructor used in DI/wire
func NewChatService(
	repo repository.ChatRepository,
	people ParticipantDirectory,
	listings ListingDirectory,
	broker live.Broker,
	notifier MessageNotifier,
	logger *slog.Logger,
) ChatService {
	return &chatService{
		repo:     repo,
		people:   people,
		listings: listings,
		broker:   broker,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID:    uuid.NewString,
	}
}

// ResolveOrCreate returns the conversation between userA and userB for listing,
// creating it when none exists.
func (s *chatService) ResolveOrCreate(ctx context.Context, userA, userB string, listing models.ListingRef) (*models.Conversation, error) {
	if err := models.ValidateParticipants(userA, userB); err != nil {
		return nil, err
	}
	listing = listing.Normalize()
	if err := listing.Validate(); err != nil {
		return nil, err
	}

	for _, id := range []string{userA, userB} {
		if _, err := s.people.GetParticipant(ctx, id); err != nil {
			if errors.Is(err, models.ErrParticipantNotFound) {
				return nil, fmt.Errorf("%w: unknown user %q", models.ErrInvalidParticipants, id)
			}
			return nil, err
		}
	}

	pairKey, listingKey := models.PairKey(userA, userB), listing.Key()

	conv, err := s.repo.FindConversation(ctx, pairKey, listingKey)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, models.ErrConversationNotFound) {
		return nil, err
	}

	ts := s.now()
	conv = &models.Conversation{
		ID:           s.newID(),
		ParticipantA: userA,
		ParticipantB: userB,
		Listing:      listing,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	err = s.repo.CreateConversation(ctx, conv)
	if errors.Is(err, repository.ErrDuplicateConversation) {
		// A concurrent resolve created it first.
		s.logger.Info("conversation created concurrently, reusing it", "pair", pairKey, "listing", listingKey)
		return s.repo.FindConversation(ctx, pairKey, listingKey)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("conversation created", "conversation_id", conv.ID, "listing", listingKey)
	return conv, nil
}

// StartConversation resolves the conversation and posts firstMessage into it. A blank
// firstMessage only resolves.
func (s *chatService) StartConversation(ctx context.Context, senderID, recipientID string, listing models.ListingRef, firstMessage string) (*models.Conversation, *models.Message, error) {
	conv, err := s.ResolveOrCreate(ctx, senderID, recipientID, listing)
	if err != nil {
		return nil, nil, err
	}
	if _, err := models.NormalizeContent(firstMessage); err != nil {
		return conv, nil, nil
	}

	msg, err := s.PostMessage(ctx, conv.ID, senderID, firstMessage)
	if err != nil {
		return conv, nil, err
	}
	conv.UpdatedAt = msg.CreatedAt
	return conv, msg, nil
}

func (s *chatService) GetConversation(ctx context.Context, conversationID, viewerID string) (*models.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(viewerID) {
		return nil, models.ErrNotParticipant
	}
	return conv, nil
}

// DescribeConversation adds the other participant and the listing to a conversation.
// A failing listing lookup leaves Listing nil.
func (s *chatService) DescribeConversation(ctx context.Context, conversationID, viewerID string) (*models.ConversationDetail, error) {
	conv, err := s.GetConversation(ctx, conversationID, viewerID)
	if err != nil {
		return nil, err
	}

	other, err := s.people.GetParticipant(ctx, conv.OtherParticipant(viewerID))
	if err != nil {
		return nil, err
	}

	detail := &models.ConversationDetail{Conversation: conv, OtherParticipant: other}
	if !conv.Listing.IsNone() {
		listing, err := s.listings.GetListingSummary(ctx, conv.Listing)
		if err != nil {
			s.logger.Warn("listing lookup failed", "conversation_id", conv.ID, "listing", conv.Listing.Key(), "error", err)
		} else {
			detail.Listing = listing
		}
	}
	return detail, nil
}

// PostMessage stores trimmed content from senderID, then hands the message to the live
// broker and the notifier.
func (s *chatService) PostMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error) {
	content, err := models.NormalizeContent(content)
	if err != nil {
		return nil, err
	}

	conv, err := s.GetConversation(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      s.now(),
	}
	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}
	conv.UpdatedAt = msg.CreatedAt

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.broker.Publish(pubCtx, msg); err != nil {
		s.logger.Warn("live delivery failed", "conversation_id", conv.ID, "message_id", msg.ID, "error", err)
	}
	s.notifier.MessagePosted(ctx, conv, msg)

	return msg, nil
}

// ListMessages returns the whole conversation ordered by created_at, then id.
func (s *chatService) ListMessages(ctx context.Context, conversationID, viewerID string) ([]*models.Message, error) {
	if _, err := s.GetConversation(ctx, conversationID, viewerID); err != nil {
		return nil, err
	}
	msgs, err := s.repo.FetchHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	models.SortMessages(msgs)
	return msgs, nil
}

// MarkRead marks everything viewerID received in the conversation as read and
// returns how many messages changed.
func (s *chatService) MarkRead(ctx context.Context, conversationID, viewerID string) (int64, error) {
	if _, err := s.GetConversation(ctx, conversationID, viewerID); err != nil {
		return 0, err
	}
	return s.repo.MarkRead(ctx, conversationID, viewerID)
}

// AcknowledgeMessage marks a single delivered message read unless viewerID sent it.
func (s *chatService) AcknowledgeMessage(ctx context.Context, viewerID string, msg *models.Message) error {
	if msg.SenderID == viewerID || msg.IsRead {
		return nil
	}
	_, err := s.repo.MarkMessageRead(ctx, msg.ConversationID, msg.ID, viewerID)
	return err
}

// Summarize computes the last message and unread count of each conversation for viewerID,
// keeping the input order.
func (s *chatService) Summarize(ctx context.Context, conversations []*models.Conversation, viewerID string) ([]*models.ConversationSummary, error) {
	summaries := make([]*models.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		if !conv.HasParticipant(viewerID) {
			return nil, fmt.Errorf("conversation %s: %w", conv.ID, models.ErrNotParticipant)
		}

		last, err := s.repo.LastMessage(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		unread, err := s.repo.UnreadCount(ctx, conv.ID, viewerID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, &models.ConversationSummary{
			Conversation: conv,
			LastMessage:  last,
			UnreadCount:  unread,
		})
	}
	return summaries, nil
}

// Inbox lists viewerID's conversations, most recently active first.
func (s *chatService) Inbox(ctx context.Context, viewerID string) ([]*models.ConversationSummary, error) {
	convs, err := s.repo.ListConversations(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(convs, func(i, j int) bool {
		if !convs[i].UpdatedAt.Equal(convs[j].UpdatedAt) {
			return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
		}
		return convs[i].ID < convs[j].ID
	})

	summaries, err := s.Summarize(ctx, convs, viewerID)
	if err != nil {
		return nil, err
	}

	for _, sum := range summaries {
		other, err := s.people.GetParticipant(ctx, sum.Conversation.OtherParticipant(viewerID))
		if err != nil {
			s.logger.Warn("participant lookup failed", "conversation_id", sum.Conversation.ID, "error", err)
			continue
		}
		sum.OtherParticipant = other
	}
	return summaries, nil
}

// Subscribe delivers new messages of the conversation to onMessage until unsubscribe is
// called or ctx is done.
func (s *chatService) Subscribe(ctx context.Context, conversationID, viewerID string, onMessage func(*models.Message)) (func(), error) {
	if _, err := s.GetConversation(ctx, conversationID, viewerID); err != nil {
		return nil, err
	}
	return s.broker.Subscribe(ctx, conversationID, onMessage)
}
