package repository

import (
	"context"
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prestevent/internal/chat/models"
	"prestevent/internal/dbmysql"
)

// ErrDuplicateConversation is returned by CreateConversation when the pair and listing
// already have a conversation.
var ErrDuplicateConversation = errors.New("conversation already exists for pair and listing")

type ChatRepository interface {
	FindConversation(ctx context.Context, pairKey, listingKey string) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]*models.Conversation, error)

	SaveMessage(ctx context.Context, msg *models.Message) error
	FetchHistory(ctx context.Context, conversationID string) ([]*models.Message, error)
	MarkRead(ctx context.Context, conversationID, viewerID string) (int64, error)
	MarkMessageRead(ctx context.Context, conversationID string, messageID uint64, viewerID string) (int64, error)
	LastMessage(ctx context.Context, conversationID string) (*models.Message, error)
	UnreadCount(ctx context.Context, conversationID, viewerID string) (int64, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) FindConversation(ctx context.Context, pairKey, listingKey string) (*models.Conversation, error) {
	var rec dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Where("pair_key = ? AND listing_key = ?", pairKey, listingKey).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrConversationNotFound
	}
	if err != nil {
		return nil, storeErr("find conversation", err)
	}
	return toConversation(&rec)
}

func (r *chatRepo) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	rec := toConversationRecord(conv)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateConversation
		}
		return storeErr("create conversation", err)
	}
	return nil
}

func (r *chatRepo) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	var rec dbmysql.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", conversationID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrConversationNotFound
	}
	if err != nil {
		return nil, storeErr("get conversation", err)
	}
	return toConversation(&rec)
}

// ListConversations returns the user's conversations, most recently active first.
func (r *chatRepo) ListConversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	var recs []*dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("updated_at DESC").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, storeErr("list conversations", err)
	}

	convs := make([]*models.Conversation, 0, len(recs))
	for _, rec := range recs {
		conv, err := toConversation(rec)
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

// SaveMessage appends msg and bumps the conversation's updated_at in one transaction.
// The sender is checked against the locked conversation row.
func (r *chatRepo) SaveMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conv dbmysql.Conversation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", msg.ConversationID).
			First(&conv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrConversationNotFound
		}
		if err != nil {
			return storeErr("lock conversation", err)
		}
		if conv.ParticipantA != msg.SenderID && conv.ParticipantB != msg.SenderID {
			return models.ErrNotParticipant
		}

		rec := &dbmysql.Message{
			ConversationID: msg.ConversationID,
			SenderID:       msg.SenderID,
			Content:        msg.Content,
			IsRead:         false,
			CreatedAt:      msg.CreatedAt,
		}
		if err := tx.Create(rec).Error; err != nil {
			return storeErr("insert message", err)
		}

		err = tx.Model(&dbmysql.Conversation{}).
			Where("id = ?", conv.ID).
			Update("updated_at", rec.CreatedAt).Error
		if err != nil {
			return storeErr("touch conversation", err)
		}

		msg.ID = rec.ID
		msg.IsRead = false
		return nil
	})
}

func (r *chatRepo) FetchHistory(ctx context.Context, conversationID string) ([]*models.Message, error) {
	var recs []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, storeErr("fetch history", err)
	}
	return toMessages(recs)
}

// MarkRead flags every unread message not sent by viewerID. Rows are only touched when
// viewerID takes part in the conversation.
func (r *chatRepo) MarkRead(ctx context.Context, conversationID, viewerID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&dbmysql.Message{}).
		Where("conversation_id IN (?)", r.participantScope(conversationID, viewerID)).
		Where("sender_id <> ? AND is_read = ?", viewerID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, storeErr("mark read", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *chatRepo) MarkMessageRead(ctx context.Context, conversationID string, messageID uint64, viewerID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&dbmysql.Message{}).
		Where("conversation_id IN (?)", r.participantScope(conversationID, viewerID)).
		Where("id = ? AND sender_id <> ? AND is_read = ?", messageID, viewerID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, storeErr("mark message read", res.Error)
	}
	return res.RowsAffected, nil
}

// LastMessage returns nil without error for an empty conversation.
func (r *chatRepo) LastMessage(ctx context.Context, conversationID string) (*models.Message, error) {
	var recs []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&recs).Error
	if err != nil {
		return nil, storeErr("last message", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return toMessage(recs[0])
}

func (r *chatRepo) UnreadCount(ctx context.Context, conversationID, viewerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, viewerID, false).
		Count(&n).Error
	if err != nil {
		return 0, storeErr("unread count", err)
	}
	return n, nil
}

func (r *chatRepo) participantScope(conversationID, userID string) *gorm.DB {
	return r.db.Model(&dbmysql.Conversation{}).
		Select("id").
		Where("id = ? AND (participant_a = ? OR participant_b = ?)", conversationID, userID, userID)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
