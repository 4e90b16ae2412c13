package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"prestevent/internal/chat/models"
)

var conversationColumns = []string{
	"id", "participant_a", "participant_b", "pair_key", "listing_key",
	"annonce_id", "service_id", "created_at", "updated_at",
}

var messageColumns = []string{"id", "conversation_id", "sender_id", "content", "is_read", "created_at"}

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func conversationRow(rows *sqlmock.Rows, id, a, b string, listing models.ListingRef, ts time.Time) *sqlmock.Rows {
	var annonce, service any
	if listing.AnnonceID != "" {
		annonce = listing.AnnonceID
	}
	if listing.ServiceID != "" {
		service = listing.ServiceID
	}
	return rows.AddRow(id, a, b, models.PairKey(a, b), listing.Key(), annonce, service, ts, ts)
}

func TestChatRepository_FindConversation(t *testing.T) {
	now := time.Now().UTC()
	pairKey := models.PairKey("user-a", "user-b")

	tests := []struct {
		name      string
		mockSetup func(sqlmock.Sqlmock)
		wantID    string
		wantErr   error
	}{
		{
			name: "found",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := conversationRow(sqlmock.NewRows(conversationColumns), "conv-1", "user-a", "user-b", models.AnnonceRef("ann1"), now)
				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT * FROM `conversations` WHERE pair_key = ? AND listing_key = ?")).
					WithArgs(pairKey, "annonce:ann1", 1).
					WillReturnRows(rows)
			},
			wantID: "conv-1",
		},
		{
			name: "not found",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversations`")).
					WillReturnRows(sqlmock.NewRows(conversationColumns))
			},
			wantErr: models.ErrConversationNotFound,
		},
		{
			name: "database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversations`")).
					WillReturnError(assert.AnError)
			},
			wantErr: models.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			repo := NewChatRepository(db)
			conv, err := repo.FindConversation(context.Background(), pairKey, "annonce:ann1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, conv)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, conv.ID)
				assert.Equal(t, models.AnnonceRef("ann1"), conv.Listing)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestChatRepository_CreateConversation(t *testing.T) {
	conv := &models.Conversation{
		ID:           "conv-1",
		ParticipantA: "user-b",
		ParticipantB: "user-a",
		Listing:      models.ServiceRef("srv1"),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	tests := []struct {
		name      string
		mockSetup func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "successful insert",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `conversations`")).
					WithArgs("conv-1", "user-b", "user-a", "user-a|user-b", "service:srv1",
						sqlmock.AnyArg(), "srv1", sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "duplicate pair and listing",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `conversations`")).
					WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
				mock.ExpectRollback()
			},
			wantErr: ErrDuplicateConversation,
		},
		{
			name: "database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `conversations`")).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			wantErr: models.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			err := NewChatRepository(db).CreateConversation(context.Background(), conv)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestChatRepository_GetConversation_RejectsMalformedRecord(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(conversationColumns).
		AddRow("conv-1", "user-a", "user-b", "user-a|user-b", "annonce:ann1", nil, "srv1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversations` WHERE id = ?")).
		WithArgs("conv-1", 1).
		WillReturnRows(rows)

	conv, err := NewChatRepository(db).GetConversation(context.Background(), "conv-1")

	assert.Nil(t, conv)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_ListConversations(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(conversationColumns)
	conversationRow(rows, "conv-2", "user-a", "user-c", models.ListingRef{}, now)
	conversationRow(rows, "conv-1", "user-b", "user-a", models.AnnonceRef("ann1"), now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `conversations` WHERE participant_a = ? OR participant_b = ? ORDER BY updated_at DESC,id ASC")).
		WithArgs("user-a", "user-a").
		WillReturnRows(rows)

	convs, err := NewChatRepository(db).ListConversations(context.Background(), "user-a")

	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "conv-2", convs[0].ID)
	assert.True(t, convs[0].Listing.IsNone())
	assert.Equal(t, "conv-1", convs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_SaveMessage(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name      string
		senderID  string
		mockSetup func(sqlmock.Sqlmock)
		wantErr   error
		wantID    uint64
	}{
		{
			name:     "successful save bumps conversation",
			senderID: "user-a",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversations` WHERE id = ?")).
					WithArgs("conv-1", 1).
					WillReturnRows(conversationRow(sqlmock.NewRows(conversationColumns), "conv-1", "user-a", "user-b", models.ListingRef{}, now))
				mock.ExpectExec(regexp.QuoteMeta(
					"INSERT INTO `messages` (`conversation_id`,`sender_id`,`content`,`is_read`,`created_at`) VALUES (?,?,?,?,?)")).
					WithArgs("conv-1", "user-a", "Bonjour", false, now).
					WillReturnResult(sqlmock.NewResult(42, 1))
				mock.ExpectExec(regexp.QuoteMeta("UPDATE `conversations` SET `updated_at`=? WHERE id = ?")).
					WithArgs(now, "conv-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantID: 42,
		},
		{
			name:     "sender outside conversation",
			senderID: "user-c",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversations` WHERE id = ?")).
					WillReturnRows(conversationRow(sqlmock.NewRows(conversationColumns), "conv-1", "user-a", "user-b", models.ListingRef{}, now))
				mock.ExpectRollback()
			},
			wantErr: models.ErrNotParticipant,
		},
		{
			name:     "unknown conversation",
			senderID: "user-a",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversations` WHERE id = ?")).
					WillReturnRows(sqlmock.NewRows(conversationColumns))
				mock.ExpectRollback()
			},
			wantErr: models.ErrConversationNotFound,
		},
		{
			name:     "insert failure rolls back",
			senderID: "user-a",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversations` WHERE id = ?")).
					WillReturnRows(conversationRow(sqlmock.NewRows(conversationColumns), "conv-1", "user-a", "user-b", models.ListingRef{}, now))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `messages`")).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			wantErr: models.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			msg := &models.Message{ConversationID: "conv-1", SenderID: tt.senderID, Content: "Bonjour", CreatedAt: now}
			err := NewChatRepository(db).SaveMessage(context.Background(), msg)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, msg.ID)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, msg.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestChatRepository_FetchHistory(t *testing.T) {
	tests := []struct {
		name          string
		mockSetup     func(sqlmock.Sqlmock)
		expectedCount int
		expectError   bool
	}{
		{
			name: "ordered by created_at then id",
			mockSetup: func(mock sqlmock.Sqlmock) {
				ts := time.Now()
				rows := sqlmock.NewRows(messageColumns).
					AddRow(1, "conv-123", "user-456", "Hello", false, ts).
					AddRow(2, "conv-123", "user-789", "Hi there!", true, ts)

				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT * FROM `messages` WHERE conversation_id = ? ORDER BY created_at ASC,id ASC")).
					WithArgs("conv-123").
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "empty conversation",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `messages` WHERE conversation_id = ?")).
					WithArgs("conv-123").
					WillReturnRows(sqlmock.NewRows(messageColumns))
			},
			expectedCount: 0,
		},
		{
			name: "database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `messages`")).
					WillReturnError(assert.AnError)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			messages, err := NewChatRepository(db).FetchHistory(context.Background(), "conv-123")

			if tt.expectError {
				assert.ErrorIs(t, err, models.ErrStoreUnavailable)
			} else {
				require.NoError(t, err)
				assert.Len(t, messages, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestChatRepository_MarkRead(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `messages` SET `is_read`=?")).
		WithArgs(true, "conv-1", "user-b", "user-b", "user-b", false).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `messages` SET `is_read`=?")).
		WithArgs(true, "conv-1", "user-b", "user-b", "user-b", false).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := NewChatRepository(db)

	n, err := repo.MarkRead(context.Background(), "conv-1", "user-b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.MarkRead(context.Background(), "conv-1", "user-b")
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_MarkMessageRead(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `messages` SET `is_read`=?")).
		WithArgs(true, "conv-1", "user-b", "user-b", int64(7), "user-b", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := NewChatRepository(db).MarkMessageRead(context.Background(), "conv-1", 7, "user-b")

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_LastMessageAndUnreadCount(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	ts := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `messages` WHERE conversation_id = ? ORDER BY created_at DESC,id DESC LIMIT ?")).
		WithArgs("conv-1", 1).
		WillReturnRows(sqlmock.NewRows(messageColumns).AddRow(9, "conv-1", "user-a", "À demain", false, ts))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT count(*) FROM `messages` WHERE conversation_id = ? AND sender_id <> ? AND is_read = ?")).
		WithArgs("conv-1", "user-b", false).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `messages` WHERE conversation_id = ?")).
		WithArgs("conv-empty", 1).
		WillReturnRows(sqlmock.NewRows(messageColumns))

	repo := NewChatRepository(db)

	last, err := repo.LastMessage(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), last.ID)

	unread, err := repo.UnreadCount(context.Background(), "conv-1", "user-b")
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	none, err := repo.LastMessage(context.Background(), "conv-empty")
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRecord_RoundTrip(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	for _, listing := range []models.ListingRef{{}, models.AnnonceRef("ann1"), models.ServiceRef("srv1")} {
		conv := &models.Conversation{ID: "c1", ParticipantA: "alice", ParticipantB: "bob", Listing: listing, CreatedAt: now, UpdatedAt: now}

		got, err := toConversation(toConversationRecord(conv))
		require.NoError(t, err, listing.Key())
		assert.Equal(t, conv, got)
	}
}
