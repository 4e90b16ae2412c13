package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"prestevent/internal/chat/handler"
	chatmocks "prestevent/internal/chat/handler/mocks"
	"prestevent/internal/common"
	"prestevent/internal/config"
	"prestevent/internal/di"
	"prestevent/internal/listing"
	listingmocks "prestevent/internal/listing/mocks"
	"prestevent/internal/media"
	"prestevent/internal/user"
	usermocks "prestevent/internal/user/mocks"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return gormDB, mock
}

func newTestApp(t *testing.T, db *gorm.DB) *di.App {
	ctrl := gomock.NewController(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	chatService := chatmocks.NewMockChatService(ctrl)

	listings := listing.NewListingService(listingmocks.NewMockStore(ctrl), listingmocks.NewMockProfiles(ctrl), log)

	return &di.App{
		Config:         &config.Config{},
		Logger:         log,
		DB:             db,
		Tokens:         common.NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", Issuer: "prestevent", TokenTTL: time.Hour}),
		ChatHandler:    handler.NewChatHandler(chatService, log),
		WSHandler:      handler.NewWSHandler(chatService, log),
		UserHandler:    user.NewHandler(usermocks.NewMockUserService(ctrl), log),
		ListingHandler: listing.NewHandler(listings, log),
		MediaServer:    media.NewHTTPServer(nil, log),
	}
}

func TestHealthHandler(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectPing()
	rec := httptest.NewRecorder()
	healthHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	rec = httptest.NewRecorder()
	healthHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_RequiresAuth(t *testing.T) {
	db, _ := newTestDB(t)
	r := newRouter(newTestApp(t, db))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/ws/conversations/c1"},
		{http.MethodPost, "/media"},
		{http.MethodDelete, "/media/507f1f77bcf86cd799439011"},
		{http.MethodGet, "/api/v1/profiles/me"},
		{http.MethodPut, "/api/v1/admin/profiles/p1/featured"},
		{http.MethodPost, "/api/v1/annonces"},
		{http.MethodGet, "/api/v1/annonces/mine"},
		{http.MethodDelete, "/api/v1/services/s1"},
		{http.MethodPut, "/api/v1/admin/annonces/a1/featured"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestNewGRPCServer_RegistersChatService(t *testing.T) {
	db, _ := newTestDB(t)
	s := newGRPCServer(newTestApp(t, db))
	defer s.Stop()

	info := s.GetServiceInfo()
	require.Len(t, info, 1)
	require.Contains(t, info, "chat.v1.ChatService")
	assert.Len(t, info["chat.v1.ChatService"].Methods, 8)
}
