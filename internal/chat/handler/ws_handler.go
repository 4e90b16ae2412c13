package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"prestevent/internal/chat/models"
	"prestevent/internal/chat/service"
	"prestevent/internal/common"
)

// WSHandler serves the live chat view of one conversation at /ws/conversations/{id}.
// The route must sit behind common.TokenManager.RequireAuth.
type WSHandler struct {
	chatService service.ChatService
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

func NewWSHandler(chatService service.ChatService, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		chatService: chatService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the HTTP front.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	conversationID := mux.Vars(r)["id"]

	if _, err := h.chatService.GetConversation(r.Context(), conversationID, viewer); err != nil {
		code, msg := httpStatus(err)
		common.WriteError(w, code, msg)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "conversation_id", conversationID, "error", err)
		return
	}

	conn := newWSConn(viewer, ws)
	conn.start()
	defer conn.close(websocket.CloseNormalClosure, "")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	log := h.logger.With("conversation_id", conversationID, "user_id", viewer, "conn_id", conn.ID)

	unsubscribe, err := h.chatService.Subscribe(ctx, conversationID, viewer, func(msg *models.Message) {
		if err := conn.sendFrame(serverFrame{Type: frameMessage, Message: msg}); err != nil {
			cancel()
			return
		}
		if err := h.chatService.AcknowledgeMessage(ctx, viewer, msg); err != nil {
			log.Warn("acknowledge failed", "message_id", msg.ID, "error", err)
		}
	})
	if err != nil {
		_, msg := httpStatus(err)
		_ = conn.sendFrame(serverFrame{Type: frameError, Error: msg})
		return
	}
	defer unsubscribe()

	if _, err := h.chatService.MarkRead(ctx, conversationID, viewer); err != nil {
		log.Warn("mark read on open failed", "error", err)
	}
	log.Info("websocket opened")

	// Closing the socket from the write side unblocks the read loop.
	go func() {
		<-ctx.Done()
		conn.close(websocket.CloseGoingAway, "")
	}()

	err = conn.readFrames(func(f clientFrame) {
		switch f.Type {
		case frameSend:
			if _, err := h.chatService.PostMessage(ctx, conversationID, viewer, f.Content); err != nil {
				_, msg := httpStatus(err)
				_ = conn.sendFrame(serverFrame{Type: frameError, Error: msg})
			}
		case frameRead:
			if _, err := h.chatService.MarkRead(ctx, conversationID, viewer); err != nil {
				_, msg := httpStatus(err)
				_ = conn.sendFrame(serverFrame{Type: frameError, Error: msg})
			}
		default:
			_ = conn.sendFrame(serverFrame{Type: frameError, Error: "unknown frame type"})
		}
	})
	if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Warn("websocket read failed", "error", err)
	}
	log.Info("websocket closed")
}

// httpStatus maps service errors onto HTTP status codes and a client-safe message.
func httpStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidParticipants),
		errors.Is(err, models.ErrEmptyMessage),
		errors.Is(err, models.ErrConflictingListingReference):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrNotParticipant):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, models.ErrConversationNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
