package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"prestevent/internal/chat/models"
)

// MemoryBroker delivers within a single process.
type MemoryBroker struct {
	mu     sync.RWMutex
	rooms  map[string]map[uint64]*subscriber
	closed bool

	nextID atomic.Uint64
	buffer int
	logger *slog.Logger
}

func NewMemoryBroker(buffer int, logger *slog.Logger) *MemoryBroker {
	return &MemoryBroker{
		rooms:  make(map[string]map[uint64]*subscriber),
		buffer: buffer,
		logger: logger,
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, msg *models.Message) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBrokerClosed
	}
	room := b.rooms[msg.ConversationID]
	subs := make([]*subscriber, 0, len(room))
	for _, s := range room {
		subs = append(subs, s)
	}
	b.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := s.enqueue(ctx, msg); err != nil {
			b.logger.Warn("live delivery timed out", "conversation_id", msg.ConversationID, "subscriber", s.id, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *MemoryBroker) Subscribe(ctx context.Context, conversationID string, onMessage func(*models.Message)) (func(), error) {
	s := newSubscriber(b.nextID.Add(1), b.buffer, onMessage)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		s.stop()
		return nil, ErrBrokerClosed
	}
	room, ok := b.rooms[conversationID]
	if !ok {
		room = make(map[uint64]*subscriber)
		b.rooms[conversationID] = room
	}
	room[s.id] = s
	b.mu.Unlock()

	unsubscribe := func() {
		s.stop()
		b.remove(conversationID, s.id)
	}
	watch(ctx, s, unsubscribe)
	return unsubscribe, nil
}

// Subscribers returns the number of live subscriptions to conversationID.
func (b *MemoryBroker) Subscribers(conversationID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rooms[conversationID])
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for id, room := range b.rooms {
		for _, s := range room {
			s.stop()
		}
		delete(b.rooms, id)
	}
	return nil
}

func (b *MemoryBroker) remove(conversationID string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	room, ok := b.rooms[conversationID]
	if !ok {
		return
	}
	delete(room, id)
	if len(room) == 0 {
		delete(b.rooms, conversationID)
	}
}
