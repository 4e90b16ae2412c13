// Package live pushes newly stored messages to the viewers of a conversation.
package live

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"prestevent/internal/chat/models"
)

var ErrBrokerClosed = errors.New("live broker closed")

// Broker fans messages out to subscribers of a conversation. Delivery is at-least-once
// at the transport level; each subscription drops ids it has already delivered.
type Broker interface {
	Publish(ctx context.Context, msg *models.Message) error
	// Subscribe registers onMessage for conversationID until the returned function is
	// called or ctx is done. Calls to onMessage are sequential and follow publish order.
	Subscribe(ctx context.Context, conversationID string, onMessage func(*models.Message)) (unsubscribe func(), err error)
	Close() error
}

const seenWindow = 256

type subscriber struct {
	id        uint64
	queue     chan *models.Message
	done      chan struct{}
	closed    atomic.Bool
	once      sync.Once
	onMessage func(*models.Message)

	seen    map[uint64]struct{}
	seenLog []uint64
}

func newSubscriber(id uint64, buffer int, onMessage func(*models.Message)) *subscriber {
	if buffer < 1 {
		buffer = 1
	}
	s := &subscriber{
		id:        id,
		queue:     make(chan *models.Message, buffer),
		done:      make(chan struct{}),
		onMessage: onMessage,
		seen:      make(map[uint64]struct{}, seenWindow),
	}
	go s.run()
	return s
}

func (s *subscriber) run() {
	for {
		select {
		case <-s.done:
			return
		case msg := <-s.queue:
			if s.closed.Load() {
				return
			}
			if s.markSeen(msg.ID) {
				s.onMessage(msg)
			}
		}
	}
}

// markSeen reports whether id is new for this subscriber. Only run touches the window.
func (s *subscriber) markSeen(id uint64) bool {
	if _, dup := s.seen[id]; dup {
		return false
	}
	s.seen[id] = struct{}{}
	s.seenLog = append(s.seenLog, id)
	if len(s.seenLog) > seenWindow {
		delete(s.seen, s.seenLog[0])
		s.seenLog = s.seenLog[1:]
	}
	return true
}

// enqueue blocks while the subscriber's queue is full, until ctx is done.
func (s *subscriber) enqueue(ctx context.Context, msg *models.Message) error {
	select {
	case <-s.done:
		return nil
	default:
	}
	select {
	case s.queue <- msg:
		return nil
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stop prevents any further onMessage call from starting.
func (s *subscriber) stop() {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.done)
	})
}

// watch stops the subscription through unsubscribe once ctx is done.
func watch(ctx context.Context, s *subscriber, unsubscribe func()) {
	if ctx.Done() == nil {
		return
	}
	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-s.done:
		}
	}()
}
