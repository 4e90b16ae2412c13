package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	redis "github.com/redis/go-redis/v9"

	"prestevent/internal/chat/models"
	"prestevent/internal/config"
)

// RedisBroker fans out through Redis pub/sub so every service instance sees every message.
type RedisBroker struct {
	client *redis.Client
	prefix string
	buffer int
	nextID atomic.Uint64
	logger *slog.Logger
}

// NewRedisClient connects to cfg.Redis.URL and pings it.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	c := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return c, nil
}

func NewRedisBroker(client *redis.Client, cfg config.LiveConfig, logger *slog.Logger) *RedisBroker {
	return &RedisBroker{
		client: client,
		prefix: cfg.ChannelPrefix,
		buffer: cfg.SubscriberBuffer,
		logger: logger,
	}
}

func (b *RedisBroker) channel(conversationID string) string {
	return b.prefix + conversationID
}

func (b *RedisBroker) Publish(ctx context.Context, msg *models.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("redis: encode message %d: %w", msg.ID, err)
	}
	if err := b.client.Publish(ctx, b.channel(msg.ConversationID), payload).Err(); err != nil {
		return fmt.Errorf("redis: publish: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, conversationID string, onMessage func(*models.Message)) (func(), error) {
	ps := b.client.Subscribe(ctx, b.channel(conversationID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis: subscribe: %w", err)
	}

	s := newSubscriber(b.nextID.Add(1), b.buffer, onMessage)
	unsubscribe := func() {
		s.stop()
		_ = ps.Close()
	}

	ch := ps.Channel()
	go func() {
		for {
			select {
			case <-s.done:
				return
			case raw, ok := <-ch:
				if !ok {
					s.stop()
					return
				}
				var msg models.Message
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					b.logger.Warn("dropping undecodable live payload", "channel", raw.Channel, "error", err)
					continue
				}
				_ = s.enqueue(context.Background(), &msg)
			}
		}
	}()

	watch(ctx, s, unsubscribe)
	return unsubscribe, nil
}

// Close releases the Redis client.
func (b *RedisBroker) Close() error {
	return b.client.Close()
}
