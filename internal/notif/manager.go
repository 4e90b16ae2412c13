package notif

import (
	"context"
	"log/slog"
	"sync"

	"prestevent/internal/common"
)

var _ common.Subject = (*NotificationManager)(nil)

// NotificationManager fans events out to its observers, inline with Notify or through a
// worker pool with NotifyAsync.
type NotificationManager struct {
	observers    map[string]common.Observer
	eventChannel chan common.NotificationEvent
	workerPool   int
	logger       *slog.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

func NewNotificationManager(workerPoolSize, bufferSize int, logger *slog.Logger) *NotificationManager {
	if workerPoolSize < 1 {
		workerPoolSize = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	nm := &NotificationManager{
		observers:    make(map[string]common.Observer),
		eventChannel: make(chan common.NotificationEvent, bufferSize),
		workerPool:   workerPoolSize,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}

	for i := 0; i < workerPoolSize; i++ {
		nm.wg.Add(1)
		go nm.processEvents()
	}

	return nm
}

func (nm *NotificationManager) Subscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.observers[observer.Name()] = observer
	nm.logger.Info("observer subscribed", "observer", observer.Name())
}

func (nm *NotificationManager) Unsubscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	delete(nm.observers, observer.Name())
	nm.logger.Info("observer unsubscribed", "observer", observer.Name())
}

// Notify runs every observer in the calling goroutine. Observer failures are logged.
func (nm *NotificationManager) Notify(ctx context.Context, event common.NotificationEvent) {
	nm.mu.RLock()
	observers := make([]common.Observer, 0, len(nm.observers))
	for _, obs := range nm.observers {
		observers = append(observers, obs)
	}
	nm.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(ctx, event); err != nil {
			nm.logger.Warn("observer update failed", "observer", observer.Name(), "type", event.Type, "error", err)
		}
	}
}

// NotifyAsync queues the event for the worker pool and never blocks; a full queue drops it.
func (nm *NotificationManager) NotifyAsync(event common.NotificationEvent) {
	if nm.ctx.Err() != nil {
		return
	}
	select {
	case nm.eventChannel <- event:
	case <-nm.ctx.Done():
	default:
		nm.logger.Warn("notification channel full, dropping event", "type", event.Type, "user_id", event.UserID)
	}
}

func (nm *NotificationManager) processEvents() {
	defer nm.wg.Done()

	for {
		select {
		case event := <-nm.eventChannel:
			nm.Notify(nm.ctx, event)
		case <-nm.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers. Events still queued are dropped.
func (nm *NotificationManager) Shutdown() {
	nm.shutdownOnce.Do(func() {
		nm.cancel()
		nm.wg.Wait()
		if n := len(nm.eventChannel); n > 0 {
			nm.logger.Warn("dropped queued notifications on shutdown", "count", n)
		}
		nm.logger.Info("notification manager shutdown complete")
	})
}
