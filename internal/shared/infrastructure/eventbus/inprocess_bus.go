package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Handler consumes a published event payload.
type Handler func(ctx context.Context, routingKey string, payload []byte) error

// InProcessBus is an in-memory event bus for local mode (no RabbitMQ).
// Events are delivered synchronously to registered handlers.
type InProcessBus struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewInProcessBus creates a new in-process event bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for a routing key. An empty routing key
// subscribes to every event.
func (b *InProcessBus) Subscribe(routingKey string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], handler)
}

// Publish dispatches the payload synchronously to all matching handlers.
// Handler failures are logged, not returned; local mode never fails a
// publish.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.Lock()
	matched := make([]Handler, 0, len(b.handlers[routingKey])+len(b.handlers[""]))
	matched = append(matched, b.handlers[routingKey]...)
	matched = append(matched, b.handlers[""]...)
	b.mu.Unlock()

	start := time.Now()
	for _, handler := range matched {
		if err := handler(ctx, routingKey, payload); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", routingKey,
				"error", err,
			)
		}
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"handlers", len(matched),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error { return nil }
