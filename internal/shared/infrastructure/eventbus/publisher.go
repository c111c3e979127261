// Package eventbus carries domain events out of the scheduler, either
// in-process for local mode or through RabbitMQ for deployments.
package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/felixgeelhaar/astrosched/internal/shared/domain"
)

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// PublishDomainEvent marshals a domain event and publishes it under its
// routing key.
func PublishDomainEvent(ctx context.Context, pub Publisher, event domain.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return pub.Publish(ctx, event.RoutingKey(), payload)
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the message at debug level and discards it.
func (p *NoopPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("event dropped (no publisher configured)",
		"routing_key", routingKey,
		"size", len(payload),
	)
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error { return nil }
