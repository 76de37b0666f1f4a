package events

import (
	"context"
	"log/slog"
	"sync"
)

// MockPublisher records published events for tests.
type MockPublisher struct {
	mu     sync.Mutex
	logger *slog.Logger

	Published map[string][]CollectionEvent
}

func NewMockPublisher(logger *slog.Logger) *MockPublisher {
	return &MockPublisher{
		logger:    logger,
		Published: make(map[string][]CollectionEvent),
	}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, event CollectionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published[topic] = append(m.Published[topic], event)
	if m.logger != nil {
		m.logger.Debug("Mock event published", "topic", topic, "tenant_id", event.TenantID)
	}
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// Events returns the events recorded for a topic.
func (m *MockPublisher) Events(topic string) []CollectionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CollectionEvent(nil), m.Published[topic]...)
}
