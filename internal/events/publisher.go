package events

import (
	"context"
	"time"
)

// Topics for collection-write notifications. Downstream consumers (dashboard
// refreshers, search index warmers) subscribe to these; the engine itself
// never blocks a save on delivery.
const (
	TopicQuestionsSaved = "questionbank.questions_saved"
	TopicPapersSaved    = "questionbank.papers_saved"
	TopicDataCleared    = "questionbank.data_cleared"
)

// CollectionEvent describes one whole-collection write for a tenant.
type CollectionEvent struct {
	TenantID   string    `json:"tenantId"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher emits collection-write events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event CollectionEvent) error
	Close() error
}
