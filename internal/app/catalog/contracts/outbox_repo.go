package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

// OutboxRepository turns domain events into outbox mutations.
type OutboxRepository interface {
	// InsertMut serializes event and returns the insert mutation.
	InsertMut(event domain.DomainEvent) (*spanner.Mutation, error)
}

// OutboxEvent is a stored outbox row.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
	CreatedAt   time.Time
	ProcessedAt *time.Time
	RetryCount  int64
}

// EventFilter narrows an outbox listing. Empty fields do not filter.
type EventFilter struct {
	EventType   string
	AggregateID string
	Status      string
	Limit       int64
}

// EventsReadModel reads the outbox for the events listing.
type EventsReadModel interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*OutboxEvent, int64, error)
}
