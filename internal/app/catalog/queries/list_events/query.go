package list_events

import (
	"context"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
)

const (
	DefaultLimit int64 = 100
	MaxLimit     int64 = 1000
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType   string // e.g. "menu_item.created"
	AggregateID string // menu item id
	Status      string // "pending", "completed", "failed"
	Limit       int64  // default 100, capped at 1000
}

// Response is one page of outbox events.
type Response struct {
	Events     []*contracts.OutboxEvent
	TotalCount int64
}

// Query handles the list events query use case.
type Query struct {
	readModel contracts.EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel contracts.EventsReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a list of events with filtering.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	events, total, err := q.readModel.ListEvents(ctx, contracts.EventFilter{
		EventType:   req.EventType,
		AggregateID: req.AggregateID,
		Status:      req.Status,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	return &Response{Events: events, TotalCount: total}, nil
}
