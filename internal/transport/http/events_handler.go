package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_events"
)

// EventLister reads the outbox.
type EventLister interface {
	Execute(ctx context.Context, req *list_events.Request) (*list_events.Response, error)
}

// EventsHandler handles HTTP requests for events.
type EventsHandler struct {
	events EventLister
	logger *slog.Logger
}

// NewEventsHandler creates a new HTTP events handler.
func NewEventsHandler(events EventLister, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		events: events,
		logger: logger,
	}
}

// Event represents a domain event in the HTTP response.
type Event struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	AggregateID string  `json:"aggregate_id"`
	Payload     string  `json:"payload"`
	Status      string  `json:"status"`
	RetryCount  int64   `json:"retry_count"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
}

// ServeHTTP handles GET /api/v1/events requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: errorDetail{
			Code:    "method_not_allowed",
			Message: http.StatusText(http.StatusMethodNotAllowed),
		}})
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	query := r.URL.Query()
	resp, err := h.events.Execute(r.Context(), &list_events.Request{
		EventType:   query.Get("event_type"),
		AggregateID: query.Get("aggregate_id"),
		Status:      query.Get("status"),
		Limit:       limit,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	events := make([]Event, 0, len(resp.Events))
	for _, e := range resp.Events {
		event := Event{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     e.Payload,
			Status:      e.Status,
			RetryCount:  e.RetryCount,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
		if e.ProcessedAt != nil {
			processedAt := e.ProcessedAt.Format(time.RFC3339)
			event.ProcessedAt = &processedAt
		}
		events = append(events, event)
	}

	writeJSON(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		TotalCount: resp.TotalCount,
	})
}
