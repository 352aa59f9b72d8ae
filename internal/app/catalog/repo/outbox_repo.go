package repo

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_outbox"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	model *m_outbox.Model
	newID func() string
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{
		model: m_outbox.NewModel(),
		newID: func() string { return uuid.New().String() },
	}
}

var _ contracts.OutboxRepository = (*OutboxRepo)(nil)

// InsertMut serializes event into a pending outbox row keyed by the menu
// item it concerns.
func (r *OutboxRepo) InsertMut(event domain.DomainEvent) (*spanner.Mutation, error) {
	if !m_outbox.IsMenuItemEvent(event.EventType()) {
		return nil, fmt.Errorf("event type %q is outside the %s namespace", event.EventType(), m_outbox.MenuItemEventPrefix)
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s event: %w", event.EventType(), err)
	}

	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to serialize %s event: %w", event.EventType(), err)
	}

	return r.model.InsertMut(r.newID(), event.EventType(), event.AggregateID(), payload), nil
}

// EventMuts converts recorded domain events into outbox mutations.
func EventMuts(outbox contracts.OutboxRepository, events []domain.DomainEvent) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, event := range events {
		mut, err := outbox.InsertMut(event)
		if err != nil {
			return nil, err
		}
		muts = append(muts, mut)
	}
	return muts, nil
}
