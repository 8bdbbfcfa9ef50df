package events

import (
	"time"

	"github.com/google/uuid"
)

// RelationEvent describes a committed change to the relationship graph.
// Published on the in-process event bus after the owning transaction
// commits, never before.
type RelationEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	ChangeType string    `json:"change_type"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
}

const (
	EntityOrganization = "organization"
	EntityContact      = "contact"
	EntityParty        = "party"
	EntityAssociation  = "association"
)

func New(changeType, entityType string, entityID uuid.UUID) RelationEvent {
	return RelationEvent{
		EventID:    uuid.New(),
		OccurredAt: time.Now().UTC(),
		ChangeType: changeType,
		EntityType: entityType,
		EntityID:   entityID,
	}
}
