package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// Watermill topics published by the work item service through the outbox.
const (
	TopicWorkItemCreated = "work_item.created"
	TopicWorkItemUpdated = "work_item.updated"
	TopicWorkItemDeleted = "work_item.deleted"
)

// SchemaVersion is the payload version of every work item event; bump it on
// breaking changes.
const SchemaVersion = 1

// WorkItemEvent is published after a work item is created or updated and
// carries the full read model, so consumers can refresh caches without a
// database round trip.
type WorkItemEvent struct {
	EventID     uuid.UUID  `json:"event_id"` // deduplication key
	Version     int        `json:"version"`
	WorkItemID  uuid.UUID  `json:"work_item_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Type        string     `json:"type"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// NewWorkItemEvent snapshots w.
func NewWorkItemEvent(w *models.WorkItem) WorkItemEvent {
	evt := WorkItemEvent{
		EventID:     uuid.New(),
		Version:     SchemaVersion,
		WorkItemID:  w.ID().UUID(),
		Title:       w.Title().String(),
		Description: w.Description().String(),
		Status:      w.Status().String(),
		Priority:    w.Priority().String(),
		Type:        w.Type().String(),
		CreatedAt:   w.CreatedAt(),
		UpdatedAt:   w.UpdatedAt(),
		OccurredAt:  time.Now().UTC(),
	}
	if a := w.Assignee(); a != nil {
		id := a.ID().UUID()
		evt.AssigneeID = &id
	}
	return evt
}

// WorkItemDeletedEvent is published after a work item is removed.
type WorkItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	WorkItemID uuid.UUID `json:"work_item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewWorkItemDeletedEvent records the removal of the work item id.
func NewWorkItemDeletedEvent(id uuid.UUID) WorkItemDeletedEvent {
	return WorkItemDeletedEvent{
		EventID:    uuid.New(),
		Version:    SchemaVersion,
		WorkItemID: id,
		OccurredAt: time.Now().UTC(),
	}
}
