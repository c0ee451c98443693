// Package subscribers consumes tracker domain events published through the outbox.
package subscribers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/cache"
	eventbus "github.com/ghuser/worktrack/pkg/events"
	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/services/tracker/domain/events"
)

// Cache is the work item read model kept in sync by the handlers.
// *cache.WorkItemCache satisfies it.
type Cache interface {
	Set(ctx context.Context, item *cache.CachedWorkItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Subscriber is satisfied by *events.EventBus.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// WorkItemCacheHandlers refreshes the Redis read model from work item events.
// Handlers must be idempotent; the event bus retries failed deliveries.
type WorkItemCacheHandlers struct {
	cache Cache
	log   logger.Logger
}

func NewWorkItemCacheHandlers(c Cache, log logger.Logger) *WorkItemCacheHandlers {
	return &WorkItemCacheHandlers{cache: c, log: log}
}

// Register subscribes the handlers to every work item topic. Subscriber
// errors are logged until ctx is done.
func (h *WorkItemCacheHandlers) Register(ctx context.Context, bus Subscriber) ([]string, error) {
	routes := []struct {
		topic   string
		handler func(context.Context, *message.Message) error
	}{
		{events.TopicWorkItemCreated, h.HandleUpserted},
		{events.TopicWorkItemUpdated, h.HandleUpserted},
		{events.TopicWorkItemDeleted, h.HandleDeleted},
	}

	topics := make([]string, 0, len(routes))
	for _, rt := range routes {
		errCh, err := bus.Subscribe(ctx, rt.topic, rt.handler)
		if err != nil {
			return nil, fmt.Errorf("subscribe %s: %w", rt.topic, err)
		}
		go func(topic string) {
			for err := range errCh {
				h.log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(rt.topic)
		topics = append(topics, rt.topic)
	}
	return topics, nil
}

// HandleUpserted writes the work item carried by a created or updated event.
// The cache keeps the newest version, so a late created event cannot undo an
// update and nothing recreates a deleted work item. Cache warming is
// best-effort; only malformed payloads fail the message.
func (h *WorkItemCacheHandlers) HandleUpserted(ctx context.Context, msg *message.Message) error {
	evt, err := eventbus.DecodeJSON[events.WorkItemEvent](msg)
	if err != nil {
		return err
	}

	item := &cache.CachedWorkItem{
		ID:          evt.WorkItemID,
		Title:       evt.Title,
		Description: evt.Description,
		Status:      evt.Status,
		Priority:    evt.Priority,
		Type:        evt.Type,
		CreatedAt:   evt.CreatedAt,
		UpdatedAt:   evt.UpdatedAt,
	}
	if evt.AssigneeID != nil {
		item.AssigneeID = *evt.AssigneeID
	}

	if err := h.cache.Set(ctx, item); err != nil {
		h.log.WarnContext(ctx, "cache warm failed", "work_item_id", evt.WorkItemID, "error", err)
		return nil
	}
	h.log.DebugContext(ctx, "cache warmed", "work_item_id", evt.WorkItemID, "event_id", evt.EventID)
	return nil
}

// HandleDeleted evicts a deleted work item and tombstones its entry.
func (h *WorkItemCacheHandlers) HandleDeleted(ctx context.Context, msg *message.Message) error {
	evt, err := eventbus.DecodeJSON[events.WorkItemDeletedEvent](msg)
	if err != nil {
		return err
	}
	if err := h.cache.Delete(ctx, evt.WorkItemID); err != nil {
		// Returned so the bus redelivers.
		return fmt.Errorf("evict work item %s: %w", evt.WorkItemID, err)
	}
	return nil
}
