package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// WorkItemCacheTTL is the time-to-live for cached work items.
	WorkItemCacheTTL = 24 * time.Hour

	workItemKeyPrefix = "work_item"
	versionField      = "version"
	maxSetAttempts    = 3
)

// CachedWorkItem is the denormalized work item read model stored as a Redis
// hash. AssigneeID is uuid.Nil when the item is unassigned.
type CachedWorkItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Type        string    `json:"type"`
	AssigneeID  uuid.UUID `json:"assignee_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkItemCache reads and writes work item entries.
// Key format: "work_item:{id}", tombstones "work_item:{id}:deleted".
type WorkItemCache struct {
	client *RedisClient
}

func NewWorkItemCache(r *RedisClient) *WorkItemCache {
	return &WorkItemCache{client: r}
}

// Get returns redis.Nil when the key does not exist or has expired.
func (c *WorkItemCache) Get(ctx context.Context, id uuid.UUID) (*CachedWorkItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, workItemKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeWorkItem(vals)
}

// Version orders snapshots of the same work item. It is UpdatedAt at
// microsecond precision, the precision PostgreSQL stores it with.
func (w *CachedWorkItem) Version() int64 {
	return w.UpdatedAt.UnixMicro()
}

// Set stores item unless the entry already holds the same or a newer version,
// or the work item was deleted. Skipped writes return nil. Events arrive on
// separate subscriptions and read-through warms race with updates, so writes
// can come out of order.
func (c *WorkItemCache) Set(ctx context.Context, item *CachedWorkItem) error {
	key, tomb := workItemKey(item.ID), tombstoneKey(item.ID)
	rdb := c.client.Client()

	write := func(tx *redis.Tx) error {
		deleted, err := tx.Exists(ctx, tomb).Result()
		if err != nil {
			return err
		}
		stored, err := tx.HGet(ctx, key, versionField).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if !accepts(deleted > 0, stored, item.Version()) {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, encodeWorkItem(item)...)
			pipe.Expire(ctx, key, WorkItemCacheTTL)
			return nil
		})
		return err
	}

	for range maxSetAttempts {
		err := rdb.Watch(ctx, write, key, tomb)
		if !errors.Is(err, redis.TxFailedErr) {
			if err != nil {
				return fmt.Errorf("cache set: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("cache set %s: %w", item.ID, redis.TxFailedErr)
}

// accepts reports whether a write of version incoming may replace the entry
// whose stored version is stored ("" when absent).
func accepts(deleted bool, stored string, incoming int64) bool {
	if deleted {
		return false
	}
	if stored == "" {
		return true
	}
	current, err := strconv.ParseInt(stored, 10, 64)
	if err != nil {
		return true
	}
	return incoming > current
}

// Evict drops the entry. A later Set of any version may recreate it.
func (c *WorkItemCache) Evict(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Client().Del(ctx, workItemKey(id)).Err(); err != nil {
		return fmt.Errorf("cache evict: %w", err)
	}
	return nil
}

// Delete drops the entry and leaves a tombstone for WorkItemCacheTTL so late
// writes for the deleted work item are ignored.
func (c *WorkItemCache) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tombstoneKey(id), 1, WorkItemCacheTTL)
		pipe.Del(ctx, workItemKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func workItemKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", workItemKeyPrefix, id)
}

func tombstoneKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:deleted", workItemKeyPrefix, id)
}

func encodeWorkItem(item *CachedWorkItem) []any {
	return []any{
		"id", item.ID.String(),
		"title", item.Title,
		"description", item.Description,
		"status", item.Status,
		"priority", item.Priority,
		"type", item.Type,
		"assignee_id", item.AssigneeID.String(),
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", item.UpdatedAt.UTC().Format(time.RFC3339Nano),
		versionField, strconv.FormatInt(item.Version(), 10),
	}
}

func decodeWorkItem(vals map[string]string) (*CachedWorkItem, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	assignee, err := uuid.Parse(vals["assignee_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse assignee_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	return &CachedWorkItem{
		ID:          id,
		Title:       vals["title"],
		Description: vals["description"],
		Status:      vals["status"],
		Priority:    vals["priority"],
		Type:        vals["type"],
		AssigneeID:  assignee,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
