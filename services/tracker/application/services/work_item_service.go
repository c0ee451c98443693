package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/worktrack/pkg/cache"
	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/pkg/result"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// CreateWorkItemInput is the data needed to create a work item. Empty enum
// fields keep the work item defaults.
type CreateWorkItemInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Type        string
	AssigneeID  *models.ID[models.User]
}

// UpdateWorkItemInput lists the fields to change; nil fields are left alone.
// An empty Description clears it.
type UpdateWorkItemInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Type        *string
}

// WorkItemService orchestrates work items.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads are served from the Redis read model when available.
type WorkItemService struct {
	repo    repositories.WorkItemRepository
	users   repositories.UserRepository
	cache   WorkItemCache
	log     logger.Logger
	metrics *metrics
}

// Create validates and persists a work item. The repository publishes
// work_item.created.
func (s *WorkItemService) Create(ctx context.Context, in CreateWorkItemInput) (*models.WorkItem, error) {
	b := models.NewWorkItemBuilder().WithTitle(in.Title)
	if in.Description != "" {
		b.WithDescription(in.Description)
	}
	if in.Status != "" {
		b.WithStatus(in.Status)
	}
	if in.Priority != "" {
		b.WithPriority(in.Priority)
	}
	if in.Type != "" {
		b.WithType(in.Type)
	}
	if in.AssigneeID != nil {
		assignee, err := s.users.GetByID(ctx, *in.AssigneeID)
		if err != nil {
			return nil, fmt.Errorf("load assignee: %w", err)
		}
		b.WithAssignee(assignee)
	}

	built := b.Build()
	if err := s.metrics.check(ctx, "work_item", built.Result()); err != nil {
		return nil, err
	}
	item := built.Value()
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save work item: %w", err)
	}
	return item, nil
}

// Get retrieves a work item using a read-through cache:
//  1. Check Redis first.
//  2. On a miss (or cache error), query the database.
//  3. Warm the cache asynchronously with the database result. The cache
//     drops the warm if an update or delete got there first.
func (s *WorkItemService) Get(ctx context.Context, id models.ID[models.WorkItem]) (*models.WorkItem, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id.UUID())
		switch {
		case err == nil:
			if item, err := s.fromCache(ctx, cached); err == nil {
				return item, nil
			}
		case !errors.Is(err, redis.Nil):
			s.log.WarnContext(ctx, "work item cache read failed", "work_item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get work item: %w", err)
	}

	if s.cache != nil {
		entry := ToCachedWorkItem(item)
		go func(ctx context.Context) {
			if err := s.cache.Set(ctx, entry); err != nil {
				s.log.WarnContext(ctx, "work item cache warm failed", "work_item_id", entry.ID, "error", err)
			}
		}(context.WithoutCancel(ctx))
	}
	return item, nil
}

// List returns a page of work items and the total count.
func (s *WorkItemService) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.WorkItem, int, error) {
	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list work items: %w", err)
	}
	return items, total, nil
}

// Update applies every requested change and persists the work item only if
// all of them are valid.
func (s *WorkItemService) Update(ctx context.Context, id models.ID[models.WorkItem], in UpdateWorkItemInput) (*models.WorkItem, error) {
	return s.mutate(ctx, id, func(item *models.WorkItem) result.Result {
		var changes []result.Result
		if in.Title != nil {
			changes = append(changes, item.UpdateTitle(*in.Title))
		}
		if in.Description != nil {
			if *in.Description == "" {
				item.ClearDescription()
			} else {
				changes = append(changes, item.UpdateDescription(*in.Description))
			}
		}
		if in.Status != nil {
			changes = append(changes, item.UpdateStatus(*in.Status))
		}
		if in.Priority != nil {
			changes = append(changes, item.UpdatePriority(*in.Priority))
		}
		if in.Type != nil {
			changes = append(changes, item.UpdateType(*in.Type))
		}
		return result.Combine(changes...)
	})
}

// Assign makes userID the work item's assignee.
func (s *WorkItemService) Assign(ctx context.Context, id models.ID[models.WorkItem], userID models.ID[models.User]) (*models.WorkItem, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load assignee: %w", err)
	}
	return s.mutate(ctx, id, func(item *models.WorkItem) result.Result {
		return item.AssignTo(user)
	})
}

// Unassign clears the assignee.
func (s *WorkItemService) Unassign(ctx context.Context, id models.ID[models.WorkItem]) (*models.WorkItem, error) {
	return s.mutate(ctx, id, func(item *models.WorkItem) result.Result {
		item.Unassign()
		return result.Success()
	})
}

// Delete removes a work item and tombstones its cache entry.
func (s *WorkItemService) Delete(ctx context.Context, id models.ID[models.WorkItem]) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete work item: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, id.UUID()); err != nil {
			s.log.WarnContext(ctx, "work item cache delete failed", "work_item_id", id, "error", err)
		}
	}
	return nil
}

func (s *WorkItemService) mutate(ctx context.Context, id models.ID[models.WorkItem], fn func(*models.WorkItem) result.Result) (*models.WorkItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get work item: %w", err)
	}
	if err := s.metrics.check(ctx, "work_item", fn(item)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update work item: %w", err)
	}
	s.refresh(ctx, item)
	return item, nil
}

// refresh writes the new version through to the cache so slower warms of the
// previous version are rejected. If that fails the entry is evicted.
func (s *WorkItemService) refresh(ctx context.Context, item *models.WorkItem) {
	if s.cache == nil {
		return
	}
	err := s.cache.Set(ctx, ToCachedWorkItem(item))
	if err == nil {
		return
	}
	s.log.WarnContext(ctx, "work item cache refresh failed", "work_item_id", item.ID(), "error", err)
	if err := s.cache.Evict(ctx, item.ID().UUID()); err != nil {
		s.log.WarnContext(ctx, "work item cache eviction failed", "work_item_id", item.ID(), "error", err)
	}
}

func (s *WorkItemService) fromCache(ctx context.Context, c *cache.CachedWorkItem) (*models.WorkItem, error) {
	snap := models.WorkItemSnapshot{
		ID:          models.IDFrom[models.WorkItem](c.ID),
		Title:       c.Title,
		Description: c.Description,
		Status:      models.WorkItemStatus(c.Status),
		Priority:    models.Priority(c.Priority),
		Type:        models.WorkItemType(c.Type),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.AssigneeID != uuid.Nil {
		assignee, err := s.users.GetByID(ctx, models.IDFrom[models.User](c.AssigneeID))
		if err != nil {
			return nil, err
		}
		snap.Assignee = assignee
	}
	return models.RestoreWorkItem(snap), nil
}

// ToCachedWorkItem projects w onto the cache read model.
func ToCachedWorkItem(w *models.WorkItem) *cache.CachedWorkItem {
	c := &cache.CachedWorkItem{
		ID:          w.ID().UUID(),
		Title:       w.Title().String(),
		Description: w.Description().String(),
		Status:      w.Status().String(),
		Priority:    w.Priority().String(),
		Type:        w.Type().String(),
		CreatedAt:   w.CreatedAt(),
		UpdatedAt:   w.UpdatedAt(),
	}
	if a := w.Assignee(); a != nil {
		c.AssigneeID = a.ID().UUID()
	}
	return c
}
