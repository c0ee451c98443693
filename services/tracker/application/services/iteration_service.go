package services

import (
	"context"
	"fmt"

	"github.com/ghuser/worktrack/pkg/result"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// IterationService manages iterations and their work items.
type IterationService struct {
	repo      repositories.IterationRepository
	workItems repositories.WorkItemRepository
	metrics   *metrics
}

// Create persists a new iteration. Every referenced work item must exist.
func (s *IterationService) Create(ctx context.Context, title string, workItems []models.ID[models.WorkItem]) (*models.Iteration, error) {
	if err := ensureWorkItems(ctx, s.workItems, workItems...); err != nil {
		return nil, err
	}
	built := models.NewIterationBuilder().WithTitle(title).WithWorkItems(workItems).Build()
	if err := s.metrics.check(ctx, "iteration", built.Result()); err != nil {
		return nil, err
	}
	it := built.Value()
	if err := s.repo.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("save iteration: %w", err)
	}
	return it, nil
}

func (s *IterationService) Get(ctx context.Context, id models.ID[models.Iteration]) (*models.Iteration, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get iteration: %w", err)
	}
	return it, nil
}

func (s *IterationService) Delete(ctx context.Context, id models.ID[models.Iteration]) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete iteration: %w", err)
	}
	return nil
}

func (s *IterationService) AddWorkItem(ctx context.Context, id models.ID[models.Iteration], workItem models.ID[models.WorkItem]) (*models.Iteration, error) {
	if err := ensureWorkItems(ctx, s.workItems, workItem); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(it *models.Iteration) result.Result { return it.AddWorkItem(workItem) })
}

func (s *IterationService) RemoveWorkItem(ctx context.Context, id models.ID[models.Iteration], workItem models.ID[models.WorkItem]) (*models.Iteration, error) {
	return s.mutate(ctx, id, func(it *models.Iteration) result.Result { return it.RemoveWorkItem(workItem) })
}

func (s *IterationService) mutate(ctx context.Context, id models.ID[models.Iteration], fn func(*models.Iteration) result.Result) (*models.Iteration, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.metrics.check(ctx, "iteration", fn(it)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("update iteration: %w", err)
	}
	return it, nil
}

// ensureWorkItems returns ErrWorkItemNotFound for the first id with no work item.
func ensureWorkItems(ctx context.Context, repo repositories.WorkItemRepository, ids ...models.ID[models.WorkItem]) error {
	return ensureExist[models.WorkItem](ctx, repo, "work item", ids...)
}

// ensureExist fetches each id and returns the repository's not-found error
// for the first one missing.
func ensureExist[T any](ctx context.Context, repo repositories.Repository[T], name string, ids ...models.ID[T]) error {
	for _, id := range ids {
		if _, err := repo.GetByID(ctx, id); err != nil {
			return fmt.Errorf("check %s %s: %w", name, id, err)
		}
	}
	return nil
}
