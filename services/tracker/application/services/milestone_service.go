package services

import (
	"context"
	"fmt"

	"github.com/ghuser/worktrack/pkg/result"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// MilestoneService manages milestones and their work items.
type MilestoneService struct {
	repo      repositories.MilestoneRepository
	workItems repositories.WorkItemRepository
	metrics   *metrics
}

// Create persists a new milestone. Every referenced work item must exist.
func (s *MilestoneService) Create(ctx context.Context, title string, workItems []models.ID[models.WorkItem]) (*models.Milestone, error) {
	if err := ensureWorkItems(ctx, s.workItems, workItems...); err != nil {
		return nil, err
	}
	built := models.NewMilestoneBuilder().WithTitle(title).WithWorkItems(workItems).Build()
	if err := s.metrics.check(ctx, "milestone", built.Result()); err != nil {
		return nil, err
	}
	m := built.Value()
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("save milestone: %w", err)
	}
	return m, nil
}

func (s *MilestoneService) Get(ctx context.Context, id models.ID[models.Milestone]) (*models.Milestone, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get milestone: %w", err)
	}
	return m, nil
}

func (s *MilestoneService) Delete(ctx context.Context, id models.ID[models.Milestone]) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete milestone: %w", err)
	}
	return nil
}

func (s *MilestoneService) AddWorkItem(ctx context.Context, id models.ID[models.Milestone], workItem models.ID[models.WorkItem]) (*models.Milestone, error) {
	if err := ensureWorkItems(ctx, s.workItems, workItem); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(m *models.Milestone) result.Result { return m.AddWorkItem(workItem) })
}

func (s *MilestoneService) RemoveWorkItem(ctx context.Context, id models.ID[models.Milestone], workItem models.ID[models.WorkItem]) (*models.Milestone, error) {
	return s.mutate(ctx, id, func(m *models.Milestone) result.Result { return m.RemoveWorkItem(workItem) })
}

func (s *MilestoneService) mutate(ctx context.Context, id models.ID[models.Milestone], fn func(*models.Milestone) result.Result) (*models.Milestone, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.metrics.check(ctx, "milestone", fn(m)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update milestone: %w", err)
	}
	return m, nil
}
