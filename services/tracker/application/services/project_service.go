package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// CreateProjectInput is the data needed to create a project. Empty optional
// fields keep the project defaults.
type CreateProjectInput struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Status      string
	Priority    string
	Methodology string
}

// ProjectService manages projects.
type ProjectService struct {
	repo    repositories.ProjectRepository
	metrics *metrics
}

// Create validates and persists a project. A missing time range is reported
// as a required field.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	b := models.NewProjectBuilder().WithTitle(in.Title)
	if in.Description != "" {
		b.WithDescription(in.Description)
	}
	if !in.Start.IsZero() || !in.End.IsZero() {
		b.WithTimeRange(in.Start, in.End)
	}
	if in.Status != "" {
		b.WithStatus(in.Status)
	}
	if in.Priority != "" {
		b.WithPriority(in.Priority)
	}
	if in.Methodology != "" {
		b.WithMethodology(in.Methodology)
	}

	built := b.Build()
	if err := s.metrics.check(ctx, "project", built.Result()); err != nil {
		return nil, err
	}
	p := built.Value()
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id models.ID[models.Project]) (*models.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List returns a page of projects and the total count.
func (s *ProjectService) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Project, int, error) {
	projects, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	return projects, total, nil
}

func (s *ProjectService) Delete(ctx context.Context, id models.ID[models.Project]) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
