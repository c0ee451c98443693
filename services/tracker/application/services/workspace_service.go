package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/result"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// WorkspaceService manages workspaces and the resources collected in them.
type WorkspaceService struct {
	repo      repositories.WorkspaceRepository
	users     repositories.UserRepository
	projects  repositories.ProjectRepository
	documents repositories.DocumentationRepository
	metrics   *metrics
}

// Create persists an empty workspace owned by owner.
func (s *WorkspaceService) Create(ctx context.Context, title string, owner models.ID[models.User]) (*models.Workspace, error) {
	if !owner.IsZero() {
		if err := ensureExist[models.User](ctx, s.users, "user", owner); err != nil {
			return nil, err
		}
	}
	built := models.NewWorkspaceBuilder().WithTitle(title).WithOwner(owner).Build()
	if err := s.metrics.check(ctx, "workspace", built.Result()); err != nil {
		return nil, err
	}
	w := built.Value()
	if err := s.repo.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("save workspace: %w", err)
	}
	return w, nil
}

func (s *WorkspaceService) Get(ctx context.Context, id models.ID[models.Workspace]) (*models.Workspace, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return w, nil
}

// AddResource adds the project, document or contact named by kind. The
// resource must exist.
func (s *WorkspaceService) AddResource(ctx context.Context, id models.ID[models.Workspace], kind string, resource uuid.UUID) (*models.Workspace, error) {
	k := models.ParseResourceKind(kind)
	if err := s.metrics.check(ctx, "workspace", k.Result()); err != nil {
		return nil, err
	}
	if err := s.ensureResource(ctx, k.Value(), resource); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(w *models.Workspace) result.Result { return w.AddResource(kind, resource) })
}

func (s *WorkspaceService) RemoveResource(ctx context.Context, id models.ID[models.Workspace], kind string, resource uuid.UUID) (*models.Workspace, error) {
	return s.mutate(ctx, id, func(w *models.Workspace) result.Result { return w.RemoveResource(kind, resource) })
}

func (s *WorkspaceService) ensureResource(ctx context.Context, kind models.ResourceKind, id uuid.UUID) error {
	switch kind {
	case models.ResourceProjects:
		return ensureExist[models.Project](ctx, s.projects, "project", models.IDFrom[models.Project](id))
	case models.ResourceDocuments:
		return ensureExist[models.Documentation](ctx, s.documents, "documentation", models.IDFrom[models.Documentation](id))
	default:
		return ensureExist[models.User](ctx, s.users, "user", models.IDFrom[models.User](id))
	}
}

func (s *WorkspaceService) mutate(ctx context.Context, id models.ID[models.Workspace], fn func(*models.Workspace) result.Result) (*models.Workspace, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.metrics.check(ctx, "workspace", fn(w)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("update workspace: %w", err)
	}
	return w, nil
}
