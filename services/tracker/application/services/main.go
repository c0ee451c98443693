package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/app"
	"github.com/ghuser/worktrack/pkg/cache"
	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/services/tracker/application/workflows"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
	"github.com/ghuser/worktrack/services/tracker/infrastructure/persistence/postgres"
)

// WorkItemCache is the read model cache consulted before the database.
// *cache.WorkItemCache satisfies it.
type WorkItemCache interface {
	Get(ctx context.Context, id uuid.UUID) (*cache.CachedWorkItem, error)
	Set(ctx context.Context, item *cache.CachedWorkItem) error
	Evict(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContentStore holds documentation bodies. *storage.S3Store satisfies it.
type ContentStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// CleanupScheduler defers deletion of stored content to a durable workflow.
// *workflows.CleanupScheduler satisfies it.
type CleanupScheduler interface {
	ScheduleContentCleanup(ctx context.Context, documentationID, contentKey string) error
}

// Deps lists everything the tracker services need. Only the repositories
// are required; nil infrastructure disables the matching feature.
type Deps struct {
	Logger logger.Logger

	Users          repositories.UserRepository
	WorkItems      repositories.WorkItemRepository
	Boards         repositories.BoardRepository
	Iterations     repositories.IterationRepository
	Milestones     repositories.MilestoneRepository
	Projects       repositories.ProjectRepository
	Organisations  repositories.OrganisationRepository
	Workspaces     repositories.WorkspaceRepository
	Documentations repositories.DocumentationRepository

	Cache     WorkItemCache
	Content   ContentStore
	Scheduler CleanupScheduler
}

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	User          *UserService
	WorkItem      *WorkItemService
	Board         *BoardService
	Iteration     *IterationService
	Milestone     *MilestoneService
	Project       *ProjectService
	Organisation  *OrganisationService
	Workspace     *WorkspaceService
	Documentation *DocumentationService
}

// New wires all tracker application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	deps := Deps{
		Logger:         a.Logger,
		Users:          postgres.NewUserRepository(a.Db),
		Boards:         postgres.NewBoardRepository(a.Db),
		Iterations:     postgres.NewIterationRepository(a.Db),
		Milestones:     postgres.NewMilestoneRepository(a.Db),
		Projects:       postgres.NewProjectRepository(a.Db),
		Organisations:  postgres.NewOrganisationRepository(a.Db),
		Workspaces:     postgres.NewWorkspaceRepository(a.Db),
		Documentations: postgres.NewDocumentationRepository(a.Db),
	}
	var bus postgres.TxPublisher
	if a.EventBus != nil {
		bus = a.EventBus
	}
	deps.WorkItems = postgres.NewWorkItemRepository(a.Db, bus)
	if a.Redis != nil {
		deps.Cache = cache.NewWorkItemCache(a.Redis)
	}
	if a.Storage != nil {
		deps.Content = a.Storage
	}
	if a.TemporalClient != nil {
		deps.Scheduler = workflows.NewCleanupScheduler(a.TemporalClient.Client, a.TemporalClient.TaskQueue)
	}
	return NewServices(deps)
}

// NewServices builds the container from explicit dependencies.
func NewServices(d Deps) *Services {
	if d.Logger == nil {
		d.Logger = logger.NewWithWriter(io.Discard, "error")
	}
	m := newMetrics()
	return &Services{
		User:          &UserService{repo: d.Users, metrics: m},
		WorkItem:      &WorkItemService{repo: d.WorkItems, users: d.Users, cache: d.Cache, log: d.Logger, metrics: m},
		Board:         &BoardService{repo: d.Boards, workItems: d.WorkItems, metrics: m},
		Iteration:     &IterationService{repo: d.Iterations, workItems: d.WorkItems, metrics: m},
		Milestone:     &MilestoneService{repo: d.Milestones, workItems: d.WorkItems, metrics: m},
		Project:       &ProjectService{repo: d.Projects, metrics: m},
		Organisation:  &OrganisationService{repo: d.Organisations, users: d.Users, metrics: m},
		Workspace:     &WorkspaceService{repo: d.Workspaces, users: d.Users, projects: d.Projects, documents: d.Documentations, metrics: m},
		Documentation: &DocumentationService{repo: d.Documentations, content: d.Content, scheduler: d.Scheduler, log: d.Logger, metrics: m},
	}
}
