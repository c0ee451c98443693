package repositories

import (
	"context"

	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return; <= 0 returns all
	Offset int // Number of records to skip
}

// Repository is the persistence interface shared by every aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Lookups of a missing aggregate return the matching domain not-found error.
type Repository[T any] interface {
	Save(ctx context.Context, aggregate *T) error
	GetByID(ctx context.Context, id models.ID[T]) (*T, error)

	// List retrieves a page of aggregates and the total count (ignoring pagination).
	List(ctx context.Context, opts QueryOpts) ([]*T, int, error)

	// Update persists changes to an existing aggregate.
	Update(ctx context.Context, aggregate *T) error

	Delete(ctx context.Context, id models.ID[T]) error
	Exists(ctx context.Context, id models.ID[T]) (bool, error)
}

// UserRepository adds lookup by the unique email address.
type UserRepository interface {
	Repository[models.User]
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type (
	WorkItemRepository      = Repository[models.WorkItem]
	BoardRepository         = Repository[models.Board]
	IterationRepository     = Repository[models.Iteration]
	MilestoneRepository     = Repository[models.Milestone]
	ProjectRepository       = Repository[models.Project]
	OrganisationRepository  = Repository[models.Organisation]
	WorkspaceRepository     = Repository[models.Workspace]
	DocumentationRepository = Repository[models.Documentation]
)
