package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ghuser/worktrack/pkg/database"
	"github.com/ghuser/worktrack/services/tracker/domain"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	*store[models.User, UserRecord]
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository returns a UserRepository. A second registration with the
// same email returns ErrUserAlreadyExists.
func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{&store[models.User, UserRecord]{
		db:       db,
		name:     "user",
		notFound: domain.ErrUserNotFound,
		conflict: domain.ErrUserAlreadyExists,
		toRecord: userToRecord,
		toModel:  recordToUser,
	}}
}

// GetByEmail looks a user up by email, ignoring case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var rec UserRecord
	err := r.db.DB().WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return recordToUser(&rec), nil
}

// NewBoardRepository returns a gorm-backed board repository.
func NewBoardRepository(db *database.Database) repositories.BoardRepository {
	return &store[models.Board, BoardRecord]{
		db:       db,
		name:     "board",
		notFound: domain.ErrBoardNotFound,
		conflict: domain.ErrAlreadyExists,
		toRecord: boardToRecord,
		toModel:  recordToBoard,
	}
}

func NewIterationRepository(db *database.Database) repositories.IterationRepository {
	return &store[models.Iteration, IterationRecord]{
		db:       db,
		name:     "iteration",
		notFound: domain.ErrIterationNotFound,
		conflict: domain.ErrAlreadyExists,
		toRecord: iterationToRecord,
		toModel:  recordToIteration,
	}
}

func NewMilestoneRepository(db *database.Database) repositories.MilestoneRepository {
	return &store[models.Milestone, MilestoneRecord]{
		db:       db,
		name:     "milestone",
		notFound: domain.ErrMilestoneNotFound,
		conflict: domain.ErrAlreadyExists,
		toRecord: milestoneToRecord,
		toModel:  recordToMilestone,
	}
}

func NewProjectRepository(db *database.Database) repositories.ProjectRepository {
	return &store[models.Project, ProjectRecord]{
		db:       db,
		name:     "project",
		notFound: domain.ErrProjectNotFound,
		conflict: domain.ErrAlreadyExists,
		toRecord: projectToRecord,
		toModel:  recordToProject,
	}
}

func NewOrganisationRepository(db *database.Database) repositories.OrganisationRepository {
	return &store[models.Organisation, OrganisationRecord]{
		db:       db,
		name:     "organisation",
		notFound: domain.ErrOrganisationNotFound,
		conflict: domain.ErrAlreadyExists,
		toRecord: organisationToRecord,
		toModel:  recordToOrganisation,
	}
}

func NewWorkspaceRepository(db *database.Database) repositories.WorkspaceRepository {
	return &store[models.Workspace, WorkspaceRecord]{
		db:       db,
		name:     "workspace",
		notFound: domain.ErrWorkspaceNotFound,
		conflict: domain.ErrAlreadyExists,
		toRecord: workspaceToRecord,
		toModel:  recordToWorkspace,
	}
}

func NewDocumentationRepository(db *database.Database) repositories.DocumentationRepository {
	return &store[models.Documentation, DocumentationRecord]{
		db:       db,
		name:     "documentation",
		notFound: domain.ErrDocumentationNotFound,
		conflict: domain.ErrAlreadyExists,
		toRecord: documentationToRecord,
		toModel:  recordToDocumentation,
	}
}
