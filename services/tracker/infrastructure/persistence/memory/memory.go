// Package memory provides map-backed repositories for tests and local
// development without PostgreSQL. Aggregates are copied on the way in and
// out so callers never share state with the store.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/services/tracker/domain"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// Repository is a thread-safe in-memory repositories.Repository.
type Repository[T any] struct {
	mu       sync.RWMutex
	items    map[uuid.UUID]*T
	order    []uuid.UUID
	idOf     func(*T) uuid.UUID
	clone    func(*T) *T
	notFound error
}

func newRepository[T any](idOf func(*T) uuid.UUID, clone func(*T) *T, notFound error) *Repository[T] {
	return &Repository[T]{
		items:    make(map[uuid.UUID]*T),
		idOf:     idOf,
		clone:    clone,
		notFound: notFound,
	}
}

func (r *Repository[T]) Save(_ context.Context, aggregate *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.idOf(aggregate)
	if _, ok := r.items[id]; ok {
		return domain.ErrAlreadyExists
	}
	r.items[id] = r.clone(aggregate)
	r.order = append(r.order, id)
	return nil
}

func (r *Repository[T]) GetByID(_ context.Context, id models.ID[T]) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id.UUID()]
	if !ok {
		return nil, r.notFound
	}
	return r.clone(v), nil
}

// List returns aggregates in insertion order.
func (r *Repository[T]) List(_ context.Context, opts repositories.QueryOpts) ([]*T, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.order)
	start := min(max(opts.Offset, 0), total)
	end := total
	if opts.Limit > 0 {
		end = min(start+opts.Limit, total)
	}
	out := make([]*T, 0, end-start)
	for _, id := range r.order[start:end] {
		out = append(out, r.clone(r.items[id]))
	}
	return out, total, nil
}

func (r *Repository[T]) Update(_ context.Context, aggregate *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.idOf(aggregate)
	if _, ok := r.items[id]; !ok {
		return r.notFound
	}
	r.items[id] = r.clone(aggregate)
	return nil
}

func (r *Repository[T]) Delete(_ context.Context, id models.ID[T]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := id.UUID()
	if _, ok := r.items[u]; !ok {
		return r.notFound
	}
	delete(r.items, u)
	r.order = slices.DeleteFunc(r.order, func(v uuid.UUID) bool { return v == u })
	return nil
}

func (r *Repository[T]) Exists(_ context.Context, id models.ID[T]) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id.UUID()]
	return ok, nil
}

// UserRepository adds the unique, case-insensitive email index.
type UserRepository struct {
	*Repository[models.User]
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{newRepository(
		func(u *models.User) uuid.UUID { return u.ID().UUID() },
		cloneUser,
		domain.ErrUserNotFound,
	)}
}

func (r *UserRepository) Save(ctx context.Context, u *models.User) error {
	if _, err := r.GetByEmail(ctx, u.Email().String()); err == nil {
		return domain.ErrUserAlreadyExists
	}
	return r.Repository.Save(ctx, u)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if u := r.items[id]; strings.EqualFold(u.Email().String(), email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func NewWorkItemRepository() *Repository[models.WorkItem] {
	return newRepository(func(w *models.WorkItem) uuid.UUID { return w.ID().UUID() }, cloneWorkItem, domain.ErrWorkItemNotFound)
}

func NewBoardRepository() *Repository[models.Board] {
	return newRepository(func(b *models.Board) uuid.UUID { return b.ID().UUID() }, cloneBoard, domain.ErrBoardNotFound)
}

func NewIterationRepository() *Repository[models.Iteration] {
	return newRepository(func(i *models.Iteration) uuid.UUID { return i.ID().UUID() }, cloneIteration, domain.ErrIterationNotFound)
}

func NewMilestoneRepository() *Repository[models.Milestone] {
	return newRepository(func(m *models.Milestone) uuid.UUID { return m.ID().UUID() }, cloneMilestone, domain.ErrMilestoneNotFound)
}

func NewProjectRepository() *Repository[models.Project] {
	return newRepository(func(p *models.Project) uuid.UUID { return p.ID().UUID() }, cloneProject, domain.ErrProjectNotFound)
}

func NewOrganisationRepository() *Repository[models.Organisation] {
	return newRepository(func(o *models.Organisation) uuid.UUID { return o.ID().UUID() }, cloneOrganisation, domain.ErrOrganisationNotFound)
}

func NewWorkspaceRepository() *Repository[models.Workspace] {
	return newRepository(func(w *models.Workspace) uuid.UUID { return w.ID().UUID() }, cloneWorkspace, domain.ErrWorkspaceNotFound)
}

func NewDocumentationRepository() *Repository[models.Documentation] {
	return newRepository(func(d *models.Documentation) uuid.UUID { return d.ID().UUID() }, cloneDocumentation, domain.ErrDocumentationNotFound)
}

func cloneUser(u *models.User) *models.User {
	return models.RestoreUser(u.ID(), u.FirstName().String(), u.LastName().String(), u.Email().String(), u.PasswordHash(), u.CreatedAt())
}

func cloneWorkItem(w *models.WorkItem) *models.WorkItem {
	s := models.WorkItemSnapshot{
		ID:          w.ID(),
		Title:       w.Title().String(),
		Description: w.Description().String(),
		Status:      w.Status(),
		Priority:    w.Priority(),
		Type:        w.Type(),
		CreatedAt:   w.CreatedAt(),
		UpdatedAt:   w.UpdatedAt(),
	}
	if a := w.Assignee(); a != nil {
		s.Assignee = cloneUser(a)
	}
	return models.RestoreWorkItem(s)
}

func cloneBoard(b *models.Board) *models.Board {
	return models.RestoreBoard(b.ID(), b.Title().String(), b.Filters(), b.OrderBy())
}

func cloneIteration(i *models.Iteration) *models.Iteration {
	return models.RestoreIteration(i.ID(), i.Title().String(), i.WorkItems())
}

func cloneMilestone(m *models.Milestone) *models.Milestone {
	return models.RestoreMilestone(m.ID(), m.Title().String(), m.WorkItems())
}

func cloneProject(p *models.Project) *models.Project {
	return models.RestoreProject(models.ProjectSnapshot{
		ID:          p.ID(),
		Title:       p.Title().String(),
		Description: p.Description().String(),
		Start:       p.TimeRange().Start(),
		End:         p.TimeRange().End(),
		Status:      p.Status(),
		Priority:    p.Priority(),
		Methodology: p.Methodology(),
	})
}

func cloneOrganisation(o *models.Organisation) *models.Organisation {
	return models.RestoreOrganisation(o.ID(), o.Name().String(), o.Owners())
}

func cloneWorkspace(w *models.Workspace) *models.Workspace {
	return models.RestoreWorkspace(models.WorkspaceSnapshot{
		ID:        w.ID(),
		Title:     w.Title().String(),
		Owner:     w.Owner(),
		Projects:  w.Projects(),
		Documents: w.Documents(),
		Contacts:  w.Contacts(),
	})
}

func cloneDocumentation(d *models.Documentation) *models.Documentation {
	return models.RestoreDocumentation(d.ID(), d.Title().String(), d.Format().String(), d.ContentReference().String())
}
