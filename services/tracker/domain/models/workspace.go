package models

import (
	"slices"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

// ResourceKind names one of the workspace resource collections.
type ResourceKind string

const (
	ResourceProjects  ResourceKind = "projects"
	ResourceDocuments ResourceKind = "documents"
	ResourceContacts  ResourceKind = "contacts"
)

var resourceKinds = []ResourceKind{ResourceProjects, ResourceDocuments, ResourceContacts}

var (
	ErrWorkspaceOwnerEmpty      = domainerr.New(domainerr.KindEmpty, "workspace.owner_empty", "workspace owner must be set")
	ErrInvalidResourceKind      = domainerr.New(domainerr.KindOutOfRange, "workspace.invalid_resource_kind", "resource kind must be projects, documents or contacts")
	ErrWorkspaceResourceExists  = domainerr.New(domainerr.KindAlreadyExists, "workspace.resource_exists", "resource is already in the workspace")
	ErrWorkspaceResourceMissing = domainerr.New(domainerr.KindNotFound, "workspace.resource_not_found", "resource is not in the workspace")
)

// ParseResourceKind converts s to a ResourceKind.
func ParseResourceKind(s string) result.Of[ResourceKind] {
	return parseEnum(ResourceKind(s), resourceKinds, ErrInvalidResourceKind)
}

// Workspace is a user's personal collection of projects, documents and
// contacts.
type Workspace struct {
	id        ID[Workspace]
	title     WorkspaceTitle
	owner     ID[User]
	projects  []ID[Project]
	documents []ID[Documentation]
	contacts  []ID[User]
}

func NewWorkspace() *Workspace {
	return &Workspace{id: NewID[Workspace]()}
}

// WorkspaceSnapshot carries stored fields into RestoreWorkspace.
type WorkspaceSnapshot struct {
	ID        ID[Workspace]
	Title     string
	Owner     ID[User]
	Projects  []ID[Project]
	Documents []ID[Documentation]
	Contacts  []ID[User]
}

// RestoreWorkspace rebuilds a workspace without validating it.
func RestoreWorkspace(s WorkspaceSnapshot) *Workspace {
	return &Workspace{
		id:        s.ID,
		title:     WorkspaceTitle{s.Title},
		owner:     s.Owner,
		projects:  slices.Clone(s.Projects),
		documents: slices.Clone(s.Documents),
		contacts:  slices.Clone(s.Contacts),
	}
}

func (w *Workspace) ID() ID[Workspace]              { return w.id }
func (w *Workspace) Title() WorkspaceTitle          { return w.title }
func (w *Workspace) Owner() ID[User]                { return w.owner }
func (w *Workspace) Projects() []ID[Project]        { return slices.Clone(w.projects) }
func (w *Workspace) Documents() []ID[Documentation] { return slices.Clone(w.documents) }
func (w *Workspace) Contacts() []ID[User]           { return slices.Clone(w.contacts) }

func (w *Workspace) UpdateTitle(s string) result.Result {
	return assign(&w.title, NewWorkspaceTitle(s))
}

// UpdateOwner transfers the workspace. An unset id counts as empty.
func (w *Workspace) UpdateOwner(id ID[User]) result.Result {
	if id.IsZero() {
		return result.Failure(ErrWorkspaceOwnerEmpty)
	}
	w.owner = id
	return result.Success()
}

func (w *Workspace) AddProject(id ID[Project]) result.Result {
	return addID(&w.projects, id, ErrWorkspaceResourceExists.WithField(string(ResourceProjects)))
}

func (w *Workspace) RemoveProject(id ID[Project]) result.Result {
	return removeID(&w.projects, id, ErrWorkspaceResourceMissing.WithField(string(ResourceProjects)))
}

func (w *Workspace) AddDocument(id ID[Documentation]) result.Result {
	return addID(&w.documents, id, ErrWorkspaceResourceExists.WithField(string(ResourceDocuments)))
}

func (w *Workspace) RemoveDocument(id ID[Documentation]) result.Result {
	return removeID(&w.documents, id, ErrWorkspaceResourceMissing.WithField(string(ResourceDocuments)))
}

func (w *Workspace) AddContact(id ID[User]) result.Result {
	return addID(&w.contacts, id, ErrWorkspaceResourceExists.WithField(string(ResourceContacts)))
}

func (w *Workspace) RemoveContact(id ID[User]) result.Result {
	return removeID(&w.contacts, id, ErrWorkspaceResourceMissing.WithField(string(ResourceContacts)))
}

// AddResource adds a raw id to the collection named by kind.
func (w *Workspace) AddResource(kind string, id uuid.UUID) result.Result {
	k := ParseResourceKind(kind)
	if k.IsFailure() {
		return k.Result()
	}
	switch k.Value() {
	case ResourceProjects:
		return w.AddProject(IDFrom[Project](id))
	case ResourceDocuments:
		return w.AddDocument(IDFrom[Documentation](id))
	default:
		return w.AddContact(IDFrom[User](id))
	}
}

// RemoveResource removes a raw id from the collection named by kind.
func (w *Workspace) RemoveResource(kind string, id uuid.UUID) result.Result {
	k := ParseResourceKind(kind)
	if k.IsFailure() {
		return k.Result()
	}
	switch k.Value() {
	case ResourceProjects:
		return w.RemoveProject(IDFrom[Project](id))
	case ResourceDocuments:
		return w.RemoveDocument(IDFrom[Documentation](id))
	default:
		return w.RemoveContact(IDFrom[User](id))
	}
}

// WorkspaceBuilder assembles a Workspace from raw input.
type WorkspaceBuilder struct {
	builder
	workspace *Workspace
}

func NewWorkspaceBuilder() *WorkspaceBuilder {
	return &WorkspaceBuilder{workspace: NewWorkspace()}
}

func (b *WorkspaceBuilder) WithTitle(s string) *WorkspaceBuilder {
	b.apply("title", b.workspace.UpdateTitle(s))
	return b
}

func (b *WorkspaceBuilder) WithOwner(id ID[User]) *WorkspaceBuilder {
	b.apply("owner", b.workspace.UpdateOwner(id))
	return b
}

func (b *WorkspaceBuilder) WithProjects(ids []ID[Project]) *WorkspaceBuilder {
	for _, id := range ids {
		b.apply("projects", b.workspace.AddProject(id))
	}
	return b
}

func (b *WorkspaceBuilder) WithDocuments(ids []ID[Documentation]) *WorkspaceBuilder {
	for _, id := range ids {
		b.apply("documents", b.workspace.AddDocument(id))
	}
	return b
}

func (b *WorkspaceBuilder) WithContacts(ids []ID[User]) *WorkspaceBuilder {
	for _, id := range ids {
		b.apply("contacts", b.workspace.AddContact(id))
	}
	return b
}

func (b *WorkspaceBuilder) Build() result.Of[*Workspace] {
	w := b.workspace
	return build(&b.builder, w,
		requirement{"title", ErrWorkspaceTitleEmpty, func() bool { return !w.title.IsZero() }},
		requirement{"owner", ErrWorkspaceOwnerEmpty, func() bool { return !w.owner.IsZero() }},
	)
}

// MakeDefaultWorkspace builds an empty workspace owned by owner.
func MakeDefaultWorkspace(owner ID[User]) result.Of[*Workspace] {
	return NewWorkspaceBuilder().
		WithTitle("My Workspace").
		WithOwner(owner).
		Build()
}
