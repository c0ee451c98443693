package models

import (
	"time"

	"github.com/ghuser/worktrack/pkg/result"
)

// WorkItem is a unit of work: a task, bug, story or epic.
type WorkItem struct {
	id          ID[WorkItem]
	title       WorkItemTitle
	description Description
	status      WorkItemStatus
	priority    Priority
	itemType    WorkItemType
	assignee    *User
	createdAt   time.Time
	updatedAt   time.Time
}

// NewWorkItem returns an untitled todo task of medium priority.
func NewWorkItem() *WorkItem {
	t := now()
	return &WorkItem{
		id:        NewID[WorkItem](),
		status:    StatusTodo,
		priority:  PriorityMedium,
		itemType:  TypeTask,
		createdAt: t,
		updatedAt: t,
	}
}

// WorkItemSnapshot carries stored fields into RestoreWorkItem.
type WorkItemSnapshot struct {
	ID          ID[WorkItem]
	Title       string
	Description string
	Status      WorkItemStatus
	Priority    Priority
	Type        WorkItemType
	Assignee    *User
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RestoreWorkItem rebuilds a work item without validating it.
func RestoreWorkItem(s WorkItemSnapshot) *WorkItem {
	return &WorkItem{
		id:          s.ID,
		title:       WorkItemTitle{s.Title},
		description: Description{s.Description},
		status:      s.Status,
		priority:    s.Priority,
		itemType:    s.Type,
		assignee:    s.Assignee,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
}

func (w *WorkItem) ID() ID[WorkItem]         { return w.id }
func (w *WorkItem) Title() WorkItemTitle     { return w.title }
func (w *WorkItem) Description() Description { return w.description }
func (w *WorkItem) Status() WorkItemStatus   { return w.status }
func (w *WorkItem) Priority() Priority       { return w.priority }
func (w *WorkItem) Type() WorkItemType       { return w.itemType }
func (w *WorkItem) CreatedAt() time.Time     { return w.createdAt }
func (w *WorkItem) UpdatedAt() time.Time     { return w.updatedAt }

// Assignee is nil when nobody is assigned.
func (w *WorkItem) Assignee() *User { return w.assignee }

func (w *WorkItem) UpdateTitle(s string) result.Result {
	return w.touch(assign(&w.title, NewWorkItemTitle(s)))
}

func (w *WorkItem) UpdateDescription(s string) result.Result {
	return w.touch(assign(&w.description, NewDescription(s)))
}

// ClearDescription removes the optional description.
func (w *WorkItem) ClearDescription() {
	w.description = Description{}
	w.updatedAt = now()
}

func (w *WorkItem) UpdateStatus(s string) result.Result {
	return w.touch(assign(&w.status, ParseWorkItemStatus(s)))
}

func (w *WorkItem) UpdatePriority(s string) result.Result {
	return w.touch(assign(&w.priority, ParsePriority(s)))
}

func (w *WorkItem) UpdateType(s string) result.Result {
	return w.touch(assign(&w.itemType, ParseWorkItemType(s)))
}

// AssignTo sets the assignee. A nil user fails with ErrNilArgument.
func (w *WorkItem) AssignTo(u *User) result.Result {
	if u == nil {
		return result.Failure(ErrNilArgument.WithField("assignee"))
	}
	w.assignee = u
	return w.touch(result.Success())
}

func (w *WorkItem) Unassign() {
	w.assignee = nil
	w.updatedAt = now()
}

func (w *WorkItem) touch(r result.Result) result.Result {
	if r.IsSuccess() {
		w.updatedAt = now()
	}
	return r
}

// WorkItemBuilder assembles a WorkItem from raw input.
type WorkItemBuilder struct {
	builder
	item *WorkItem
}

func NewWorkItemBuilder() *WorkItemBuilder {
	return &WorkItemBuilder{item: NewWorkItem()}
}

func (b *WorkItemBuilder) WithTitle(s string) *WorkItemBuilder {
	b.apply("title", b.item.UpdateTitle(s))
	return b
}

func (b *WorkItemBuilder) WithDescription(s string) *WorkItemBuilder {
	b.apply("description", b.item.UpdateDescription(s))
	return b
}

func (b *WorkItemBuilder) WithStatus(s string) *WorkItemBuilder {
	b.apply("status", b.item.UpdateStatus(s))
	return b
}

func (b *WorkItemBuilder) WithPriority(s string) *WorkItemBuilder {
	b.apply("priority", b.item.UpdatePriority(s))
	return b
}

func (b *WorkItemBuilder) WithType(s string) *WorkItemBuilder {
	b.apply("type", b.item.UpdateType(s))
	return b
}

func (b *WorkItemBuilder) WithAssignee(u *User) *WorkItemBuilder {
	b.apply("assignee", b.item.AssignTo(u))
	return b
}

func (b *WorkItemBuilder) Build() result.Of[*WorkItem] {
	w := b.item
	return build(&b.builder, w,
		requirement{"title", ErrWorkItemTitleEmpty, func() bool { return !w.title.IsZero() }},
	)
}

// MakeDefaultWorkItem builds a valid work item for tests and seed data.
func MakeDefaultWorkItem() result.Of[*WorkItem] {
	return NewWorkItemBuilder().
		WithTitle("Write release notes").
		WithDescription("Summarise the changes shipped this iteration.").
		WithStatus(string(StatusTodo)).
		WithPriority(string(PriorityMedium)).
		WithType(string(TypeTask)).
		Build()
}
