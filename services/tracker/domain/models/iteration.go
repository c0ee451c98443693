package models

import (
	"slices"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

var (
	ErrIterationWorkItemExists   = domainerr.New(domainerr.KindAlreadyExists, "iteration.work_item_exists", "work item is already in the iteration")
	ErrIterationWorkItemNotFound = domainerr.New(domainerr.KindNotFound, "iteration.work_item_not_found", "work item is not in the iteration")
)

// Iteration is a time-boxed batch of work items.
type Iteration struct {
	id        ID[Iteration]
	title     IterationTitle
	workItems []ID[WorkItem]
}

func NewIteration() *Iteration {
	return &Iteration{id: NewID[Iteration]()}
}

// RestoreIteration rebuilds an iteration without validating it.
func RestoreIteration(id ID[Iteration], title string, workItems []ID[WorkItem]) *Iteration {
	return &Iteration{id: id, title: IterationTitle{title}, workItems: slices.Clone(workItems)}
}

func (i *Iteration) ID() ID[Iteration]             { return i.id }
func (i *Iteration) Title() IterationTitle         { return i.title }
func (i *Iteration) WorkItems() []ID[WorkItem]     { return slices.Clone(i.workItems) }
func (i *Iteration) Contains(id ID[WorkItem]) bool { return slices.Contains(i.workItems, id) }

func (i *Iteration) UpdateTitle(s string) result.Result {
	return assign(&i.title, NewIterationTitle(s))
}

func (i *Iteration) AddWorkItem(id ID[WorkItem]) result.Result {
	return addID(&i.workItems, id, ErrIterationWorkItemExists)
}

func (i *Iteration) RemoveWorkItem(id ID[WorkItem]) result.Result {
	return removeID(&i.workItems, id, ErrIterationWorkItemNotFound)
}

// IterationBuilder assembles an Iteration from raw input.
type IterationBuilder struct {
	builder
	iteration *Iteration
}

func NewIterationBuilder() *IterationBuilder {
	return &IterationBuilder{iteration: NewIteration()}
}

func (b *IterationBuilder) WithTitle(s string) *IterationBuilder {
	b.apply("title", b.iteration.UpdateTitle(s))
	return b
}

func (b *IterationBuilder) WithWorkItems(ids []ID[WorkItem]) *IterationBuilder {
	for _, id := range ids {
		b.apply("work_items", b.iteration.AddWorkItem(id))
	}
	return b
}

func (b *IterationBuilder) Build() result.Of[*Iteration] {
	it := b.iteration
	return build(&b.builder, it,
		requirement{"title", ErrIterationTitleEmpty, func() bool { return !it.title.IsZero() }},
	)
}

// MakeDefaultIteration builds an empty iteration for tests and seed data.
func MakeDefaultIteration() result.Of[*Iteration] {
	return NewIterationBuilder().WithTitle("Sprint 1").Build()
}
