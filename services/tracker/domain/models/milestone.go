package models

import (
	"slices"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

var (
	ErrMilestoneWorkItemExists   = domainerr.New(domainerr.KindAlreadyExists, "milestone.work_item_exists", "work item is already in the milestone")
	ErrMilestoneWorkItemNotFound = domainerr.New(domainerr.KindNotFound, "milestone.work_item_not_found", "work item is not in the milestone")
)

// Milestone groups the work items that together reach a goal.
type Milestone struct {
	id        ID[Milestone]
	title     MilestoneTitle
	workItems []ID[WorkItem]
}

func NewMilestone() *Milestone {
	return &Milestone{id: NewID[Milestone]()}
}

// RestoreMilestone rebuilds a milestone without validating it.
func RestoreMilestone(id ID[Milestone], title string, workItems []ID[WorkItem]) *Milestone {
	return &Milestone{id: id, title: MilestoneTitle{title}, workItems: slices.Clone(workItems)}
}

func (m *Milestone) ID() ID[Milestone]             { return m.id }
func (m *Milestone) Title() MilestoneTitle         { return m.title }
func (m *Milestone) WorkItems() []ID[WorkItem]     { return slices.Clone(m.workItems) }
func (m *Milestone) Contains(id ID[WorkItem]) bool { return slices.Contains(m.workItems, id) }

func (m *Milestone) UpdateTitle(s string) result.Result {
	return assign(&m.title, NewMilestoneTitle(s))
}

func (m *Milestone) AddWorkItem(id ID[WorkItem]) result.Result {
	return addID(&m.workItems, id, ErrMilestoneWorkItemExists)
}

func (m *Milestone) RemoveWorkItem(id ID[WorkItem]) result.Result {
	return removeID(&m.workItems, id, ErrMilestoneWorkItemNotFound)
}

// MilestoneBuilder assembles a Milestone from raw input.
type MilestoneBuilder struct {
	builder
	milestone *Milestone
}

func NewMilestoneBuilder() *MilestoneBuilder {
	return &MilestoneBuilder{milestone: NewMilestone()}
}

func (b *MilestoneBuilder) WithTitle(s string) *MilestoneBuilder {
	b.apply("title", b.milestone.UpdateTitle(s))
	return b
}

func (b *MilestoneBuilder) WithWorkItems(ids []ID[WorkItem]) *MilestoneBuilder {
	for _, id := range ids {
		b.apply("work_items", b.milestone.AddWorkItem(id))
	}
	return b
}

func (b *MilestoneBuilder) Build() result.Of[*Milestone] {
	m := b.milestone
	return build(&b.builder, m,
		requirement{"title", ErrMilestoneTitleEmpty, func() bool { return !m.title.IsZero() }},
	)
}

// MakeDefaultMilestone builds an empty milestone for tests and seed data.
func MakeDefaultMilestone() result.Of[*Milestone] {
	return NewMilestoneBuilder().WithTitle("Public beta").Build()
}
