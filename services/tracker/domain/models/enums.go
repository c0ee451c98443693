package models

import (
	"slices"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

// WorkItemStatus is the workflow state of a WorkItem.
type WorkItemStatus string

const (
	StatusTodo       WorkItemStatus = "todo"
	StatusInProgress WorkItemStatus = "in_progress"
	StatusInReview   WorkItemStatus = "in_review"
	StatusDone       WorkItemStatus = "done"
	StatusCancelled  WorkItemStatus = "cancelled"
)

var workItemStatuses = []WorkItemStatus{StatusTodo, StatusInProgress, StatusInReview, StatusDone, StatusCancelled}

var ErrInvalidWorkItemStatus = domainerr.New(domainerr.KindOutOfRange, "work_item_status.invalid", "unknown work item status")

// ParseWorkItemStatus converts s to a WorkItemStatus.
func ParseWorkItemStatus(s string) result.Of[WorkItemStatus] {
	return parseEnum(WorkItemStatus(s), workItemStatuses, ErrInvalidWorkItemStatus)
}

// Rank orders statuses along the workflow.
func (s WorkItemStatus) Rank() int { return slices.Index(workItemStatuses, s) }

func (s WorkItemStatus) String() string { return string(s) }

// Priority ranks how urgent a WorkItem or Project is.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

var ErrInvalidPriority = domainerr.New(domainerr.KindOutOfRange, "priority.invalid", "unknown priority")

// ParsePriority converts s to a Priority.
func ParsePriority(s string) result.Of[Priority] {
	return parseEnum(Priority(s), priorities, ErrInvalidPriority)
}

// Rank is 0 for low and grows with urgency.
func (p Priority) Rank() int { return slices.Index(priorities, p) }

func (p Priority) String() string { return string(p) }

// WorkItemType classifies a WorkItem.
type WorkItemType string

const (
	TypeTask  WorkItemType = "task"
	TypeBug   WorkItemType = "bug"
	TypeStory WorkItemType = "story"
	TypeEpic  WorkItemType = "epic"
)

var workItemTypes = []WorkItemType{TypeTask, TypeBug, TypeStory, TypeEpic}

var ErrInvalidWorkItemType = domainerr.New(domainerr.KindOutOfRange, "work_item_type.invalid", "unknown work item type")

// ParseWorkItemType converts s to a WorkItemType.
func ParseWorkItemType(s string) result.Of[WorkItemType] {
	return parseEnum(WorkItemType(s), workItemTypes, ErrInvalidWorkItemType)
}

func (t WorkItemType) String() string { return string(t) }

// ProjectStatus is the lifecycle state of a Project.
type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "planned"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

var projectStatuses = []ProjectStatus{ProjectPlanned, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled}

var ErrInvalidProjectStatus = domainerr.New(domainerr.KindOutOfRange, "project_status.invalid", "unknown project status")

// ParseProjectStatus converts s to a ProjectStatus.
func ParseProjectStatus(s string) result.Of[ProjectStatus] {
	return parseEnum(ProjectStatus(s), projectStatuses, ErrInvalidProjectStatus)
}

func (s ProjectStatus) String() string { return string(s) }

// Methodology is how a Project is run.
type Methodology string

const (
	MethodologyScrum     Methodology = "scrum"
	MethodologyKanban    Methodology = "kanban"
	MethodologyWaterfall Methodology = "waterfall"
	MethodologyHybrid    Methodology = "hybrid"
)

var methodologies = []Methodology{MethodologyScrum, MethodologyKanban, MethodologyWaterfall, MethodologyHybrid}

var ErrInvalidMethodology = domainerr.New(domainerr.KindOutOfRange, "methodology.invalid", "unknown methodology")

// ParseMethodology converts s to a Methodology.
func ParseMethodology(s string) result.Of[Methodology] {
	return parseEnum(Methodology(s), methodologies, ErrInvalidMethodology)
}

func (m Methodology) String() string { return string(m) }

func parseEnum[T comparable](v T, allowed []T, invalid error) result.Of[T] {
	if !slices.Contains(allowed, v) {
		return result.FailureOf[T](invalid)
	}
	return result.SuccessOf(v)
}
