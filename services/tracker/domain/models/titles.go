package models

import "github.com/ghuser/worktrack/pkg/result"

const (
	minTitleLength = 3
	maxTitleLength = 75
)

var (
	boardTitleRules         = newTextRules("board title", "board_title", minTitleLength, maxTitleLength)
	workItemTitleRules      = newTextRules("work item title", "work_item_title", minTitleLength, maxTitleLength)
	iterationTitleRules     = newTextRules("iteration title", "iteration_title", minTitleLength, maxTitleLength)
	milestoneTitleRules     = newTextRules("milestone title", "milestone_title", minTitleLength, maxTitleLength)
	projectTitleRules       = newTextRules("project title", "project_title", minTitleLength, maxTitleLength)
	workspaceTitleRules     = newTextRules("workspace title", "workspace_title", minTitleLength, maxTitleLength)
	documentationTitleRules = newTextRules("documentation title", "documentation_title", minTitleLength, maxTitleLength)
)

// Title validation errors. Compare with errors.Is.
var (
	ErrBoardTitleEmpty    = boardTitleRules.empty
	ErrBoardTitleTooShort = boardTitleRules.tooShort
	ErrBoardTitleTooLong  = boardTitleRules.tooLong

	ErrWorkItemTitleEmpty    = workItemTitleRules.empty
	ErrWorkItemTitleTooShort = workItemTitleRules.tooShort
	ErrWorkItemTitleTooLong  = workItemTitleRules.tooLong

	ErrIterationTitleEmpty    = iterationTitleRules.empty
	ErrIterationTitleTooShort = iterationTitleRules.tooShort
	ErrIterationTitleTooLong  = iterationTitleRules.tooLong

	ErrMilestoneTitleEmpty    = milestoneTitleRules.empty
	ErrMilestoneTitleTooShort = milestoneTitleRules.tooShort
	ErrMilestoneTitleTooLong  = milestoneTitleRules.tooLong

	ErrProjectTitleEmpty    = projectTitleRules.empty
	ErrProjectTitleTooShort = projectTitleRules.tooShort
	ErrProjectTitleTooLong  = projectTitleRules.tooLong

	ErrWorkspaceTitleEmpty    = workspaceTitleRules.empty
	ErrWorkspaceTitleTooShort = workspaceTitleRules.tooShort
	ErrWorkspaceTitleTooLong  = workspaceTitleRules.tooLong

	ErrDocumentationTitleEmpty    = documentationTitleRules.empty
	ErrDocumentationTitleTooShort = documentationTitleRules.tooShort
	ErrDocumentationTitleTooLong  = documentationTitleRules.tooLong
)

// BoardTitle is the validated title of a Board.
type BoardTitle struct{ value string }

// ValidateBoardTitle reports every rule s violates.
func ValidateBoardTitle(s string) result.Result { return boardTitleRules.validate(s) }

// NewBoardTitle validates s and wraps it.
func NewBoardTitle(s string) result.Of[BoardTitle] {
	return createText(s, boardTitleRules, func(v string) BoardTitle { return BoardTitle{v} })
}

func (t BoardTitle) String() string { return t.value }
func (t BoardTitle) IsZero() bool   { return t.value == "" }

// WorkItemTitle is the validated title of a WorkItem.
type WorkItemTitle struct{ value string }

// ValidateWorkItemTitle reports every rule s violates.
func ValidateWorkItemTitle(s string) result.Result { return workItemTitleRules.validate(s) }

// NewWorkItemTitle validates s and wraps it.
func NewWorkItemTitle(s string) result.Of[WorkItemTitle] {
	return createText(s, workItemTitleRules, func(v string) WorkItemTitle { return WorkItemTitle{v} })
}

func (t WorkItemTitle) String() string { return t.value }
func (t WorkItemTitle) IsZero() bool   { return t.value == "" }

// IterationTitle is the validated title of an Iteration.
type IterationTitle struct{ value string }

// ValidateIterationTitle reports every rule s violates.
func ValidateIterationTitle(s string) result.Result { return iterationTitleRules.validate(s) }

// NewIterationTitle validates s and wraps it.
func NewIterationTitle(s string) result.Of[IterationTitle] {
	return createText(s, iterationTitleRules, func(v string) IterationTitle { return IterationTitle{v} })
}

func (t IterationTitle) String() string { return t.value }
func (t IterationTitle) IsZero() bool   { return t.value == "" }

// MilestoneTitle is the validated title of a Milestone.
type MilestoneTitle struct{ value string }

// ValidateMilestoneTitle reports every rule s violates.
func ValidateMilestoneTitle(s string) result.Result { return milestoneTitleRules.validate(s) }

// NewMilestoneTitle validates s and wraps it.
func NewMilestoneTitle(s string) result.Of[MilestoneTitle] {
	return createText(s, milestoneTitleRules, func(v string) MilestoneTitle { return MilestoneTitle{v} })
}

func (t MilestoneTitle) String() string { return t.value }
func (t MilestoneTitle) IsZero() bool   { return t.value == "" }

// ProjectTitle is the validated title of a Project.
type ProjectTitle struct{ value string }

// ValidateProjectTitle reports every rule s violates.
func ValidateProjectTitle(s string) result.Result { return projectTitleRules.validate(s) }

// NewProjectTitle validates s and wraps it.
func NewProjectTitle(s string) result.Of[ProjectTitle] {
	return createText(s, projectTitleRules, func(v string) ProjectTitle { return ProjectTitle{v} })
}

func (t ProjectTitle) String() string { return t.value }
func (t ProjectTitle) IsZero() bool   { return t.value == "" }

// WorkspaceTitle is the validated title of a Workspace.
type WorkspaceTitle struct{ value string }

// ValidateWorkspaceTitle reports every rule s violates.
func ValidateWorkspaceTitle(s string) result.Result { return workspaceTitleRules.validate(s) }

// NewWorkspaceTitle validates s and wraps it.
func NewWorkspaceTitle(s string) result.Of[WorkspaceTitle] {
	return createText(s, workspaceTitleRules, func(v string) WorkspaceTitle { return WorkspaceTitle{v} })
}

func (t WorkspaceTitle) String() string { return t.value }
func (t WorkspaceTitle) IsZero() bool   { return t.value == "" }

// DocumentationTitle is the validated title of a Documentation.
type DocumentationTitle struct{ value string }

// ValidateDocumentationTitle reports every rule s violates.
func ValidateDocumentationTitle(s string) result.Result { return documentationTitleRules.validate(s) }

// NewDocumentationTitle validates s and wraps it.
func NewDocumentationTitle(s string) result.Of[DocumentationTitle] {
	return createText(s, documentationTitleRules, func(v string) DocumentationTitle { return DocumentationTitle{v} })
}

func (t DocumentationTitle) String() string { return t.value }
func (t DocumentationTitle) IsZero() bool   { return t.value == "" }
