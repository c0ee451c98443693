package models

import (
	"time"

	"github.com/ghuser/worktrack/pkg/result"
)

// Project is a planned body of work with a schedule.
type Project struct {
	id          ID[Project]
	title       ProjectTitle
	description Description
	timeRange   ProjectTimeRange
	status      ProjectStatus
	priority    Priority
	methodology Methodology
}

// NewProject returns an unscheduled, planned scrum project of medium priority.
func NewProject() *Project {
	return &Project{
		id:          NewID[Project](),
		status:      ProjectPlanned,
		priority:    PriorityMedium,
		methodology: MethodologyScrum,
	}
}

// ProjectSnapshot carries stored fields into RestoreProject.
type ProjectSnapshot struct {
	ID          ID[Project]
	Title       string
	Description string
	Start, End  time.Time
	Status      ProjectStatus
	Priority    Priority
	Methodology Methodology
}

// RestoreProject rebuilds a project without validating it.
func RestoreProject(s ProjectSnapshot) *Project {
	return &Project{
		id:          s.ID,
		title:       ProjectTitle{s.Title},
		description: Description{s.Description},
		timeRange:   ProjectTimeRange{start: s.Start.UTC(), end: s.End.UTC()},
		status:      s.Status,
		priority:    s.Priority,
		methodology: s.Methodology,
	}
}

func (p *Project) ID() ID[Project]             { return p.id }
func (p *Project) Title() ProjectTitle         { return p.title }
func (p *Project) Description() Description    { return p.description }
func (p *Project) TimeRange() ProjectTimeRange { return p.timeRange }
func (p *Project) Status() ProjectStatus       { return p.status }
func (p *Project) Priority() Priority          { return p.priority }
func (p *Project) Methodology() Methodology    { return p.methodology }

func (p *Project) UpdateTitle(s string) result.Result {
	return assign(&p.title, NewProjectTitle(s))
}

func (p *Project) UpdateDescription(s string) result.Result {
	return assign(&p.description, NewDescription(s))
}

func (p *Project) ClearDescription() { p.description = Description{} }

func (p *Project) UpdateTimeRange(start, end time.Time) result.Result {
	return assign(&p.timeRange, NewProjectTimeRange(start, end))
}

func (p *Project) UpdateStatus(s string) result.Result {
	return assign(&p.status, ParseProjectStatus(s))
}

func (p *Project) UpdatePriority(s string) result.Result {
	return assign(&p.priority, ParsePriority(s))
}

func (p *Project) UpdateMethodology(s string) result.Result {
	return assign(&p.methodology, ParseMethodology(s))
}

// ProjectBuilder assembles a Project from raw input.
type ProjectBuilder struct {
	builder
	project *Project
}

func NewProjectBuilder() *ProjectBuilder {
	return &ProjectBuilder{project: NewProject()}
}

func (b *ProjectBuilder) WithTitle(s string) *ProjectBuilder {
	b.apply("title", b.project.UpdateTitle(s))
	return b
}

func (b *ProjectBuilder) WithDescription(s string) *ProjectBuilder {
	b.apply("description", b.project.UpdateDescription(s))
	return b
}

func (b *ProjectBuilder) WithTimeRange(start, end time.Time) *ProjectBuilder {
	b.apply("time_range", b.project.UpdateTimeRange(start, end))
	return b
}

func (b *ProjectBuilder) WithStatus(s string) *ProjectBuilder {
	b.apply("status", b.project.UpdateStatus(s))
	return b
}

func (b *ProjectBuilder) WithPriority(s string) *ProjectBuilder {
	b.apply("priority", b.project.UpdatePriority(s))
	return b
}

func (b *ProjectBuilder) WithMethodology(s string) *ProjectBuilder {
	b.apply("methodology", b.project.UpdateMethodology(s))
	return b
}

func (b *ProjectBuilder) Build() result.Of[*Project] {
	p := b.project
	return build(&b.builder, p,
		requirement{"title", ErrProjectTitleEmpty, func() bool { return !p.title.IsZero() }},
		requirement{"time_range", ErrTimeRangeEmpty, func() bool { return !p.timeRange.IsZero() }},
	)
}

// MakeDefaultProject builds a valid 30-day project for tests and seed data.
func MakeDefaultProject() result.Of[*Project] {
	start := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	return NewProjectBuilder().
		WithTitle("Website relaunch").
		WithDescription("Replace the marketing site.").
		WithTimeRange(start, start.AddDate(0, 0, 30)).
		WithStatus(string(ProjectActive)).
		WithPriority(string(PriorityHigh)).
		WithMethodology(string(MethodologyKanban)).
		Build()
}
