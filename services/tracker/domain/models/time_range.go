package models

import (
	"time"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

var (
	ErrTimeRangeEmpty = domainerr.New(domainerr.KindEmpty, "project_time_range.empty",
		"start and end must both be set")
	ErrTimeRangeStartDateAfterEnd = domainerr.New(domainerr.KindOutOfRange, "project_time_range.start_date_after_end_date",
		"start date must not be after end date")
	ErrTimeRangeStartTimeAfterEnd = domainerr.New(domainerr.KindOutOfRange, "project_time_range.start_time_after_end_time",
		"start time must not be after end time on the same day")
)

// ProjectTimeRange is the planned span of a Project. Both ends are
// normalised to UTC.
type ProjectTimeRange struct {
	start time.Time
	end   time.Time
}

// ValidateProjectTimeRange checks start against end. A start on a later
// calendar day fails on the date rule; a start later in the day on the same
// calendar day fails on the time rule.
func ValidateProjectTimeRange(start, end time.Time) result.Result {
	if start.IsZero() || end.IsZero() {
		return result.Failure(ErrTimeRangeEmpty)
	}

	start, end = start.UTC(), end.UTC()
	sd, ed := dateOf(start), dateOf(end)
	switch {
	case sd.After(ed):
		return result.Failure(ErrTimeRangeStartDateAfterEnd)
	case sd.Equal(ed) && start.After(end):
		return result.Failure(ErrTimeRangeStartTimeAfterEnd)
	}
	return result.Success()
}

// NewProjectTimeRange validates the pair and wraps it.
func NewProjectTimeRange(start, end time.Time) result.Of[ProjectTimeRange] {
	if res := ValidateProjectTimeRange(start, end); res.IsFailure() {
		return result.FailureOf[ProjectTimeRange](res.Errors()...)
	}
	return result.SuccessOf(ProjectTimeRange{start: start.UTC(), end: end.UTC()})
}

func (r ProjectTimeRange) Start() time.Time { return r.start }
func (r ProjectTimeRange) End() time.Time   { return r.end }
func (r ProjectTimeRange) IsZero() bool     { return r.start.IsZero() && r.end.IsZero() }

// Duration is the length of the range.
func (r ProjectTimeRange) Duration() time.Duration { return r.end.Sub(r.start) }

// Equal compares both ends as instants.
func (r ProjectTimeRange) Equal(o ProjectTimeRange) bool {
	return r.start.Equal(o.start) && r.end.Equal(o.end)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
