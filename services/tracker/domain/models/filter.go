package models

import (
	"strings"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

// FilterField names the work item attribute a Filter inspects.
type FilterField string

const (
	FilterTitle    FilterField = "title"
	FilterStatus   FilterField = "status"
	FilterPriority FilterField = "priority"
	FilterType     FilterField = "type"
	FilterAssignee FilterField = "assignee"
)

// FilterOperator is the comparison a Filter applies.
type FilterOperator string

const (
	OpEquals    FilterOperator = "eq"
	OpNotEquals FilterOperator = "neq"
	OpContains  FilterOperator = "contains"
)

var (
	filterFields    = []FilterField{FilterTitle, FilterStatus, FilterPriority, FilterType, FilterAssignee}
	filterOperators = []FilterOperator{OpEquals, OpNotEquals, OpContains}
)

var (
	ErrInvalidFilterField    = domainerr.New(domainerr.KindOutOfRange, "filter.invalid_field", "unknown filter field")
	ErrInvalidFilterOperator = domainerr.New(domainerr.KindOutOfRange, "filter.invalid_operator", "unknown filter operator")
	ErrFilterValueEmpty      = domainerr.New(domainerr.KindEmpty, "filter.value_empty", "filter value must not be empty")
)

// Filter is a predicate over work items shown on a Board. Filters compare
// case-insensitively.
type Filter struct {
	field FilterField
	op    FilterOperator
	value string
}

// NewFilter validates every part of the predicate and reports all violations.
func NewFilter(field, op, value string) result.Of[Filter] {
	r := result.Combine(
		parseEnum(FilterField(field), filterFields, ErrInvalidFilterField).Result(),
		parseEnum(FilterOperator(op), filterOperators, ErrInvalidFilterOperator).Result(),
	)
	if isBlank(value) {
		r = result.Combine(r, result.Failure(ErrFilterValueEmpty))
	}
	if r.IsFailure() {
		return result.FailureOf[Filter](r.Errors()...)
	}
	return result.SuccessOf(Filter{field: FilterField(field), op: FilterOperator(op), value: value})
}

// RestoreFilter rebuilds a stored filter without validating it.
func RestoreFilter(field FilterField, op FilterOperator, value string) Filter {
	return Filter{field: field, op: op, value: value}
}

func (f Filter) Field() FilterField       { return f.field }
func (f Filter) Operator() FilterOperator { return f.op }
func (f Filter) Value() string            { return f.value }
func (f Filter) IsZero() bool             { return f == Filter{} }

// Matches reports whether w satisfies the filter.
func (f Filter) Matches(w *WorkItem) bool {
	if w == nil {
		return false
	}
	got := strings.ToLower(f.attribute(w))
	want := strings.ToLower(f.value)
	switch f.op {
	case OpEquals:
		return got == want
	case OpNotEquals:
		return got != want
	case OpContains:
		return strings.Contains(got, want)
	}
	return false
}

func (f Filter) attribute(w *WorkItem) string {
	switch f.field {
	case FilterTitle:
		return w.title.String()
	case FilterStatus:
		return w.status.String()
	case FilterPriority:
		return w.priority.String()
	case FilterType:
		return w.itemType.String()
	case FilterAssignee:
		if w.assignee == nil {
			return ""
		}
		return w.assignee.id.String()
	}
	return ""
}

// SortField names the work item attribute an OrderBy sorts on.
type SortField string

const (
	SortTitle     SortField = "title"
	SortStatus    SortField = "status"
	SortPriority  SortField = "priority"
	SortType      SortField = "type"
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

var (
	sortFields     = []SortField{SortTitle, SortStatus, SortPriority, SortType, SortCreatedAt, SortUpdatedAt}
	sortDirections = []SortDirection{Ascending, Descending}
)

var (
	ErrInvalidSortField     = domainerr.New(domainerr.KindOutOfRange, "order_by.invalid_field", "unknown sort field")
	ErrInvalidSortDirection = domainerr.New(domainerr.KindOutOfRange, "order_by.invalid_direction", "sort direction must be asc or desc")
)

// OrderBy is one sort key of a Board.
type OrderBy struct {
	field     SortField
	direction SortDirection
}

// NewOrderBy validates the sort key. An empty direction means ascending.
func NewOrderBy(field, direction string) result.Of[OrderBy] {
	if direction == "" {
		direction = string(Ascending)
	}
	r := result.Combine(
		parseEnum(SortField(field), sortFields, ErrInvalidSortField).Result(),
		parseEnum(SortDirection(direction), sortDirections, ErrInvalidSortDirection).Result(),
	)
	if r.IsFailure() {
		return result.FailureOf[OrderBy](r.Errors()...)
	}
	return result.SuccessOf(OrderBy{field: SortField(field), direction: SortDirection(direction)})
}

// RestoreOrderBy rebuilds a stored sort key without validating it.
func RestoreOrderBy(field SortField, direction SortDirection) OrderBy {
	return OrderBy{field: field, direction: direction}
}

func (o OrderBy) Field() SortField         { return o.field }
func (o OrderBy) Direction() SortDirection { return o.direction }
func (o OrderBy) Descending() bool         { return o.direction == Descending }
func (o OrderBy) IsZero() bool             { return o == OrderBy{} }
