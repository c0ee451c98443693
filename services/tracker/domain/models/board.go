package models

import (
	"slices"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

var (
	ErrBoardFilterNotFound  = domainerr.New(domainerr.KindNotFound, "board.filter_not_found", "filter is not on the board")
	ErrBoardOrderByNotFound = domainerr.New(domainerr.KindNotFound, "board.order_by_not_found", "order-by is not on the board")
)

// Board is a saved view over work items: the filters narrow the set and the
// order-by keys sort it, in sequence. Equal filters may appear more than once.
type Board struct {
	id      ID[Board]
	title   BoardTitle
	filters []Filter
	orderBy []OrderBy
}

func NewBoard() *Board {
	return &Board{id: NewID[Board]()}
}

// RestoreBoard rebuilds a board without validating it.
func RestoreBoard(id ID[Board], title string, filters []Filter, orderBy []OrderBy) *Board {
	return &Board{
		id:      id,
		title:   BoardTitle{title},
		filters: slices.Clone(filters),
		orderBy: slices.Clone(orderBy),
	}
}

func (b *Board) ID() ID[Board]      { return b.id }
func (b *Board) Title() BoardTitle  { return b.title }
func (b *Board) Filters() []Filter  { return slices.Clone(b.filters) }
func (b *Board) OrderBy() []OrderBy { return slices.Clone(b.orderBy) }

func (b *Board) UpdateTitle(s string) result.Result {
	return assign(&b.title, NewBoardTitle(s))
}

func (b *Board) AddFilter(f Filter) result.Result {
	if f.IsZero() {
		return result.Failure(ErrNilArgument.WithField("filter"))
	}
	b.filters = append(b.filters, f)
	return result.Success()
}

// RemoveFilter drops the first filter equal to f.
func (b *Board) RemoveFilter(f Filter) result.Result {
	return removeFirst(&b.filters, f, ErrBoardFilterNotFound)
}

func (b *Board) AddOrderBy(o OrderBy) result.Result {
	if o.IsZero() {
		return result.Failure(ErrNilArgument.WithField("order_by"))
	}
	b.orderBy = append(b.orderBy, o)
	return result.Success()
}

// RemoveOrderBy drops the first sort key equal to o.
func (b *Board) RemoveOrderBy(o OrderBy) result.Result {
	return removeFirst(&b.orderBy, o, ErrBoardOrderByNotFound)
}

// BoardBuilder assembles a Board from raw input.
type BoardBuilder struct {
	builder
	board *Board
}

func NewBoardBuilder() *BoardBuilder {
	return &BoardBuilder{board: NewBoard()}
}

func (b *BoardBuilder) WithTitle(s string) *BoardBuilder {
	b.apply("title", b.board.UpdateTitle(s))
	return b
}

func (b *BoardBuilder) WithFilters(filters []Filter) *BoardBuilder {
	for _, f := range filters {
		b.apply("filters", b.board.AddFilter(f))
	}
	return b
}

func (b *BoardBuilder) WithOrderBy(orderBy []OrderBy) *BoardBuilder {
	for _, o := range orderBy {
		b.apply("order_by", b.board.AddOrderBy(o))
	}
	return b
}

func (b *BoardBuilder) Build() result.Of[*Board] {
	board := b.board
	return build(&b.builder, board,
		requirement{"title", ErrBoardTitleEmpty, func() bool { return !board.title.IsZero() }},
	)
}

// MakeDefaultBoard builds a board showing open high-priority work, newest first.
func MakeDefaultBoard() result.Of[*Board] {
	return NewBoardBuilder().
		WithTitle("Untitled Board").
		WithFilters([]Filter{RestoreFilter(FilterPriority, OpEquals, string(PriorityHigh))}).
		WithOrderBy([]OrderBy{RestoreOrderBy(SortCreatedAt, Descending)}).
		Build()
}
