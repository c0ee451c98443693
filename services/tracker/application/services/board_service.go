package services

import (
	"context"
	"fmt"

	"github.com/ghuser/worktrack/pkg/result"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
	domainsvcs "github.com/ghuser/worktrack/services/tracker/domain/services"
)

// FilterInput is the raw form of a board filter.
type FilterInput struct {
	Field    string
	Operator string
	Value    string
}

// OrderByInput is the raw form of a board sort key.
type OrderByInput struct {
	Field     string
	Direction string
}

// CreateBoardInput is the data needed to create a board.
type CreateBoardInput struct {
	Title   string
	Filters []FilterInput
	OrderBy []OrderByInput
}

// BoardService manages boards and renders their work item views.
type BoardService struct {
	repo      repositories.BoardRepository
	workItems repositories.WorkItemRepository
	metrics   *metrics
}

// Create validates every filter and sort key together with the title and
// reports all violations at once.
func (s *BoardService) Create(ctx context.Context, in CreateBoardInput) (*models.Board, error) {
	filters, filterRes := parseFilters(in.Filters)
	orderBy, orderRes := parseOrderBy(in.OrderBy)
	built := models.NewBoardBuilder().
		WithTitle(in.Title).
		WithFilters(filters).
		WithOrderBy(orderBy).
		Build()
	if err := s.metrics.check(ctx, "board", result.Combine(filterRes, orderRes, built.Result())); err != nil {
		return nil, err
	}

	board := built.Value()
	if err := s.repo.Save(ctx, board); err != nil {
		return nil, fmt.Errorf("save board: %w", err)
	}
	return board, nil
}

func (s *BoardService) Get(ctx context.Context, id models.ID[models.Board]) (*models.Board, error) {
	board, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return board, nil
}

func (s *BoardService) Delete(ctx context.Context, id models.ID[models.Board]) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}

func (s *BoardService) AddFilter(ctx context.Context, id models.ID[models.Board], in FilterInput) (*models.Board, error) {
	return s.mutate(ctx, id, func(b *models.Board) result.Result {
		f := models.NewFilter(in.Field, in.Operator, in.Value)
		if f.IsFailure() {
			return f.Result()
		}
		return b.AddFilter(f.Value())
	})
}

// RemoveFilter removes the first filter equal to in.
func (s *BoardService) RemoveFilter(ctx context.Context, id models.ID[models.Board], in FilterInput) (*models.Board, error) {
	return s.mutate(ctx, id, func(b *models.Board) result.Result {
		f := models.NewFilter(in.Field, in.Operator, in.Value)
		if f.IsFailure() {
			return f.Result()
		}
		return b.RemoveFilter(f.Value())
	})
}

func (s *BoardService) AddOrderBy(ctx context.Context, id models.ID[models.Board], in OrderByInput) (*models.Board, error) {
	return s.mutate(ctx, id, func(b *models.Board) result.Result {
		o := models.NewOrderBy(in.Field, in.Direction)
		if o.IsFailure() {
			return o.Result()
		}
		return b.AddOrderBy(o.Value())
	})
}

// RemoveOrderBy removes the first sort key equal to in.
func (s *BoardService) RemoveOrderBy(ctx context.Context, id models.ID[models.Board], in OrderByInput) (*models.Board, error) {
	return s.mutate(ctx, id, func(b *models.Board) result.Result {
		o := models.NewOrderBy(in.Field, in.Direction)
		if o.IsFailure() {
			return o.Result()
		}
		return b.RemoveOrderBy(o.Value())
	})
}

// WorkItems returns every work item visible on the board, in board order.
func (s *BoardService) WorkItems(ctx context.Context, id models.ID[models.Board]) ([]*models.WorkItem, error) {
	board, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, _, err := s.workItems.List(ctx, repositories.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}
	return domainsvcs.ApplyBoard(board, items), nil
}

func (s *BoardService) mutate(ctx context.Context, id models.ID[models.Board], fn func(*models.Board) result.Result) (*models.Board, error) {
	board, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.metrics.check(ctx, "board", fn(board)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("update board: %w", err)
	}
	return board, nil
}

func parseFilters(in []FilterInput) ([]models.Filter, result.Result) {
	out := make([]models.Filter, 0, len(in))
	var rs []result.Result
	for _, f := range in {
		parsed := models.NewFilter(f.Field, f.Operator, f.Value)
		if parsed.IsFailure() {
			rs = append(rs, parsed.Result())
			continue
		}
		out = append(out, parsed.Value())
	}
	return out, result.Combine(rs...)
}

func parseOrderBy(in []OrderByInput) ([]models.OrderBy, result.Result) {
	out := make([]models.OrderBy, 0, len(in))
	var rs []result.Result
	for _, o := range in {
		parsed := models.NewOrderBy(o.Field, o.Direction)
		if parsed.IsFailure() {
			rs = append(rs, parsed.Result())
			continue
		}
		out = append(out, parsed.Value())
	}
	return out, result.Combine(rs...)
}
