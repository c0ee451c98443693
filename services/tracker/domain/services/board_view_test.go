package services

import (
	"testing"
	"time"

	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

func item(title, status, priority string, created time.Time) *models.WorkItem {
	return models.RestoreWorkItem(models.WorkItemSnapshot{
		ID:        models.NewID[models.WorkItem](),
		Title:     title,
		Status:    models.WorkItemStatus(status),
		Priority:  models.Priority(priority),
		Type:      models.TypeTask,
		CreatedAt: created,
		UpdatedAt: created,
	})
}

func titles(items []*models.WorkItem) []string {
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.Title().String()
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyBoard(t *testing.T) {
	base := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	items := []*models.WorkItem{
		item("Bravo", "todo", "low", base),
		item("alpha", "done", "high", base.Add(time.Hour)),
		item("Charlie", "todo", "critical", base.Add(2*time.Hour)),
		item("Delta", "in_progress", "high", base.Add(3*time.Hour)),
	}

	board := func(filters []models.Filter, orderBy []models.OrderBy) *models.Board {
		return models.RestoreBoard(models.NewID[models.Board](), "View", filters, orderBy)
	}

	tests := []struct {
		name  string
		board *models.Board
		want  []string
	}{
		{
			name:  "no filters or keys keeps input",
			board: board(nil, nil),
			want:  []string{"Bravo", "alpha", "Charlie", "Delta"},
		},
		{
			name:  "filters combine with AND",
			board: board([]models.Filter{
				models.RestoreFilter(models.FilterStatus, models.OpNotEquals, "done"),
				models.RestoreFilter(models.FilterTitle, models.OpContains, "a"),
			}, nil),
			want: []string{"Bravo", "Charlie", "Delta"},
		},
		{
			name:  "priority descending then title",
			board: board(nil, []models.OrderBy{
				models.RestoreOrderBy(models.SortPriority, models.Descending),
				models.RestoreOrderBy(models.SortTitle, models.Ascending),
			}),
			want: []string{"Charlie", "alpha", "Delta", "Bravo"},
		},
		{
			name:  "title is case insensitive",
			board: board(nil, []models.OrderBy{models.RestoreOrderBy(models.SortTitle, models.Ascending)}),
			want:  []string{"alpha", "Bravo", "Charlie", "Delta"},
		},
		{
			name:  "status rank is stable for ties",
			board: board(nil, []models.OrderBy{models.RestoreOrderBy(models.SortStatus, models.Ascending)}),
			want:  []string{"Bravo", "Charlie", "Delta", "alpha"},
		},
		{
			name:  "created descending",
			board: board(nil, []models.OrderBy{models.RestoreOrderBy(models.SortCreatedAt, models.Descending)}),
			want:  []string{"Delta", "Charlie", "alpha", "Bravo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(ApplyBoard(tt.board, items))
			if !equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyBoard_DoesNotMutateInput(t *testing.T) {
	base := time.Now().UTC()
	items := []*models.WorkItem{item("Zulu", "todo", "low", base), item("Alpha", "todo", "low", base)}
	b := models.RestoreBoard(models.NewID[models.Board](), "View", nil,
		[]models.OrderBy{models.RestoreOrderBy(models.SortTitle, models.Ascending)})

	ApplyBoard(b, items)
	if items[0].Title().String() != "Zulu" {
		t.Fatal("input slice was reordered")
	}
}

func TestApplyBoard_NilBoard(t *testing.T) {
	items := []*models.WorkItem{item("One", "todo", "low", time.Now())}
	if got := ApplyBoard(nil, items); len(got) != 1 {
		t.Fatalf("expected all items, got %d", len(got))
	}
}
