// Package services contains stateless domain services for the tracker bounded
// context. Domain services operate purely on domain types and have zero
// external dependencies beyond stdlib and the domain layer.
package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ghuser/worktrack/services/tracker/domain/models"
)

// ApplyBoard returns the items visible on board: those matching every filter,
// sorted by each order-by key in sequence. Ties keep their input order.
// The input slice is not modified.
func ApplyBoard(board *models.Board, items []*models.WorkItem) []*models.WorkItem {
	if board == nil {
		return slices.Clone(items)
	}

	filters := board.Filters()
	out := make([]*models.WorkItem, 0, len(items))
	for _, w := range items {
		if w != nil && matchesAll(filters, w) {
			out = append(out, w)
		}
	}

	keys := board.OrderBy()
	if len(keys) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b *models.WorkItem) int {
		for _, k := range keys {
			c := compareBy(k.Field(), a, b)
			if k.Descending() {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

func matchesAll(filters []models.Filter, w *models.WorkItem) bool {
	for _, f := range filters {
		if !f.Matches(w) {
			return false
		}
	}
	return true
}

func compareBy(field models.SortField, a, b *models.WorkItem) int {
	switch field {
	case models.SortTitle:
		return strings.Compare(strings.ToLower(a.Title().String()), strings.ToLower(b.Title().String()))
	case models.SortStatus:
		return cmp.Compare(a.Status().Rank(), b.Status().Rank())
	case models.SortPriority:
		return cmp.Compare(a.Priority().Rank(), b.Priority().Rank())
	case models.SortType:
		return strings.Compare(a.Type().String(), b.Type().String())
	case models.SortCreatedAt:
		return a.CreatedAt().Compare(b.CreatedAt())
	case models.SortUpdatedAt:
		return a.UpdatedAt().Compare(b.UpdatedAt())
	}
	return 0
}
