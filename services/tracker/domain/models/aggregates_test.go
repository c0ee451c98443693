package models

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/worktrack/pkg/domainerr"
)

func TestAggregate_FailedUpdateDoesNotMutate(t *testing.T) {
	b := MakeDefaultBoard().Value()
	before := b.Title()

	if r := b.UpdateTitle("x"); !r.IsFailure() {
		t.Fatal("expected failure")
	}
	if b.Title() != before {
		t.Fatalf("title changed to %q", b.Title())
	}

	p := MakeDefaultProject().Value()
	tr := p.TimeRange()
	start := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	if r := p.UpdateTimeRange(start, start.AddDate(0, 0, -1)); !r.IsFailure() {
		t.Fatal("expected failure")
	}
	if !p.TimeRange().Equal(tr) {
		t.Fatal("time range changed")
	}
}

func TestBoard_Filters(t *testing.T) {
	b := NewBoard()
	f := NewFilter("title", "contains", "login").Value()

	t.Run("duplicates are kept", func(t *testing.T) {
		b.AddFilter(f)
		b.AddFilter(f)
		if got := len(b.Filters()); got != 2 {
			t.Fatalf("expected 2 filters, got %d", got)
		}
	})

	t.Run("remove drops one occurrence", func(t *testing.T) {
		if r := b.RemoveFilter(f); r.IsFailure() {
			t.Fatalf("unexpected errors: %v", r.Errors())
		}
		if got := len(b.Filters()); got != 1 {
			t.Fatalf("expected 1 filter, got %d", got)
		}
	})

	t.Run("removing an absent filter fails without mutating", func(t *testing.T) {
		other := NewFilter("status", "eq", "done").Value()
		assertOnly(t, b.RemoveFilter(other), ErrBoardFilterNotFound)
		if got := len(b.Filters()); got != 1 {
			t.Fatalf("expected 1 filter, got %d", got)
		}
	})

	t.Run("zero filter is an invalid argument", func(t *testing.T) {
		errs := b.AddFilter(Filter{}).Errors()
		if len(errs) != 1 || domainerr.KindOf(errs[0]) != domainerr.KindInvalidArgument {
			t.Fatalf("unexpected errors %v", errs)
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		fs := b.Filters()
		fs[0] = Filter{}
		if b.Filters()[0].IsZero() {
			t.Fatal("board state leaked")
		}
	})
}

func TestBoard_OrderBy(t *testing.T) {
	b := NewBoard()
	o := NewOrderBy("created_at", "").Value()
	if o.Direction() != Ascending {
		t.Fatalf("empty direction must default to asc, got %q", o.Direction())
	}
	b.AddOrderBy(o)
	assertOnly(t, b.RemoveOrderBy(NewOrderBy("title", "desc").Value()), ErrBoardOrderByNotFound)
	if r := b.RemoveOrderBy(o); r.IsFailure() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	if len(b.OrderBy()) != 0 {
		t.Fatal("expected no order-by")
	}
}

func TestNewFilter_ReportsEveryViolation(t *testing.T) {
	errs := NewFilter("colour", "like", " ").Errors()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	for _, want := range []error{ErrInvalidFilterField, ErrInvalidFilterOperator, ErrFilterValueEmpty} {
		if !contains(errs, want) {
			t.Fatalf("expected %v in %v", want, errs)
		}
	}
}

func TestFilter_Matches(t *testing.T) {
	user := MakeDefaultUser().Value()
	w := NewWorkItemBuilder().WithTitle("Fix Login Page").WithPriority("high").WithAssignee(user).Build().Value()

	tests := []struct {
		field, op, value string
		want             bool
	}{
		{"title", "contains", "login", true},
		{"title", "eq", "fix login page", true},
		{"title", "neq", "fix login page", false},
		{"priority", "eq", "high", true},
		{"status", "neq", "done", true},
		{"type", "eq", "bug", false},
		{"assignee", "eq", user.ID().String(), true},
	}
	for _, tt := range tests {
		t.Run(tt.field+" "+tt.op+" "+tt.value, func(t *testing.T) {
			f := NewFilter(tt.field, tt.op, tt.value).Value()
			if got := f.Matches(w); got != tt.want {
				t.Fatalf("Matches = %v, want %v", got, tt.want)
			}
		})
	}

	if (Filter{}).Matches(nil) {
		t.Fatal("nil work item must not match")
	}
}

func TestIterationAndMilestone_WorkItems(t *testing.T) {
	id := NewID[WorkItem]()

	it := NewIteration()
	if r := it.AddWorkItem(id); r.IsFailure() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	assertOnly(t, it.AddWorkItem(id), ErrIterationWorkItemExists)
	if !it.Contains(id) || len(it.WorkItems()) != 1 {
		t.Fatal("expected exactly one work item")
	}
	if r := it.RemoveWorkItem(id); r.IsFailure() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	assertOnly(t, it.RemoveWorkItem(id), ErrIterationWorkItemNotFound)

	m := NewMilestone()
	assertOnly(t, m.RemoveWorkItem(id), ErrMilestoneWorkItemNotFound)
	m.AddWorkItem(id)
	assertOnly(t, m.AddWorkItem(id), ErrMilestoneWorkItemExists)
	assertOnly(t, m.AddWorkItem(ID[WorkItem]{}), ErrNilArgument)
}

func TestOrganisation_Owners(t *testing.T) {
	owner := NewID[User]()
	o := MakeDefaultOrganisation(owner).Value()

	assertOnly(t, o.AddOwner(owner), ErrOrganisationOwnerExists)
	second := NewID[User]()
	o.AddOwner(second)
	if !o.IsOwnedBy(second) || len(o.Owners()) != 2 {
		t.Fatal("expected two owners")
	}
	assertOnly(t, o.RemoveOwner(NewID[User]()), ErrOrganisationOwnerNotFound)
}

func TestWorkspace_Resources(t *testing.T) {
	w := MakeDefaultWorkspace(NewID[User]()).Value()
	pid := uuid.New()

	if r := w.AddResource("projects", pid); r.IsFailure() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	errs := w.AddResource("projects", pid).Errors()
	if len(errs) != 1 || domainerr.KindOf(errs[0]) != domainerr.KindAlreadyExists {
		t.Fatalf("expected ALREADY_EXISTS, got %v", errs)
	}
	if len(w.Projects()) != 1 || w.Projects()[0].UUID() != pid {
		t.Fatal("project not recorded")
	}

	errs = w.RemoveResource("contacts", pid).Errors()
	if len(errs) != 1 || domainerr.KindOf(errs[0]) != domainerr.KindNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", errs)
	}

	assertOnly(t, w.AddResource("invoices", pid), ErrInvalidResourceKind)

	if r := w.RemoveResource("projects", pid); r.IsFailure() || len(w.Projects()) != 0 {
		t.Fatalf("remove failed: %v", r.Errors())
	}
}

func TestWorkItem_Assignment(t *testing.T) {
	w := MakeDefaultWorkItem().Value()

	errs := w.AssignTo(nil).Errors()
	if len(errs) != 1 || domainerr.KindOf(errs[0]) != domainerr.KindInvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", errs)
	}
	if w.Assignee() != nil {
		t.Fatal("assignee must stay unset")
	}

	u := MakeDefaultUser().Value()
	w.AssignTo(u)
	if w.Assignee() != u {
		t.Fatal("expected assignee")
	}
	w.Unassign()
	if w.Assignee() != nil {
		t.Fatal("expected no assignee")
	}
}

func TestWorkItem_UpdateTouchesTimestamp(t *testing.T) {
	fixed := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	orig := now
	t.Cleanup(func() { now = orig })

	w := MakeDefaultWorkItem().Value()
	now = func() time.Time { return fixed }

	w.UpdateStatus("bogus")
	if w.UpdatedAt().Equal(fixed) {
		t.Fatal("failed update must not touch the timestamp")
	}
	w.UpdateStatus("done")
	if !w.UpdatedAt().Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, w.UpdatedAt())
	}
}

func TestRestore_BypassesValidation(t *testing.T) {
	b := RestoreBoard(NewID[Board](), "x", nil, nil)
	if b.Title().String() != "x" {
		t.Fatal("restore must keep the stored value as is")
	}
}
