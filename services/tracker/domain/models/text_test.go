package models

import (
	"strings"
	"testing"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

// textCase adapts a value object factory to a payload-free result.
type textCase struct {
	name     string
	create   func(string) result.Result
	min, max int
	empty    error
	tooShort error
	tooLong  error
}

func textCases() []textCase {
	return []textCase{
		{"BoardTitle", func(s string) result.Result { return NewBoardTitle(s).Result() }, 3, 75, ErrBoardTitleEmpty, ErrBoardTitleTooShort, ErrBoardTitleTooLong},
		{"WorkItemTitle", func(s string) result.Result { return NewWorkItemTitle(s).Result() }, 3, 75, ErrWorkItemTitleEmpty, ErrWorkItemTitleTooShort, ErrWorkItemTitleTooLong},
		{"IterationTitle", func(s string) result.Result { return NewIterationTitle(s).Result() }, 3, 75, ErrIterationTitleEmpty, ErrIterationTitleTooShort, ErrIterationTitleTooLong},
		{"MilestoneTitle", func(s string) result.Result { return NewMilestoneTitle(s).Result() }, 3, 75, ErrMilestoneTitleEmpty, ErrMilestoneTitleTooShort, ErrMilestoneTitleTooLong},
		{"ProjectTitle", func(s string) result.Result { return NewProjectTitle(s).Result() }, 3, 75, ErrProjectTitleEmpty, ErrProjectTitleTooShort, ErrProjectTitleTooLong},
		{"WorkspaceTitle", func(s string) result.Result { return NewWorkspaceTitle(s).Result() }, 3, 75, ErrWorkspaceTitleEmpty, ErrWorkspaceTitleTooShort, ErrWorkspaceTitleTooLong},
		{"DocumentationTitle", func(s string) result.Result { return NewDocumentationTitle(s).Result() }, 3, 75, ErrDocumentationTitleEmpty, ErrDocumentationTitleTooShort, ErrDocumentationTitleTooLong},
		{"OrganisationName", func(s string) result.Result { return NewOrganisationName(s).Result() }, 2, 100, ErrOrganisationNameEmpty, ErrOrganisationNameTooShort, ErrOrganisationNameTooLong},
		{"FirstName", func(s string) result.Result { return NewFirstName(s).Result() }, 2, 50, ErrFirstNameEmpty, ErrFirstNameTooShort, ErrFirstNameTooLong},
		{"LastName", func(s string) result.Result { return NewLastName(s).Result() }, 2, 50, ErrLastNameEmpty, ErrLastNameTooShort, ErrLastNameTooLong},
		{"Description", func(s string) result.Result { return NewDescription(s).Result() }, 1, 2000, ErrDescriptionEmpty, nil, ErrDescriptionTooLong},
		{"ContentReference", func(s string) result.Result { return NewContentReference(s).Result() }, 1, 1024, ErrContentReferenceEmpty, nil, ErrContentReferenceTooLong},
	}
}

func TestTextValueObjects_Bounds(t *testing.T) {
	for _, tc := range textCases() {
		t.Run(tc.name, func(t *testing.T) {
			if r := tc.create(strings.Repeat("a", tc.min)); r.IsFailure() {
				t.Fatalf("lower bound %d rejected: %v", tc.min, r.Errors())
			}
			if r := tc.create(strings.Repeat("a", tc.max)); r.IsFailure() {
				t.Fatalf("upper bound %d rejected: %v", tc.max, r.Errors())
			}

			r := tc.create(strings.Repeat("a", tc.max+1))
			assertOnly(t, r, tc.tooLong)

			if tc.tooShort != nil {
				r := tc.create(strings.Repeat("a", tc.min-1))
				assertOnly(t, r, tc.tooShort)
			}
		})
	}
}

func TestTextValueObjects_EmptyShortCircuits(t *testing.T) {
	for _, tc := range textCases() {
		t.Run(tc.name, func(t *testing.T) {
			for _, in := range []string{"", "   ", "\t\n"} {
				assertOnly(t, tc.create(in), tc.empty)
			}
		})
	}
}

func TestTextValueObjects_ControlCharacters(t *testing.T) {
	r := NewBoardTitle("ab\x00")
	errs := r.Errors()
	if len(errs) != 1 || domainerr.KindOf(errs[0]) != domainerr.KindInvalidFormat {
		t.Fatalf("expected a single INVALID_FORMAT error, got %v", errs)
	}

	// Too short and malformed are reported together.
	r = NewBoardTitle("a\x07")
	if got := len(r.Errors()); got != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", got, r.Errors())
	}
}

func TestTextValueObjects_CountRunes(t *testing.T) {
	if r := NewBoardTitle("äöü"); r.IsFailure() {
		t.Fatalf("three runes must satisfy the minimum: %v", r.Errors())
	}
	if r := NewBoardTitle(strings.Repeat("é", 75)); r.IsFailure() {
		t.Fatalf("75 two-byte runes must satisfy the maximum: %v", r.Errors())
	}
}

func TestTextValueObjects_ValueEquality(t *testing.T) {
	a := NewProjectTitle("Roadmap").Value()
	b := NewProjectTitle("Roadmap").Value()
	if a != b {
		t.Fatal("equal inputs must produce equal value objects")
	}
	if a.String() != "Roadmap" {
		t.Fatalf("expected %q, got %q", "Roadmap", a.String())
	}
}

func TestValidateMatchesFactory(t *testing.T) {
	if ValidateBoardTitle("ok board").IsFailure() {
		t.Fatal("expected valid")
	}
	if !ValidateOrganisationName("x").IsFailure() {
		t.Fatal("expected too-short failure")
	}
}

// assertOnly fails unless r failed with exactly the target error.
func assertOnly(t *testing.T, r result.Result, target error) {
	t.Helper()
	errs := r.Errors()
	if !r.IsFailure() {
		t.Fatalf("expected failure with %v, got success", target)
	}
	if len(errs) != 1 || !isExactly(errs[0], target) {
		t.Fatalf("expected only %v, got %v", target, errs)
	}
}

// contains reports whether target appears directly in errs.
func contains(errs []error, target error) bool {
	for _, err := range errs {
		if isExactly(err, target) {
			return true
		}
	}
	return false
}
