package domainerr

import (
	"errors"
	"fmt"
	"testing"
)

var errTitleEmpty = New(KindEmpty, "title.empty", "title must not be empty")

func TestError_IsMatchesCode(t *testing.T) {
	other := New(KindEmpty, "name.empty", "name must not be empty")

	if !errors.Is(errTitleEmpty, errTitleEmpty) {
		t.Fatal("error must match itself")
	}
	if errors.Is(other, errTitleEmpty) {
		t.Fatal("different codes must not match")
	}
	if !errors.Is(errTitleEmpty.Wrap(errors.New("x")), errTitleEmpty) {
		t.Fatal("a wrapped copy must keep matching by code")
	}
}

func TestError_IsMatchesKindSentinel(t *testing.T) {
	if !errors.Is(errTitleEmpty, ErrEmpty) {
		t.Fatal("expected KindEmpty sentinel to match")
	}
	if errors.Is(errTitleEmpty, ErrNotFound) {
		t.Fatal("KindNotFound sentinel must not match an EMPTY error")
	}
	wrapped := fmt.Errorf("context: %w", errTitleEmpty)
	if !errors.Is(wrapped, ErrEmpty) {
		t.Fatal("expected match through fmt wrapping")
	}
}

func TestError_IsRejectsForeignTargets(t *testing.T) {
	if errors.Is(errTitleEmpty, errors.New("title must not be empty")) {
		t.Fatal("plain errors with equal text must not match")
	}
	if (&Error{Kind: KindEmpty}).Is(&Error{}) {
		t.Fatal("an empty target must not match")
	}
}

func TestRequiredFieldMissing(t *testing.T) {
	t.Run("wraps the cause", func(t *testing.T) {
		err := RequiredFieldMissing("title", errTitleEmpty)
		if err.Kind != KindRequiredFieldMissing {
			t.Fatalf("unexpected kind %q", err.Kind)
		}
		if err.Field != "title" {
			t.Fatalf("unexpected field %q", err.Field)
		}
		if !errors.Is(err, errTitleEmpty) {
			t.Fatal("the cause must be reachable with errors.Is")
		}
		if !errors.Is(err, ErrRequiredFieldMissing) {
			t.Fatal("expected kind sentinel match")
		}
		if err.Error() != "title is a required field" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("nil cause", func(t *testing.T) {
		err := RequiredFieldMissing("owner", nil)
		if err.Unwrap() != nil {
			t.Fatal("expected nil cause")
		}
	})
}

func TestWrapAndWithField_DoNotMutateOriginal(t *testing.T) {
	_ = errTitleEmpty.Wrap(errors.New("cause")).WithField("title")
	if errTitleEmpty.Cause != nil || errTitleEmpty.Field != "" {
		t.Fatal("shared error value was mutated")
	}
}

func TestError_MessageFallbacks(t *testing.T) {
	if got := (&Error{Kind: KindNotFound, Code: "x.not_found"}).Error(); got != "x.not_found" {
		t.Fatalf("expected code fallback, got %q", got)
	}
	if got := (&Error{Kind: KindNotFound}).Error(); got != "NOT_FOUND" {
		t.Fatalf("expected kind fallback, got %q", got)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(fmt.Errorf("wrap: %w", errTitleEmpty)) != KindEmpty {
		t.Fatal("expected KindEmpty")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatal("expected empty kind for a plain error")
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindEmpty, true},
		{KindOutOfRange, true},
		{KindInvalidFormat, true},
		{KindRequiredFieldMissing, true},
		{KindInvalidArgument, true},
		{KindNotFound, false},
		{KindAlreadyExists, false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := IsValidation(tt.kind); got != tt.want {
				t.Fatalf("IsValidation(%q) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}
