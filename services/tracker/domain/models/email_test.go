package models

import (
	"strings"
	"testing"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []error
	}{
		{"valid", "ada@example.com", nil},
		{"valid with plus tag", "ada+tracker@mail.example.co.uk", nil},
		{"empty", "", []error{ErrEmailEmpty}},
		{"whitespace", "   ", []error{ErrEmailEmpty}},
		{"missing at", "ada.example.com", []error{ErrEmailInvalidFormat}},
		{"double dot in domain", "ada@example..com", []error{ErrEmailConsecutiveDot}},
		{"double dot in local part", "ada..l@example.com", []error{ErrEmailConsecutiveDot}},
		{"leading dot", ".ada@example.com", []error{ErrEmailEdgeDot}},
		{"trailing dot in local part", "ada.@example.com", []error{ErrEmailEdgeDot}},
		{"local part too long", strings.Repeat("a", 65) + "@example.com", []error{ErrEmailLocalTooLong}},
		{"domain too long", "ada@" + strings.Repeat("a", 252) + ".com", []error{ErrEmailDomainTooLong}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEmail(tt.input)
			if tt.want == nil {
				if r.IsFailure() {
					t.Fatalf("unexpected errors: %v", r.Errors())
				}
				if r.Value().String() != tt.input {
					t.Fatalf("expected %q, got %q", tt.input, r.Value().String())
				}
				return
			}
			errs := r.Errors()
			if len(errs) != len(tt.want) {
				t.Fatalf("expected %d errors, got %v", len(tt.want), errs)
			}
			for _, w := range tt.want {
				if !contains(errs, w) {
					t.Fatalf("expected %v in %v", w, errs)
				}
			}
		})
	}
}

func TestNewEmail_LocalPartAtLimit(t *testing.T) {
	if r := NewEmail(strings.Repeat("a", 64) + "@example.com"); r.IsFailure() {
		t.Fatalf("64 character local part must be accepted: %v", r.Errors())
	}
}
