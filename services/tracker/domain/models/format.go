package models

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

const (
	minFormatLength = 2
	maxFormatLength = 10
)

var formatConvention = regexp.MustCompile(`^\.[A-Za-z0-9]{1,9}$`)

var (
	ErrFormatEmpty    = domainerr.New(domainerr.KindEmpty, "documentation_format.empty", "format must not be empty")
	ErrFormatTooShort = domainerr.Newf(domainerr.KindOutOfRange, "documentation_format.too_short",
		"format must be at least %d characters", minFormatLength)
	ErrFormatTooLong = domainerr.Newf(domainerr.KindOutOfRange, "documentation_format.too_long",
		"format must not exceed %d characters", maxFormatLength)
	ErrFormatConvention = domainerr.New(domainerr.KindInvalidFormat, "documentation_format.convention",
		"format does not follow the .ext convention")
	ErrFormatMissingDot = domainerr.New(domainerr.KindInvalidFormat, "documentation_format.missing_dot",
		"format must start with a dot")
)

// DocumentationFormat is a file extension such as ".md" or ".docx".
type DocumentationFormat struct{ value string }

// ValidateDocumentationFormat reports every rule s violates. Length,
// convention and leading dot are checked independently.
func ValidateDocumentationFormat(s string) result.Result {
	if isBlank(s) {
		return result.Failure(ErrFormatEmpty)
	}

	var errs []error
	n := utf8.RuneCountInString(s)
	if n < minFormatLength {
		errs = append(errs, ErrFormatTooShort)
	}
	if n > maxFormatLength {
		errs = append(errs, ErrFormatTooLong)
	}
	if !formatConvention.MatchString(s) {
		errs = append(errs, ErrFormatConvention)
	}
	if !strings.HasPrefix(s, ".") {
		errs = append(errs, ErrFormatMissingDot)
	}
	if len(errs) > 0 {
		return result.Failure(errs...)
	}
	return result.Success()
}

// NewDocumentationFormat validates s and wraps it.
func NewDocumentationFormat(s string) result.Of[DocumentationFormat] {
	if res := ValidateDocumentationFormat(s); res.IsFailure() {
		return result.FailureOf[DocumentationFormat](res.Errors()...)
	}
	return result.SuccessOf(DocumentationFormat{s})
}

func (f DocumentationFormat) String() string { return f.value }
func (f DocumentationFormat) IsZero() bool   { return f.value == "" }
