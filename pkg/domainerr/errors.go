// Package domainerr defines the error values carried inside result failures.
//
// Every expected failure in the domain is an *Error with a Kind (the family the
// failure belongs to) and a Code (the type-specific condition, e.g.
// "board_title.empty"). Errors are values, never panics: they travel inside
// result.Result and are rendered by the HTTP layer.
//
// errors.Is matches by Code when the target carries one, otherwise by Kind:
//
//	errors.Is(err, domainerr.ErrNotFound)        // any NOT_FOUND error
//	errors.Is(err, models.ErrBoardTitleEmpty)    // exactly that condition
package domainerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by origin.
type Kind string

const (
	// Validation errors.

	// KindEmpty indicates a required textual value was empty or blank.
	KindEmpty Kind = "EMPTY"

	// KindOutOfRange indicates a value violated a length, numeric or ordering bound.
	KindOutOfRange Kind = "OUT_OF_RANGE"

	// KindInvalidFormat indicates a value violated a structural convention.
	KindInvalidFormat Kind = "INVALID_FORMAT"

	// KindRequiredFieldMissing is raised by builders for a required field that
	// was empty or never provided.
	KindRequiredFieldMissing Kind = "REQUIRED_FIELD_MISSING"

	// Collection errors.

	// KindNotFound indicates the referenced member or resource does not exist.
	KindNotFound Kind = "NOT_FOUND"

	// KindAlreadyExists indicates the member or resource is already present.
	KindAlreadyExists Kind = "ALREADY_EXISTS"

	// Structural errors.

	// KindInvalidArgument indicates a mutation received a nil or zero reference
	// it structurally requires.
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
)

// Kind sentinels for errors.Is checks against a whole family.
var (
	ErrEmpty                = &Error{Kind: KindEmpty}
	ErrOutOfRange           = &Error{Kind: KindOutOfRange}
	ErrInvalidFormat        = &Error{Kind: KindInvalidFormat}
	ErrRequiredFieldMissing = &Error{Kind: KindRequiredFieldMissing}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrAlreadyExists        = &Error{Kind: KindAlreadyExists}
	ErrInvalidArgument      = &Error{Kind: KindInvalidArgument}
)

// CodeRequiredFieldMissing is the code shared by every synthesized required-field error.
const CodeRequiredFieldMissing = "required_field_missing"

// Error is a classified domain error. Instances declared as package variables
// are shared and must be treated as immutable; use Wrap to attach a cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Field names the aggregate field the error refers to, when known.
	Field string
	Cause error
}

// New returns an Error of the given kind.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Newf returns an Error with a formatted message.
func Newf(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// RequiredFieldMissing reports that field is required. cause is the original
// validation error that triggered it, or nil when the field was never set.
func RequiredFieldMissing(field string, cause error) *Error {
	return &Error{
		Kind:    KindRequiredFieldMissing,
		Code:    CodeRequiredFieldMissing,
		Message: fmt.Sprintf("%s is a required field", field),
		Field:   field,
		Cause:   cause,
	}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return string(e.Kind)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target describes the same condition as e.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" {
		return e.Code == t.Code
	}
	return t.Kind != "" && e.Kind == t.Kind
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// WithField returns a copy of e bound to the given field name.
func (e *Error) WithField(field string) *Error {
	c := *e
	c.Field = field
	return &c
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsValidation reports whether kind belongs to the input validation family.
func IsValidation(kind Kind) bool {
	switch kind {
	case KindEmpty, KindOutOfRange, KindInvalidFormat, KindRequiredFieldMissing, KindInvalidArgument:
		return true
	default:
		return false
	}
}
