// Package result provides the outcome type returned by every domain operation.
//
// A Result is either a success or a failure carrying every error that caused it.
// Expected failures (validation, missing collection members) are returned as
// failed results and never panic; callers must check IsFailure before using a
// value. Of[T] adds a payload that is only meaningful on success.
package result

import (
	"slices"
	"strings"
)

// Result is the outcome of an operation without a payload.
// The zero value is a success.
type Result struct {
	errs   []error
	failed bool
}

// Success returns a successful Result.
func Success() Result {
	return Result{}
}

// Failure returns a failed Result holding errs.
func Failure(errs ...error) Result {
	return Result{errs: slices.Clone(errs), failed: true}
}

// Combine merges results: it fails if any input failed and carries the errors
// of every failed input in order.
func Combine(results ...Result) Result {
	var (
		errs   []error
		failed bool
	)
	for _, r := range results {
		if r.failed {
			failed = true
			errs = append(errs, r.errs...)
		}
	}
	if !failed {
		return Success()
	}
	return Result{errs: errs, failed: true}
}

// IsFailure reports whether the operation failed.
func (r Result) IsFailure() bool { return r.failed }

// IsSuccess is the negation of IsFailure.
func (r Result) IsSuccess() bool { return !r.failed }

// Errors returns a copy of the errors carried by a failure; nil on success.
func (r Result) Errors() []error {
	return slices.Clone(r.errs)
}

// Err returns nil on success and an *Error holding every failure otherwise.
func (r Result) Err() error {
	if !r.failed {
		return nil
	}
	return &Error{Errors: slices.Clone(r.errs)}
}

// Of is the outcome of an operation producing a T.
type Of[T any] struct {
	value  T
	errs   []error
	failed bool
}

// SuccessOf returns a successful result carrying v.
func SuccessOf[T any](v T) Of[T] {
	return Of[T]{value: v}
}

// FailureOf returns a failed result holding errs. Its value is T's zero value.
func FailureOf[T any](errs ...error) Of[T] {
	return Of[T]{errs: slices.Clone(errs), failed: true}
}

// From lifts a payload-less failure into Of[T]. A successful r yields a
// success carrying v.
func From[T any](r Result, v T) Of[T] {
	if r.failed {
		return Of[T]{errs: r.Errors(), failed: true}
	}
	return SuccessOf(v)
}

// IsFailure reports whether the operation failed.
func (r Of[T]) IsFailure() bool { return r.failed }

// IsSuccess is the negation of IsFailure.
func (r Of[T]) IsSuccess() bool { return !r.failed }

// Value returns the payload. A failed result returns T's zero value without
// complaint, so check IsFailure first.
func (r Of[T]) Value() T { return r.value }

// Get returns the payload and Err().
func (r Of[T]) Get() (T, error) {
	return r.value, r.Err()
}

// Errors returns a copy of the errors carried by a failure; nil on success.
func (r Of[T]) Errors() []error {
	return slices.Clone(r.errs)
}

// Err returns nil on success and an *Error holding every failure otherwise.
func (r Of[T]) Err() error {
	return r.Result().Err()
}

// Result drops the payload.
func (r Of[T]) Result() Result {
	return Result{errs: r.errs, failed: r.failed}
}

// Error is the error form of a failed result. It unwraps to every contained
// error so errors.Is and errors.As inspect all of them.
type Error struct {
	Errors []error
}

func (e *Error) Error() string {
	if len(e.Errors) == 0 {
		return "operation failed"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap returns the contained errors.
func (e *Error) Unwrap() []error {
	return e.Errors
}
