package models

import (
	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

// builder accumulates the failures of every With* call. Embedded by each
// aggregate builder.
type builder struct {
	errs    []error
	touched map[string]bool
}

// requirement describes a field Build insists on. empty is the value
// object's "empty" error; isSet reports whether the aggregate holds a value.
type requirement struct {
	field string
	empty error
	isSet func() bool
}

func (b *builder) apply(field string, r result.Result) {
	if b.touched == nil {
		b.touched = make(map[string]bool)
	}
	b.touched[field] = true
	if r.IsFailure() {
		b.errs = append(b.errs, r.Errors()...)
	}
}

// finalize turns empty-value errors on required fields into
// RequiredFieldMissing errors wrapping the original, and synthesises one for
// required fields that were never provided. Required-field errors come first.
func (b *builder) finalize(reqs ...requirement) []error {
	remaining := append([]error(nil), b.errs...)
	var required []error

	for _, req := range reqs {
		var cause error
		kept := remaining[:0]
		for _, err := range remaining {
			if req.empty != nil && isExactly(err, req.empty) {
				if cause == nil {
					cause = err
				}
				continue
			}
			kept = append(kept, err)
		}
		remaining = kept

		switch {
		case cause != nil:
			required = append(required, domainerr.RequiredFieldMissing(req.field, cause))
		case !b.touched[req.field] && !req.isSet():
			required = append(required, domainerr.RequiredFieldMissing(req.field, nil))
		}
	}

	return append(required, remaining...)
}

// isExactly matches err against target without looking through wrapped
// causes, so an existing RequiredFieldMissing is never swallowed.
func isExactly(err, target error) bool {
	de, ok := err.(*domainerr.Error)
	te, tok := target.(*domainerr.Error)
	if !ok || !tok {
		return err == target
	}
	return de.Code != "" && de.Code == te.Code
}

func build[T any](b *builder, v T, reqs ...requirement) result.Of[T] {
	if errs := b.finalize(reqs...); len(errs) > 0 {
		return result.FailureOf[T](errs...)
	}
	return result.SuccessOf(v)
}
