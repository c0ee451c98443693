package models

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

// textRules is the validation shared by every length-bounded text value object.
//
// Rules, in order:
//   - blank (empty or whitespace only) fails with the empty error and nothing else
//   - fewer than min runes fails with tooShort
//   - more than max runes fails with tooLong
//   - control characters fail with invalidChars
//
// The last three are independent and may all be reported together.
type textRules struct {
	min, max     int
	empty        *domainerr.Error
	tooShort     *domainerr.Error
	tooLong      *domainerr.Error
	invalidChars *domainerr.Error
}

// newTextRules derives the error set for a value object. subject is the
// human name ("board title"), code the machine prefix ("board_title").
func newTextRules(subject, code string, minLen, maxLen int) textRules {
	return textRules{
		min:   minLen,
		max:   maxLen,
		empty: domainerr.Newf(domainerr.KindEmpty, code+".empty", "%s must not be empty", subject),
		tooShort: domainerr.Newf(domainerr.KindOutOfRange, code+".too_short",
			"%s must be at least %d characters", subject, minLen),
		tooLong: domainerr.Newf(domainerr.KindOutOfRange, code+".too_long",
			"%s must not exceed %d characters", subject, maxLen),
		invalidChars: domainerr.Newf(domainerr.KindInvalidFormat, code+".invalid_characters",
			"%s must not contain control characters", subject),
	}
}

func (r textRules) validate(s string) result.Result {
	if isBlank(s) {
		return result.Failure(r.empty)
	}

	var errs []error
	n := utf8.RuneCountInString(s)
	if n < r.min {
		errs = append(errs, r.tooShort)
	}
	if n > r.max {
		errs = append(errs, r.tooLong)
	}
	if strings.ContainsFunc(s, unicode.IsControl) {
		errs = append(errs, r.invalidChars)
	}
	if len(errs) > 0 {
		return result.Failure(errs...)
	}
	return result.Success()
}

// createText validates s against rules and wraps it on success.
func createText[T any](s string, rules textRules, wrap func(string) T) result.Of[T] {
	if res := rules.validate(s); res.IsFailure() {
		return result.FailureOf[T](res.Errors()...)
	}
	return result.SuccessOf(wrap(s))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
