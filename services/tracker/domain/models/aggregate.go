package models

import (
	"slices"
	"time"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

// ErrNilArgument is returned when a mutation is handed a nil reference or an
// unset id where it needs a real one.
var ErrNilArgument = domainerr.New(domainerr.KindInvalidArgument, "argument.nil", "argument must not be nil")

// now is swapped in tests that need deterministic timestamps.
var now = func() time.Time { return time.Now().UTC() }

// assign stores the value of r in dst when r succeeded and leaves dst alone
// otherwise.
func assign[T any](dst *T, r result.Of[T]) result.Result {
	if r.IsFailure() {
		return r.Result()
	}
	*dst = r.Value()
	return result.Success()
}

func addID[T any](ids *[]ID[T], id ID[T], exists error) result.Result {
	if id.IsZero() {
		return result.Failure(ErrNilArgument)
	}
	if slices.Contains(*ids, id) {
		return result.Failure(exists)
	}
	*ids = append(*ids, id)
	return result.Success()
}

func removeID[T any](ids *[]ID[T], id ID[T], missing error) result.Result {
	i := slices.Index(*ids, id)
	if i < 0 {
		return result.Failure(missing)
	}
	*ids = slices.Delete(*ids, i, i+1)
	return result.Success()
}

// removeFirst deletes the first element equal to v.
func removeFirst[T comparable](s *[]T, v T, missing error) result.Result {
	i := slices.Index(*s, v)
	if i < 0 {
		return result.Failure(missing)
	}
	*s = slices.Delete(*s, i, i+1)
	return result.Success()
}
