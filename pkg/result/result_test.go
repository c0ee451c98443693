package result

import (
	"errors"
	"testing"
)

var (
	errFirst  = errors.New("first")
	errSecond = errors.New("second")
)

func TestResult_Success(t *testing.T) {
	r := Success()
	if r.IsFailure() {
		t.Fatal("expected success")
	}
	if !r.IsSuccess() {
		t.Fatal("IsSuccess must be the negation of IsFailure")
	}
	if len(r.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", r.Errors())
	}
	if r.Err() != nil {
		t.Fatalf("expected nil Err, got %v", r.Err())
	}
}

func TestResult_ZeroValueIsSuccess(t *testing.T) {
	var r Result
	if r.IsFailure() {
		t.Fatal("zero Result must be a success")
	}
}

func TestResult_Failure(t *testing.T) {
	r := Failure(errFirst, errSecond)
	if !r.IsFailure() || r.IsSuccess() {
		t.Fatal("expected failure")
	}
	errs := r.Errors()
	if len(errs) != 2 || errs[0] != errFirst || errs[1] != errSecond {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestResult_FailureWithoutErrors(t *testing.T) {
	r := Failure()
	if !r.IsFailure() {
		t.Fatal("Failure() with no errors must still fail")
	}
	if r.Err() == nil {
		t.Fatal("expected non-nil Err")
	}
}

func TestResult_ErrorsIsACopy(t *testing.T) {
	r := Failure(errFirst)
	errs := r.Errors()
	errs[0] = errSecond
	if r.Errors()[0] != errFirst {
		t.Fatal("mutating Errors() must not affect the result")
	}
}

func TestResult_Err(t *testing.T) {
	err := Failure(errFirst, errSecond).Err()

	var failure *Error
	if !errors.As(err, &failure) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(failure.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(failure.Errors))
	}
	if !errors.Is(err, errFirst) || !errors.Is(err, errSecond) {
		t.Fatal("errors.Is must reach every contained error")
	}
	if err.Error() != "first; second" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCombine(t *testing.T) {
	t.Run("all successes", func(t *testing.T) {
		if Combine(Success(), Success()).IsFailure() {
			t.Fatal("expected success")
		}
	})

	t.Run("collects errors from every failure in order", func(t *testing.T) {
		r := Combine(Failure(errFirst), Success(), Failure(errSecond))
		if !r.IsFailure() {
			t.Fatal("expected failure")
		}
		errs := r.Errors()
		if len(errs) != 2 || errs[0] != errFirst || errs[1] != errSecond {
			t.Fatalf("unexpected errors: %v", errs)
		}
	})

	t.Run("no inputs", func(t *testing.T) {
		if Combine().IsFailure() {
			t.Fatal("expected success")
		}
	})
}

func TestOf_Success(t *testing.T) {
	r := SuccessOf("value")
	if r.IsFailure() {
		t.Fatal("expected success")
	}
	if r.Value() != "value" {
		t.Fatalf("expected %q, got %q", "value", r.Value())
	}
	v, err := r.Get()
	if err != nil || v != "value" {
		t.Fatalf("Get() = %q, %v", v, err)
	}
}

func TestOf_FailureYieldsZeroValue(t *testing.T) {
	r := FailureOf[int](errFirst)
	if !r.IsFailure() {
		t.Fatal("expected failure")
	}
	if r.Value() != 0 {
		t.Fatalf("expected zero value, got %d", r.Value())
	}
	if _, err := r.Get(); !errors.Is(err, errFirst) {
		t.Fatalf("expected errFirst, got %v", err)
	}
}

func TestOf_Result(t *testing.T) {
	failed := FailureOf[string](errFirst).Result()
	if !failed.IsFailure() || len(failed.Errors()) != 1 {
		t.Fatalf("unexpected result: %+v", failed)
	}
	if SuccessOf(1).Result().IsFailure() {
		t.Fatal("expected success")
	}
}

func TestFrom(t *testing.T) {
	if got := From(Success(), 7); got.IsFailure() || got.Value() != 7 {
		t.Fatalf("unexpected result: %+v", got)
	}
	got := From(Failure(errFirst), 7)
	if !got.IsFailure() {
		t.Fatal("expected failure")
	}
	if got.Value() != 0 {
		t.Fatalf("failed result must carry the zero value, got %d", got.Value())
	}
}

func TestError_EmptyMessage(t *testing.T) {
	if (&Error{}).Error() != "operation failed" {
		t.Fatal("unexpected message for empty failure")
	}
}
