// Package errhttp maps domain errors to HTTP status codes and JSON bodies.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/worktrack/pkg/auth"
	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/httpx"
	"github.com/ghuser/worktrack/pkg/result"
)

// ErrorDetail is the wire form of a single domain error.
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// ErrorResponse is returned for failed results.
type ErrorResponse struct {
	Error  string        `json:"error"`
	Errors []ErrorDetail `json:"errors,omitempty"`
}

// WriteError writes a JSON error response for err.
//
// A failed result (*result.Error) is rendered with every contained error.
// Its status is 404 when any error is NOT_FOUND, 409 when any is
// ALREADY_EXISTS and 422 otherwise. A lone *domainerr.Error is mapped by
// kind. Anything unrecognised is a 500 with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)

	var rerr *result.Error
	if errors.As(err, &rerr) {
		httpx.JSON(w, status, ErrorResponse{
			Error:  summary(status),
			Errors: details(rerr.Errors),
		})
		return
	}

	var derr *domainerr.Error
	if errors.As(err, &derr) {
		httpx.JSON(w, status, ErrorResponse{
			Error:  derr.Error(),
			Errors: details([]error{derr}),
		})
		return
	}

	if status == http.StatusInternalServerError {
		httpx.JSONError(w, status, http.StatusText(status))
		return
	}
	httpx.JSONError(w, status, err.Error())
}

// StatusOf returns the HTTP status WriteError would use for err.
func StatusOf(err error) int {
	if errors.Is(err, auth.ErrUnauthenticated) || errors.Is(err, auth.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}

	var rerr *result.Error
	if errors.As(err, &rerr) {
		return statusOfMany(rerr.Errors)
	}

	switch kind := domainerr.KindOf(err); {
	case kind == domainerr.KindNotFound:
		return http.StatusNotFound
	case kind == domainerr.KindAlreadyExists:
		return http.StatusConflict
	case domainerr.IsValidation(kind):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func statusOfMany(errs []error) int {
	status := http.StatusUnprocessableEntity
	for _, err := range errs {
		switch domainerr.KindOf(err) {
		case domainerr.KindNotFound:
			return http.StatusNotFound
		case domainerr.KindAlreadyExists:
			status = http.StatusConflict
		}
	}
	return status
}

func summary(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "validation failed"
	}
}

func details(errs []error) []ErrorDetail {
	out := make([]ErrorDetail, 0, len(errs))
	for _, err := range errs {
		var derr *domainerr.Error
		if !errors.As(err, &derr) {
			out = append(out, ErrorDetail{Kind: "UNKNOWN", Message: err.Error()})
			continue
		}
		d := ErrorDetail{
			Kind:    string(derr.Kind),
			Code:    derr.Code,
			Message: derr.Error(),
			Field:   derr.Field,
		}
		if derr.Cause != nil {
			d.Cause = derr.Cause.Error()
		}
		out = append(out, d)
	}
	return out
}
