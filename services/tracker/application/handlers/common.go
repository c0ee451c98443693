package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/worktrack/pkg/errhttp"
	"github.com/ghuser/worktrack/pkg/httpx"
	"github.com/ghuser/worktrack/pkg/telemetry"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ErrorResponse is returned on all error responses. Failed domain
// operations list every violation in Errors.
type ErrorResponse struct {
	Error  string                `json:"error" example:"validation failed"`
	Errors []errhttp.ErrorDetail `json:"errors,omitempty"`
} // @name ErrorResponse

// pathID parses the chi URL parameter name as an ID[T]. On failure it writes
// a 400 and returns false.
func pathID[T any](w http.ResponseWriter, r *http.Request, name string) (models.ID[T], bool) {
	id, err := models.ParseID[T](chi.URLParam(r, name))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+name)
		return id, false
	}
	return id, true
}

// bodyID parses the request body field named field as an ID[T]. On failure
// it writes a 400 and returns false.
func bodyID[T any](w http.ResponseWriter, field, s string) (models.ID[T], bool) {
	id, err := models.ParseID[T](s)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+field)
		return id, false
	}
	return id, true
}

// bodyIDs is bodyID for a list. The first bad entry writes the 400.
func bodyIDs[T any](w http.ResponseWriter, field string, raw []string) ([]models.ID[T], bool) {
	out := make([]models.ID[T], 0, len(raw))
	for _, s := range raw {
		id, ok := bodyID[T](w, field, s)
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

// pageOpts reads limit and offset from the query string. Missing or invalid
// values fall back to the defaults; limit is capped at maxPageSize.
func pageOpts(r *http.Request) repositories.QueryOpts {
	opts := repositories.QueryOpts{Limit: defaultPageSize}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		opts.Limit = min(v, maxPageSize)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}
	return opts
}

// writeError maps err to a response, reporting oversized bodies as 413.
// Server errors are sent to Sentry; domain failures are not.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httpx.JSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	if errhttp.StatusOf(err) >= http.StatusInternalServerError {
		telemetry.CaptureError(r.Context(), err)
	}
	errhttp.WriteError(w, err)
}
