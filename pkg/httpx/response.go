package httpx

import (
	"encoding/json"
	"net/http"
	"path"
)

// JSON writes v as JSON with the given status code. Encoding errors are
// dropped; the status line is already on the wire by then.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Created writes a 201 with v as the body and Location pointing at the new
// resource, which lives at id under the collection path of r.
func Created(w http.ResponseWriter, r *http.Request, id string, v any) {
	w.Header().Set("Location", path.Join(r.URL.Path, id))
	JSON(w, http.StatusCreated, v)
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
