package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/worktrack/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func allHealthy() httpx.HealthChecks {
	return httpx.HealthChecks{
		Database: &stubChecker{},
		Redis:    &stubChecker{},
		EventBus: &stubChecker{},
		Storage:  &stubChecker{},
		Temporal: &stubChecker{},
	}
}

func serveHealth(t *testing.T, checks httpx.HealthChecks) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, resp
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	code, resp := serveHealth(t, allHealthy())
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	for _, k := range []string{"status", "database", "redis", "event_bus", "storage", "temporal"} {
		if resp[k] != "ok" {
			t.Errorf("%s: got %q, want ok", k, resp[k])
		}
	}
}

func TestHealthHandler_ComponentDown(t *testing.T) {
	down := &stubChecker{err: errors.New("conn refused")}
	tests := []struct {
		name  string
		key   string
		apply func(*httpx.HealthChecks)
	}{
		{"database", "database", func(c *httpx.HealthChecks) { c.Database = down }},
		{"redis", "redis", func(c *httpx.HealthChecks) { c.Redis = down }},
		{"event bus", "event_bus", func(c *httpx.HealthChecks) { c.EventBus = down }},
		{"storage", "storage", func(c *httpx.HealthChecks) { c.Storage = down }},
		{"temporal", "temporal", func(c *httpx.HealthChecks) { c.Temporal = down }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := allHealthy()
			tt.apply(&checks)
			code, resp := serveHealth(t, checks)
			if code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", code)
			}
			if resp["status"] != "degraded" || resp[tt.key] != "unreachable" {
				t.Errorf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestHealthHandler_OptionalComponentsDisabled(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{Database: &stubChecker{}})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	for _, k := range []string{"redis", "event_bus", "storage", "temporal"} {
		if resp[k] != "disabled" {
			t.Errorf("%s: got %q, want disabled", k, resp[k])
		}
	}
}

func TestHealthHandler_MissingDatabase(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{})
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if resp["database"] != "unreachable" {
		t.Errorf("database: got %q", resp["database"])
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.HealthHandler(allHealthy()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}
