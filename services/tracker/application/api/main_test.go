package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/services/tracker/application/api"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
	"github.com/ghuser/worktrack/services/tracker/infrastructure/persistence/memory"
)

type memContent struct {
	objects map[string][]byte
}

func (m *memContent) Upload(_ context.Context, key string, body io.Reader, _ string, _ int64) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = b
	return nil
}

func (m *memContent) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memContent) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key, nil
}

func newDeps() appsvcs.Deps {
	return appsvcs.Deps{
		Logger:         logger.NewWithWriter(io.Discard, "error"),
		Users:          memory.NewUserRepository(),
		WorkItems:      memory.NewWorkItemRepository(),
		Boards:         memory.NewBoardRepository(),
		Iterations:     memory.NewIterationRepository(),
		Milestones:     memory.NewMilestoneRepository(),
		Projects:       memory.NewProjectRepository(),
		Organisations:  memory.NewOrganisationRepository(),
		Workspaces:     memory.NewWorkspaceRepository(),
		Documentations: memory.NewDocumentationRepository(),
	}
}

func newRouter(d appsvcs.Deps) http.Handler {
	store := sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		api.Mount(r, appsvcs.NewServices(d), store, d.Logger)
	})
	return r
}

type client struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var rd io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, "/api"+path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	c.h.ServeHTTP(rr, req)
	return rr
}

func (c *client) expect(method, path string, body any, status int) map[string]any {
	c.t.Helper()
	rr := c.do(method, path, body)
	if rr.Code != status {
		c.t.Fatalf("%s %s: status %d, want %d; body %s", method, path, rr.Code, status, rr.Body.String())
	}
	out := map[string]any{}
	if rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
			c.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return out
}

const testPassword = "correct horse battery"

// signedIn registers a user and returns a client carrying their session.
func signedIn(t *testing.T, h http.Handler) (*client, string) {
	t.Helper()
	c := &client{t: t, h: h}
	rr := c.do(http.MethodPost, "/users", map[string]string{
		"first_name": "Grace", "last_name": "Hopper", "email": "grace@example.com", "password": testPassword,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: status %d: %s", rr.Code, rr.Body.String())
	}
	c.cookies = rr.Result().Cookies()
	if len(c.cookies) == 0 {
		t.Fatal("register did not set a session cookie")
	}
	var u map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &u)
	return c, u["id"].(string)
}

func errorList(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	raw, _ := body["errors"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		out = append(out, e.(map[string]any))
	}
	return out
}

func TestMount_ProtectedRoutesRequireSession(t *testing.T) {
	h := newRouter(newDeps())
	anon := &client{t: t, h: h}

	for _, path := range []string{"/work-items", "/projects", "/users/" + uuid.NewString()} {
		if rr := anon.do(http.MethodGet, path, nil); rr.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: got %d, want 401", path, rr.Code)
		}
	}

	c, _ := signedIn(t, h)
	c.expect(http.MethodGet, "/work-items", nil, http.StatusOK)
}

func TestMount_SignIn(t *testing.T) {
	h := newRouter(newDeps())
	signedIn(t, h)

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"registered email and password", map[string]string{"email": "GRACE@example.com", "password": testPassword}, http.StatusOK},
		{"email alone", map[string]string{"email": "grace@example.com"}, http.StatusUnprocessableEntity},
		{"empty password", map[string]string{"email": "grace@example.com", "password": ""}, http.StatusUnprocessableEntity},
		{"wrong password", map[string]string{"email": "grace@example.com", "password": "correct horse"}, http.StatusUnauthorized},
		{"unknown email", map[string]string{"email": "ada@example.com", "password": testPassword}, http.StatusUnauthorized},
		{"malformed email", map[string]string{"email": "not-an-email", "password": testPassword}, http.StatusUnauthorized},
		{"missing email", map[string]string{"password": testPassword}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anon := &client{t: t, h: h}
			rr := anon.do(http.MethodPost, "/auth/session", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("got %d, want %d: %s", rr.Code, tt.status, rr.Body.String())
			}
			cookies := rr.Result().Cookies()
			if tt.status == http.StatusOK && len(cookies) == 0 {
				t.Error("sign-in did not set a session cookie")
			}
			if tt.status != http.StatusOK && len(cookies) != 0 {
				t.Errorf("rejected sign-in set cookies: %v", cookies)
			}
		})
	}
}

// Unknown emails and wrong passwords must be indistinguishable.
func TestMount_SignInDoesNotRevealRegisteredEmails(t *testing.T) {
	h := newRouter(newDeps())
	signedIn(t, h)
	anon := &client{t: t, h: h}

	wrong := anon.do(http.MethodPost, "/auth/session", map[string]string{"email": "grace@example.com", "password": "not the password"})
	unknown := anon.do(http.MethodPost, "/auth/session", map[string]string{"email": "ada@example.com", "password": "not the password"})

	if wrong.Code != unknown.Code || wrong.Body.String() != unknown.Body.String() {
		t.Fatalf("responses differ:\n wrong password: %d %s\n unknown email:  %d %s",
			wrong.Code, wrong.Body.String(), unknown.Code, unknown.Body.String())
	}
}

func TestMount_SignInSessionGrantsAccess(t *testing.T) {
	h := newRouter(newDeps())
	signedIn(t, h)

	c := &client{t: t, h: h}
	c.expect(http.MethodGet, "/work-items", nil, http.StatusUnauthorized)

	rr := c.do(http.MethodPost, "/auth/session", map[string]string{"email": "grace@example.com", "password": testPassword})
	if rr.Code != http.StatusOK {
		t.Fatalf("sign in: %d %s", rr.Code, rr.Body.String())
	}
	c.cookies = rr.Result().Cookies()
	c.expect(http.MethodGet, "/work-items", nil, http.StatusOK)
}

func TestMount_RegisterDuplicateEmail(t *testing.T) {
	h := newRouter(newDeps())
	c, _ := signedIn(t, h)
	body := c.expect(http.MethodPost, "/users", map[string]string{
		"first_name": "Grace", "last_name": "Murray", "email": "grace@example.com", "password": testPassword,
	}, http.StatusConflict)
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}

func TestMount_WorkItemLifecycle(t *testing.T) {
	h := newRouter(newDeps())
	c, userID := signedIn(t, h)

	item := c.expect(http.MethodPost, "/work-items", map[string]string{
		"title": "Fix login redirect", "priority": "high", "type": "bug",
	}, http.StatusCreated)
	id := item["id"].(string)
	if item["status"] != "todo" || item["priority"] != "high" {
		t.Fatalf("unexpected work item: %+v", item)
	}

	rr := c.do(http.MethodPost, "/work-items", map[string]string{"title": "Audit redirects"})
	var second map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &second)
	if loc := rr.Header().Get("Location"); loc != "/api/work-items/"+second["id"].(string) {
		t.Errorf("Location: got %q", loc)
	}

	updated := c.expect(http.MethodPatch, "/work-items/"+id, map[string]string{"status": "in_progress"}, http.StatusOK)
	if updated["status"] != "in_progress" || updated["title"] != "Fix login redirect" {
		t.Errorf("unexpected update: %+v", updated)
	}

	// One bad field leaves the item untouched.
	c.expect(http.MethodPatch, "/work-items/"+id, map[string]string{"status": "done", "priority": "urgent"}, http.StatusUnprocessableEntity)
	if got := c.expect(http.MethodGet, "/work-items/"+id, nil, http.StatusOK); got["status"] != "in_progress" {
		t.Errorf("status changed by a rejected update: %v", got["status"])
	}

	assigned := c.expect(http.MethodPut, "/work-items/"+id+"/assignee", map[string]string{"user_id": userID}, http.StatusOK)
	assignee, _ := assigned["assignee"].(map[string]any)
	if assignee["id"] != userID {
		t.Errorf("assignee: got %+v", assigned["assignee"])
	}
	c.expect(http.MethodPut, "/work-items/"+id+"/assignee", map[string]string{"user_id": uuid.NewString()}, http.StatusNotFound)

	unassigned := c.expect(http.MethodDelete, "/work-items/"+id+"/assignee", nil, http.StatusOK)
	if _, ok := unassigned["assignee"]; ok {
		t.Errorf("assignee still set: %+v", unassigned)
	}

	list := c.expect(http.MethodGet, "/work-items?limit=10", nil, http.StatusOK)
	if list["total"].(float64) != 2 || list["limit"].(float64) != 10 {
		t.Errorf("unexpected list: %+v", list)
	}

	c.expect(http.MethodDelete, "/work-items/"+id, nil, http.StatusNoContent)
	c.expect(http.MethodGet, "/work-items/"+id, nil, http.StatusNotFound)
}

func TestMount_WorkItemValidationErrors(t *testing.T) {
	h := newRouter(newDeps())
	c, _ := signedIn(t, h)

	body := c.expect(http.MethodPost, "/work-items", map[string]string{
		"title": "", "status": "blocked",
	}, http.StatusUnprocessableEntity)

	errs := errorList(t, body)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %+v", errs)
	}
	if errs[0]["kind"] != "REQUIRED_FIELD_MISSING" || errs[0]["field"] != "title" {
		t.Errorf("first error: %+v", errs[0])
	}
	if errs[1]["kind"] != "OUT_OF_RANGE" {
		t.Errorf("second error: %+v", errs[1])
	}

	c.expect(http.MethodGet, "/work-items/not-a-uuid", nil, http.StatusBadRequest)
	c.expect(http.MethodPost, "/work-items", map[string]string{"title": "Valid title", "assignee_id": "nope"}, http.StatusUnprocessableEntity)
}

func TestMount_BoardView(t *testing.T) {
	h := newRouter(newDeps())
	c, _ := signedIn(t, h)

	for _, wi := range []map[string]string{
		{"title": "Low priority chore", "priority": "low"},
		{"title": "Critical outage", "priority": "critical"},
		{"title": "Finished task", "priority": "high", "status": "done"},
	} {
		c.expect(http.MethodPost, "/work-items", wi, http.StatusCreated)
	}

	board := c.expect(http.MethodPost, "/boards", map[string]any{
		"title":    "Open work",
		"filters":  []map[string]string{{"field": "status", "operator": "neq", "value": "done"}},
		"order_by": []map[string]string{{"field": "priority", "direction": "desc"}},
	}, http.StatusCreated)
	id := board["id"].(string)

	view := c.expect(http.MethodGet, "/boards/"+id+"/work-items", nil, http.StatusOK)
	items := view["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if first := items[0].(map[string]any); first["title"] != "Critical outage" {
		t.Errorf("first item: %v", first["title"])
	}

	c.expect(http.MethodDelete, "/boards/"+id+"/filters", map[string]string{"field": "status", "operator": "neq", "value": "done"}, http.StatusOK)
	view = c.expect(http.MethodGet, "/boards/"+id+"/work-items", nil, http.StatusOK)
	if n := len(view["items"].([]any)); n != 3 {
		t.Errorf("expected 3 items without filters, got %d", n)
	}
	c.expect(http.MethodDelete, "/boards/"+id+"/filters", map[string]string{"field": "status", "operator": "neq", "value": "done"}, http.StatusNotFound)

	bad := c.expect(http.MethodPost, "/boards", map[string]any{
		"title":   "x",
		"filters": []map[string]string{{"field": "colour", "operator": "eq", "value": "red"}},
	}, http.StatusUnprocessableEntity)
	if n := len(errorList(t, bad)); n < 2 {
		t.Errorf("expected title and filter errors together, got %d", n)
	}
}

func TestMount_IterationsAndMilestones(t *testing.T) {
	for _, base := range []string{"/iterations", "/milestones"} {
		t.Run(strings.TrimPrefix(base, "/"), func(t *testing.T) {
			h := newRouter(newDeps())
			c, _ := signedIn(t, h)

			item := c.expect(http.MethodPost, "/work-items", map[string]string{"title": "Ship it"}, http.StatusCreated)
			itemID := item["id"].(string)

			c.expect(http.MethodPost, base, map[string]any{
				"title": "Sprint 14", "work_item_ids": []string{uuid.NewString()},
			}, http.StatusNotFound)

			group := c.expect(http.MethodPost, base, map[string]any{"title": "Sprint 14"}, http.StatusCreated)
			id := group["id"].(string)

			added := c.expect(http.MethodPut, base+"/"+id+"/work-items/"+itemID, nil, http.StatusOK)
			if ids := added["work_item_ids"].([]any); len(ids) != 1 || ids[0] != itemID {
				t.Errorf("work_item_ids: %v", ids)
			}
			c.expect(http.MethodPut, base+"/"+id+"/work-items/"+itemID, nil, http.StatusConflict)
			c.expect(http.MethodDelete, base+"/"+id+"/work-items/"+itemID, nil, http.StatusOK)
			c.expect(http.MethodDelete, base+"/"+id+"/work-items/"+itemID, nil, http.StatusNotFound)

			c.expect(http.MethodDelete, base+"/"+id, nil, http.StatusNoContent)
			c.expect(http.MethodGet, base+"/"+id, nil, http.StatusNotFound)
		})
	}
}

func TestMount_Projects(t *testing.T) {
	h := newRouter(newDeps())
	c, _ := signedIn(t, h)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	p := c.expect(http.MethodPost, "/projects", map[string]any{
		"title": "Checkout rewrite", "starts_at": start, "ends_at": start.AddDate(0, 3, 0), "methodology": "kanban",
	}, http.StatusCreated)
	if p["methodology"] != "kanban" || p["status"] != "planned" {
		t.Errorf("unexpected project: %+v", p)
	}

	bad := c.expect(http.MethodPost, "/projects", map[string]any{
		"title": "Backwards", "starts_at": start, "ends_at": start.AddDate(0, -1, 0),
	}, http.StatusUnprocessableEntity)
	if errs := errorList(t, bad); len(errs) != 1 || errs[0]["kind"] != "OUT_OF_RANGE" {
		t.Errorf("unexpected errors: %+v", errs)
	}

	missing := c.expect(http.MethodPost, "/projects", map[string]any{"title": "No dates"}, http.StatusUnprocessableEntity)
	if errs := errorList(t, missing); len(errs) != 1 || errs[0]["field"] != "time_range" {
		t.Errorf("unexpected errors: %+v", errs)
	}

	list := c.expect(http.MethodGet, "/projects", nil, http.StatusOK)
	if list["total"].(float64) != 1 {
		t.Errorf("total: %v", list["total"])
	}
	c.expect(http.MethodDelete, "/projects/"+p["id"].(string), nil, http.StatusNoContent)
}

func TestMount_OrganisationOwners(t *testing.T) {
	h := newRouter(newDeps())
	c, userID := signedIn(t, h)

	org := c.expect(http.MethodPost, "/organisations", map[string]string{"name": "Acme Corp"}, http.StatusCreated)
	owners := org["owner_ids"].([]any)
	if len(owners) != 1 || owners[0] != userID {
		t.Fatalf("owners default to caller, got %v", owners)
	}
	id := org["id"].(string)

	c.expect(http.MethodPut, "/organisations/"+id+"/owners/"+userID, nil, http.StatusConflict)
	c.expect(http.MethodPut, "/organisations/"+id+"/owners/"+uuid.NewString(), nil, http.StatusNotFound)
	c.expect(http.MethodDelete, "/organisations/"+id+"/owners/"+userID, nil, http.StatusOK)
}

func TestMount_WorkspaceResources(t *testing.T) {
	h := newRouter(newDeps())
	c, userID := signedIn(t, h)

	ws := c.expect(http.MethodPost, "/workspaces", map[string]string{"title": "Platform team"}, http.StatusCreated)
	if ws["owner_id"] != userID {
		t.Fatalf("owner defaults to caller, got %v", ws["owner_id"])
	}
	id := ws["id"].(string)

	tests := []struct {
		name     string
		method   string
		kind     string
		resource string
		status   int
	}{
		{"add contact", http.MethodPut, "contacts", userID, http.StatusOK},
		{"add contact twice", http.MethodPut, "contacts", userID, http.StatusConflict},
		{"unknown project", http.MethodPut, "projects", uuid.NewString(), http.StatusNotFound},
		{"unknown kind", http.MethodPut, "boards", uuid.NewString(), http.StatusUnprocessableEntity},
		{"malformed resource id", http.MethodPut, "contacts", "nope", http.StatusBadRequest},
		{"remove contact", http.MethodDelete, "contacts", userID, http.StatusOK},
		{"remove absent contact", http.MethodDelete, "contacts", userID, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.t = t
			c.expect(tt.method, "/workspaces/"+id+"/"+tt.kind+"/"+tt.resource, nil, tt.status)
		})
	}
}

func TestMount_DocumentationContent(t *testing.T) {
	d := newDeps()
	content := &memContent{objects: map[string][]byte{}}
	d.Content = content
	h := newRouter(d)
	c, _ := signedIn(t, h)

	doc := c.expect(http.MethodPost, "/documentation", map[string]string{"title": "Onboarding guide", "format": ".md"}, http.StatusCreated)
	id := doc["id"].(string)

	c.expect(http.MethodGet, "/documentation/"+id+"/content-url", nil, http.StatusNotFound)

	req := httptest.NewRequest(http.MethodPut, "/api/documentation/"+id+"/content", strings.NewReader("# Welcome"))
	req.Header.Set("Content-Type", "text/markdown")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("upload: status %d: %s", rr.Code, rr.Body.String())
	}
	if got := string(content.objects["documentation/"+id+".md"]); got != "# Welcome" {
		t.Errorf("stored content: %q", got)
	}

	link := c.expect(http.MethodGet, "/documentation/"+id+"/content-url", nil, http.StatusOK)
	if link["expires_in"].(float64) != 900 || !strings.HasSuffix(link["url"].(string), id+".md") {
		t.Errorf("unexpected link: %+v", link)
	}

	c.expect(http.MethodDelete, "/documentation/"+id, nil, http.StatusNoContent)
	if len(content.objects) != 0 {
		t.Errorf("content not cleaned up: %v", content.objects)
	}
}

func TestMount_DocumentationWithoutStore(t *testing.T) {
	h := newRouter(newDeps())
	c, _ := signedIn(t, h)

	doc := c.expect(http.MethodPost, "/documentation", map[string]string{"title": "Runbook", "format": ".txt"}, http.StatusCreated)
	c.expect(http.MethodPut, "/documentation/"+doc["id"].(string)+"/content", nil, http.StatusServiceUnavailable)

	bad := c.expect(http.MethodPost, "/documentation", map[string]string{"title": "Runbook", "format": "txt"}, http.StatusUnprocessableEntity)
	if errs := errorList(t, bad); len(errs) == 0 || errs[0]["field"] == "title" {
		t.Errorf("unexpected errors: %+v", errs)
	}
}

func TestMount_SignOut(t *testing.T) {
	h := newRouter(newDeps())
	c, _ := signedIn(t, h)

	rr := c.do(http.MethodDelete, "/auth/session", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("sign out: got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expired session cookie, got %+v", cookies)
	}
}
