package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"

	"github.com/ghuser/worktrack/pkg/database"
	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/services/tracker/domain"
	domainevents "github.com/ghuser/worktrack/services/tracker/domain/events"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// openTestDB returns an in-memory SQLite database with every tracker table.
// The gorm records are portable, so SQLite exercises the same queries the
// PostgreSQL deployment runs.
func openTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.Open(sqlite.Open("file::memory:"), logger.NewWithWriter(io.Discard, "error"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	sqlDB, err := db.DB().DB()
	if err != nil {
		t.Fatalf("underlying pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(db.Close)
	if err := db.DB().AutoMigrate(Records()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type published struct {
	topic string
	msgs  []*message.Message
	inTx  bool
}

type fakeBus struct {
	calls []published
	err   error
}

func (f *fakeBus) PublishTx(_ context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	f.calls = append(f.calls, published{topic: topic, msgs: msgs, inTx: tx != nil})
	return f.err
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	u := models.MakeDefaultUser().Value()

	if err := repo.Save(ctx, u); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, u.ID())
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Email() != u.Email() || got.FullName() != u.FullName() {
			t.Fatalf("unexpected user %+v", got)
		}
	})

	t.Run("get by email ignores case", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "ADA@Example.com")
		if err != nil {
			t.Fatalf("get by email: %v", err)
		}
		if got.ID() != u.ID() {
			t.Fatalf("expected %v, got %v", u.ID(), got.ID())
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := models.NewUserBuilder().WithFirstName("Ada").WithLastName("Byron").WithEmail("ada@example.com").Build().Value()
		if err := repo.Save(ctx, dup); !errors.Is(err, domain.ErrUserAlreadyExists) {
			t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_PasswordHash(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	withHash := models.NewUserBuilder().WithFirstName("Grace").WithLastName("Hopper").WithEmail("grace@example.com").Build().Value()
	withHash.SetPasswordHash([]byte("$2a$10$stored-hash"))
	without := models.MakeDefaultUser().Value()

	for _, u := range []*models.User{withHash, without} {
		if err := repo.Save(ctx, u); err != nil {
			t.Fatalf("save %s: %v", u.Email(), err)
		}
	}

	got, err := repo.GetByEmail(ctx, "grace@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.PasswordHash()) != "$2a$10$stored-hash" {
		t.Errorf("hash: got %q", got.PasswordHash())
	}

	got.SetPasswordHash([]byte("$2a$10$rotated"))
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, _ = repo.GetByID(ctx, withHash.ID()); string(got.PasswordHash()) != "$2a$10$rotated" {
		t.Errorf("hash after update: got %q", got.PasswordHash())
	}

	if got, _ = repo.GetByID(ctx, without.ID()); len(got.PasswordHash()) != 0 {
		t.Errorf("expected no hash, got %q", got.PasswordHash())
	}
}

func TestWorkItemRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := NewUserRepository(db)
	bus := &fakeBus{}
	repo := NewWorkItemRepository(db, bus)

	assignee := models.MakeDefaultUser().Value()
	if err := users.Save(ctx, assignee); err != nil {
		t.Fatalf("save user: %v", err)
	}
	w := models.NewWorkItemBuilder().
		WithTitle("Fix login").
		WithDescription("Session cookie is dropped").
		WithPriority("high").
		WithType("bug").
		WithAssignee(assignee).
		Build().
		Value()

	if err := repo.Save(ctx, w); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetByID(ctx, w.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title() != w.Title() || got.Priority() != models.PriorityHigh || got.Type() != models.TypeBug {
		t.Fatalf("fields not preserved: %s %s %s", got.Title(), got.Priority(), got.Type())
	}
	if got.Assignee() == nil || got.Assignee().ID() != assignee.ID() {
		t.Fatal("assignee not preloaded")
	}

	got.UpdateStatus("done")
	got.Unassign()
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := repo.GetByID(ctx, w.ID())
	if again.Status() != models.StatusDone || again.Assignee() != nil {
		t.Fatalf("update not persisted: %s %v", again.Status(), again.Assignee())
	}
	if !again.CreatedAt().Equal(w.CreatedAt()) {
		t.Fatal("created_at must not change on update")
	}

	if err := repo.Delete(ctx, w.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, w.ID()); !errors.Is(err, domain.ErrWorkItemNotFound) {
		t.Fatalf("expected ErrWorkItemNotFound, got %v", err)
	}

	wantTopics := []string{
		domainevents.TopicWorkItemCreated,
		domainevents.TopicWorkItemUpdated,
		domainevents.TopicWorkItemDeleted,
	}
	if len(bus.calls) != len(wantTopics) {
		t.Fatalf("expected %d outbox writes, got %d", len(wantTopics), len(bus.calls))
	}
	for i, topic := range wantTopics {
		if bus.calls[i].topic != topic || !bus.calls[i].inTx {
			t.Fatalf("call %d: got topic %q (in tx: %v)", i, bus.calls[i].topic, bus.calls[i].inTx)
		}
	}

	var evt domainevents.WorkItemEvent
	if err := json.Unmarshal(bus.calls[0].msgs[0].Payload, &evt); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if evt.WorkItemID != w.ID().UUID() || evt.AssigneeID == nil || *evt.AssigneeID != assignee.ID().UUID() {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestWorkItemRepository_OutboxFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	bus := &fakeBus{err: errors.New("outbox down")}
	repo := NewWorkItemRepository(openTestDB(t), bus)
	w := models.MakeDefaultWorkItem().Value()

	if err := repo.Save(ctx, w); err == nil {
		t.Fatal("expected save to fail")
	}
	if ok, _ := repo.Exists(ctx, w.ID()); ok {
		t.Fatal("row must be rolled back with the event")
	}
}

func TestRepositories_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	owner := models.NewID[models.User]()

	t.Run("board keeps filters and order-by", func(t *testing.T) {
		repo := NewBoardRepository(db)
		b := models.NewBoardBuilder().
			WithTitle("Backend").
			WithFilters([]models.Filter{models.NewFilter("status", "eq", "todo").Value()}).
			WithOrderBy([]models.OrderBy{models.NewOrderBy("priority", "desc").Value()}).
			Build().
			Value()
		mustSave(t, repo, b)

		got, err := repo.GetByID(ctx, b.ID())
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(got.Filters()) != 1 || got.Filters()[0] != b.Filters()[0] {
			t.Fatalf("filters %v", got.Filters())
		}
		if len(got.OrderBy()) != 1 || !got.OrderBy()[0].Descending() {
			t.Fatalf("order-by %v", got.OrderBy())
		}
	})

	t.Run("iteration keeps work items", func(t *testing.T) {
		repo := NewIterationRepository(db)
		it := models.MakeDefaultIteration().Value()
		it.AddWorkItem(models.NewID[models.WorkItem]())
		mustSave(t, repo, it)
		got, _ := repo.GetByID(ctx, it.ID())
		if len(got.WorkItems()) != 1 || got.WorkItems()[0] != it.WorkItems()[0] {
			t.Fatalf("work items %v", got.WorkItems())
		}
	})

	t.Run("milestone update", func(t *testing.T) {
		repo := NewMilestoneRepository(db)
		m := models.MakeDefaultMilestone().Value()
		mustSave(t, repo, m)
		m.UpdateTitle("General availability")
		if err := repo.Update(ctx, m); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, _ := repo.GetByID(ctx, m.ID())
		if got.Title().String() != "General availability" {
			t.Fatalf("title %q", got.Title())
		}
	})

	t.Run("project keeps time range", func(t *testing.T) {
		repo := NewProjectRepository(db)
		p := models.MakeDefaultProject().Value()
		mustSave(t, repo, p)
		got, _ := repo.GetByID(ctx, p.ID())
		if !got.TimeRange().Equal(p.TimeRange()) || got.Methodology() != p.Methodology() {
			t.Fatalf("project %+v", got)
		}
	})

	t.Run("organisation keeps owners", func(t *testing.T) {
		repo := NewOrganisationRepository(db)
		o := models.MakeDefaultOrganisation(owner).Value()
		mustSave(t, repo, o)
		got, _ := repo.GetByID(ctx, o.ID())
		if !got.IsOwnedBy(owner) {
			t.Fatal("owner lost")
		}
	})

	t.Run("workspace keeps resources", func(t *testing.T) {
		repo := NewWorkspaceRepository(db)
		w := models.MakeDefaultWorkspace(owner).Value()
		w.AddResource("documents", uuid.New())
		mustSave(t, repo, w)
		got, _ := repo.GetByID(ctx, w.ID())
		if got.Owner() != owner || len(got.Documents()) != 1 || len(got.Projects()) != 0 {
			t.Fatalf("workspace %+v", got)
		}
	})

	t.Run("documentation keeps content reference", func(t *testing.T) {
		repo := NewDocumentationRepository(db)
		d := models.MakeDefaultDocumentation().Value()
		d.UpdateContentReference("documentation/onboarding.md")
		mustSave(t, repo, d)
		got, _ := repo.GetByID(ctx, d.ID())
		if got.ContentReference() != d.ContentReference() || got.Format() != d.Format() {
			t.Fatalf("documentation %+v", got)
		}
	})
}

func TestStore_ListPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(openTestDB(t))
	for range 3 {
		mustSave(t, repo, models.MakeDefaultProject().Value())
		time.Sleep(time.Millisecond)
	}

	tests := []struct {
		name string
		opts repositories.QueryOpts
		want int
	}{
		{"all", repositories.QueryOpts{}, 3},
		{"first page", repositories.QueryOpts{Limit: 2}, 2},
		{"second page", repositories.QueryOpts{Limit: 2, Offset: 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.List(ctx, tt.opts)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if total != 3 || len(items) != tt.want {
				t.Fatalf("got %d items (total %d), want %d (total 3)", len(items), total, tt.want)
			}
		})
	}
}

func TestStore_MissingRows(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository(openTestDB(t))
	id := models.NewID[models.Board]()

	if _, err := repo.GetByID(ctx, id); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("get: expected ErrBoardNotFound, got %v", err)
	}
	if err := repo.Update(ctx, models.RestoreBoard(id, "Ghost", nil, nil)); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("update: expected ErrBoardNotFound, got %v", err)
	}
	if ok, err := repo.Exists(ctx, id); err != nil || ok {
		t.Fatalf("exists: %v %v", ok, err)
	}

	b := models.MakeDefaultBoard().Value()
	mustSave(t, repo, b)
	if err := repo.Save(ctx, b); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on duplicate id, got %v", err)
	}
}

func mustSave[T any](t *testing.T, repo repositories.Repository[T], aggregate *T) {
	t.Helper()
	if err := repo.Save(context.Background(), aggregate); err != nil {
		t.Fatalf("save: %v", err)
	}
}
