package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/ghuser/worktrack/services/tracker/domain"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

func TestRepository_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewIterationRepository()
	it := models.MakeDefaultIteration().Value()
	if err := repo.Save(ctx, it); err != nil {
		t.Fatalf("save: %v", err)
	}

	it.AddWorkItem(models.NewID[models.WorkItem]())
	got, _ := repo.GetByID(ctx, it.ID())
	if len(got.WorkItems()) != 0 {
		t.Fatal("unsaved mutation leaked into the store")
	}

	if err := repo.Update(ctx, it); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.GetByID(ctx, it.ID())
	if len(got.WorkItems()) != 1 {
		t.Fatal("update not stored")
	}
}

func TestRepository_Errors(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository()
	b := models.MakeDefaultBoard().Value()

	if _, err := repo.GetByID(ctx, b.ID()); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("get: %v", err)
	}
	if err := repo.Update(ctx, b); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("update: %v", err)
	}
	if err := repo.Delete(ctx, b.ID()); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Save(ctx, b); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, b); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate save: %v", err)
	}
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()
	var ids []models.ID[models.Project]
	for range 3 {
		p := models.MakeDefaultProject().Value()
		ids = append(ids, p.ID())
		if err := repo.Save(ctx, p); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	tests := []struct {
		name  string
		opts  repositories.QueryOpts
		first int
		n     int
	}{
		{"all", repositories.QueryOpts{}, 0, 3},
		{"page", repositories.QueryOpts{Limit: 1, Offset: 1}, 1, 1},
		{"past the end", repositories.QueryOpts{Offset: 10}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.List(ctx, tt.opts)
			if err != nil || total != 3 || len(items) != tt.n {
				t.Fatalf("got %d items, total %d, err %v", len(items), total, err)
			}
			if tt.n > 0 && items[0].ID() != ids[tt.first] {
				t.Fatal("unexpected order")
			}
		})
	}

	if err := repo.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, total, _ := repo.List(ctx, repositories.QueryOpts{}); total != 2 {
		t.Fatalf("expected 2 after delete, got %d", total)
	}
}

func TestUserRepository_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	if err := repo.Save(ctx, models.MakeDefaultUser().Value()); err != nil {
		t.Fatalf("save: %v", err)
	}
	other := models.NewUserBuilder().WithFirstName("Ada").WithLastName("King").WithEmail("ADA@example.com").Build().Value()
	if err := repo.Save(ctx, other); !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "Ada@Example.com"); err != nil {
		t.Fatalf("get by email: %v", err)
	}
}
