package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not-a-valid-url"); err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "redis://localhost:19999"); err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		opts     []Option
		wantPool int
		wantName string
	}{
		{"defaults", "redis://localhost:6379", nil, 10, ""},
		{"url parameter wins", "redis://localhost:6379?pool_size=25", nil, 25, ""},
		{"option wins", "redis://localhost:6379?pool_size=25", []Option{WithPoolSize(4), WithClientName("worktrack-worker")}, 4, "worktrack-worker"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := redis.ParseURL(tt.url)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			applyDefaults(o)
			for _, opt := range tt.opts {
				opt(o)
			}
			if o.PoolSize != tt.wantPool || o.ClientName != tt.wantName {
				t.Errorf("got pool %d name %q", o.PoolSize, o.ClientName)
			}
			if o.ReadTimeout != 3*time.Second || o.MinIdleConns != 2 {
				t.Errorf("defaults not applied: read %v idle %d", o.ReadTimeout, o.MinIdleConns)
			}
		})
	}
}

func TestWorkItemCodec(t *testing.T) {
	created := time.Date(2025, time.March, 3, 10, 0, 0, 123, time.UTC)
	in := &CachedWorkItem{
		ID:        uuid.New(),
		Title:     "Fix login",
		Status:    "todo",
		Priority:  "high",
		Type:      "bug",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Minute),
	}

	enc := encodeWorkItem(in)
	vals := make(map[string]string, len(enc)/2)
	for i := 0; i < len(enc); i += 2 {
		vals[enc[i].(string)] = enc[i+1].(string)
	}

	out, err := decodeWorkItem(vals)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != in.ID || out.Title != in.Title || out.Priority != in.Priority || out.AssigneeID != uuid.Nil ||
		!out.CreatedAt.Equal(in.CreatedAt) || !out.UpdatedAt.Equal(in.UpdatedAt) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}

	t.Run("corrupt id", func(t *testing.T) {
		vals["id"] = "nope"
		if _, err := decodeWorkItem(vals); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		name     string
		deleted  bool
		stored   string
		incoming int64
		want     bool
	}{
		{"empty entry", false, "", 100, true},
		{"newer replaces", false, "100", 101, true},
		{"older is ignored", false, "101", 100, false},
		{"same version is ignored", false, "100", 100, false},
		{"tombstone wins over any version", true, "", 1 << 62, false},
		{"unreadable version is replaced", false, "garbage", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := accepts(tt.deleted, tt.stored, tt.incoming); got != tt.want {
				t.Errorf("accepts(%v, %q, %d) = %v, want %v", tt.deleted, tt.stored, tt.incoming, got, tt.want)
			}
		})
	}
}

func TestCachedWorkItemVersion(t *testing.T) {
	base := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	a := &CachedWorkItem{UpdatedAt: base.Add(1500 * time.Nanosecond)}
	b := &CachedWorkItem{UpdatedAt: base.Add(1 * time.Microsecond)}
	if a.Version() != b.Version() {
		t.Errorf("sub-microsecond difference changed the version: %d vs %d", a.Version(), b.Version())
	}
	if later := (&CachedWorkItem{UpdatedAt: base.Add(time.Millisecond)}); later.Version() <= a.Version() {
		t.Error("later update must have a higher version")
	}
}

func TestWorkItemKey(t *testing.T) {
	id := uuid.MustParse("6f1c1f57-8a55-4a8e-9c0c-2b9d3d0b5f10")
	if got := workItemKey(id); got != "work_item:6f1c1f57-8a55-4a8e-9c0c-2b9d3d0b5f10" {
		t.Fatalf("unexpected key %q", got)
	}
}

// Integration tests, skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	ctx := context.Background()

	rc, err := NewRedisClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	t.Run("Ping", func(t *testing.T) {
		if err := rc.Ping(ctx); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("WorkItemCache", func(t *testing.T) {
		c := NewWorkItemCache(rc)
		item := &CachedWorkItem{
			ID:        uuid.New(),
			Title:     "Cache me",
			Status:    "todo",
			Priority:  "low",
			Type:      "task",
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		if err := c.Set(ctx, item); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := c.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Title != item.Title {
			t.Fatalf("title %q", got.Title)
		}
		ttl := rc.Client().TTL(ctx, workItemKey(item.ID)).Val()
		if ttl <= 0 || ttl > WorkItemCacheTTL {
			t.Fatalf("unexpected ttl %v", ttl)
		}
		if err := c.Delete(ctx, item.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := c.Get(ctx, item.ID); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil, got %v", err)
		}
	})

	t.Run("OutOfOrderWrites", func(t *testing.T) {
		c := NewWorkItemCache(rc)
		now := time.Now().UTC()
		id := uuid.New()
		newer := &CachedWorkItem{ID: id, Title: "new title", Status: "done", Priority: "low", Type: "task",
			CreatedAt: now, UpdatedAt: now.Add(time.Second)}
		older := *newer
		older.Title, older.UpdatedAt = "old title", now

		for _, it := range []*CachedWorkItem{newer, &older} {
			if err := c.Set(ctx, it); err != nil {
				t.Fatalf("set: %v", err)
			}
		}
		got, err := c.Get(ctx, id)
		if err != nil || got.Title != "new title" {
			t.Fatalf("stale write won: %+v, %v", got, err)
		}

		if err := c.Delete(ctx, id); err != nil {
			t.Fatalf("delete: %v", err)
		}
		late := *newer
		late.UpdatedAt = now.Add(time.Minute)
		if err := c.Set(ctx, &late); err != nil {
			t.Fatalf("late set: %v", err)
		}
		if _, err := c.Get(ctx, id); !errors.Is(err, redis.Nil) {
			t.Fatalf("deleted work item came back: %v", err)
		}
	})

	t.Run("EvictAllowsRewarm", func(t *testing.T) {
		c := NewWorkItemCache(rc)
		it := &CachedWorkItem{ID: uuid.New(), Title: "warm", CreatedAt: time.Now(), UpdatedAt: time.Now()}
		if err := c.Set(ctx, it); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := c.Evict(ctx, it.ID); err != nil {
			t.Fatalf("evict: %v", err)
		}
		if err := c.Set(ctx, it); err != nil {
			t.Fatalf("rewarm: %v", err)
		}
		if _, err := c.Get(ctx, it.ID); err != nil {
			t.Fatalf("expected entry after rewarm: %v", err)
		}
	})
}
