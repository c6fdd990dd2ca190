package skills

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jobboard/internal/domain/policy"

	"github.com/google/uuid"
)

func TestHTTPDirectory_CatalogIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/skills" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]Skill{
			{ID: "go", ParentID: ""},
			{ID: "sql", ParentID: "databases"},
		})
	}))
	defer srv.Close()

	d := NewHTTPDirectory(srv.URL, time.Second, nil)
	ids, err := d.CatalogIDs(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ids) != 2 || !ids.Contains("go") || !ids.Contains("sql") {
		t.Fatalf("unexpected catalog: %v", ids)
	}
}

func TestHTTPDirectory_CompletedSkills_Array(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/skills/"+userID.String() {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]string{"go", "sql"})
	}))
	defer srv.Close()

	d := NewHTTPDirectory(srv.URL, time.Second, nil)
	got, err := d.CompletedSkills(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || !got.Contains("go") {
		t.Fatalf("unexpected completed set: %v", got)
	}
}

func TestHTTPDirectory_CompletedSkills_LeveledMap(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"go": 10, "sql": 7})
	}))
	defer srv.Close()

	d := NewHTTPDirectory(srv.URL, time.Second, nil)
	got, err := d.CompletedSkills(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || !got.Contains("sql") {
		t.Fatalf("unexpected completed set: %v", got)
	}
}

func TestHTTPDirectory_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewHTTPDirectory(srv.URL, time.Second, nil)
	if _, err := d.CatalogIDs(context.Background()); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	c.ttls[key] = ttl
	return nil
}

type countingDirectory struct {
	calls     int
	completed policy.SkillSet
}

func (d *countingDirectory) CatalogIDs(context.Context) (policy.SkillSet, error) {
	d.calls++
	return policy.NewSkillSet([]string{"go"}), nil
}

func (d *countingDirectory) CompletedSkills(context.Context, uuid.UUID) (policy.SkillSet, error) {
	d.calls++
	return d.completed, nil
}

func TestCachedDirectory_MemoizesPerKey(t *testing.T) {
	inner := &countingDirectory{completed: policy.NewSkillSet([]string{"go", "sql"})}
	cache := newFakeCache()
	d := NewCachedDirectory(inner, cache, 10*time.Minute)

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		got, err := d.CompletedSkills(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("unexpected set: %v", got)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("want 1 upstream call, got %d", inner.calls)
	}

	if ttl := cache.ttls[completedCacheKeyPrefix+userID.String()]; ttl != 10*time.Minute {
		t.Fatalf("want TTL forwarded to cache, got %v", ttl)
	}

	// a different user misses the cache
	if _, err := d.CompletedSkills(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("want 2 upstream calls, got %d", inner.calls)
	}
}

func TestCachedDirectory_NilCachePassesThrough(t *testing.T) {
	inner := &countingDirectory{}
	d := NewCachedDirectory(inner, nil, time.Minute)

	if _, err := d.CatalogIDs(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := d.CatalogIDs(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("want 2 upstream calls without cache, got %d", inner.calls)
	}
}
