package github

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "repos.db"), time.Hour)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	if _, ok, err := cache.Get(ctx, "alice"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v, want miss", ok, err)
	}

	repos := []Repository{
		{Title: "alpha", URL: "https://example.com/alpha", Description: "first", Readme: "# hi"},
		{Title: "beta"},
	}
	if err := cache.Put(ctx, "alice", repos); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := cache.Get(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("get after put: ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0] != repos[0] || got[1] != repos[1] {
		t.Errorf("cached listing mismatch: %+v", got)
	}

	// Other users stay misses.
	if _, ok, _ := cache.Get(ctx, "bob"); ok {
		t.Error("unexpected hit for a different user")
	}
}

func TestCacheReplacesPreviousEntry(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "repos.db"), time.Hour)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	if err := cache.Put(ctx, "alice", []Repository{{Title: "old"}}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := cache.Put(ctx, "alice", []Repository{{Title: "new"}}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, ok, err := cache.Get(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Title != "new" {
		t.Errorf("expected replaced entry, got %+v", got)
	}
}

func TestCacheExpires(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "repos.db"), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	if err := cache.Put(ctx, "alice", []Repository{{Title: "alpha"}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	time.Sleep(25 * time.Millisecond)
	if _, ok, err := cache.Get(ctx, "alice"); err != nil || ok {
		t.Errorf("stale entry should miss: ok=%v err=%v", ok, err)
	}
}
