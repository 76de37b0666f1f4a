package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, "tenant-a", "upsc_questions"); err != ErrNotFound {
		t.Fatalf("Get before Set: want ErrNotFound, got %v", err)
	}

	payload := []byte(`[{"id":"q1"}]`)
	if err := store.Set(ctx, "tenant-a", "upsc_questions", payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, "tenant-a", "upsc_questions")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}
}

func TestFileStoreTenantIsolation(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, "tenant-a", "upsc_questions", []byte(`["a"]`)); err != nil {
		t.Fatalf("Set tenant-a: %v", err)
	}
	if err := store.Set(ctx, "tenant-b", "upsc_questions", []byte(`["b"]`)); err != nil {
		t.Fatalf("Set tenant-b: %v", err)
	}

	got, err := store.Get(ctx, "tenant-a", "upsc_questions")
	if err != nil {
		t.Fatalf("Get tenant-a: %v", err)
	}
	if string(got) != `["a"]` {
		t.Errorf("tenant-a sees %q", got)
	}

	if err := store.Remove(ctx, "tenant-a", "upsc_questions"); err != nil {
		t.Fatalf("Remove tenant-a: %v", err)
	}
	if _, err := store.Get(ctx, "tenant-b", "upsc_questions"); err != nil {
		t.Errorf("tenant-b record affected by tenant-a remove: %v", err)
	}
}

func TestFileStoreRejectsPathEscapes(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	cases := []struct {
		name   string
		tenant string
		key    string
	}{
		{"empty tenant", "", "k"},
		{"parent tenant", "..", "k"},
		{"separator in tenant", "a/b", "k"},
		{"separator in key", "tenant", "a/../b"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Set(ctx, tt.tenant, tt.key, []byte("x")); err == nil {
				t.Error("Set accepted invalid component")
			}
		})
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("root not empty after rejected writes: %v", entries)
	}
}

func TestFileStoreRemoveMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Remove(context.Background(), "tenant-a", "never_written"); err != nil {
		t.Errorf("Remove of missing key: %v", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	for _, v := range []string{`["one"]`, `["two"]`} {
		if err := store.Set(ctx, "t", "upsc_questions", []byte(v)); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	got, err := store.Get(ctx, "t", "upsc_questions")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `["two"]` {
		t.Errorf("Get = %q, want overwrite to win", got)
	}

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Join(root, "t"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("tenant dir has %d entries, want 1", len(entries))
	}
}

func TestMemStoreRoundTrip(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "t", "k"); err != ErrNotFound {
		t.Fatalf("Get before Set: want ErrNotFound, got %v", err)
	}
	if err := store.Set(ctx, "t", "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, "t", "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	// Mutating the returned slice must not affect the stored copy.
	got[0] = 'x'
	again, _ := store.Get(ctx, "t", "k")
	if string(again) != "v" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}

	if err := store.Remove(ctx, "t", "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Get(ctx, "t", "k"); err != ErrNotFound {
		t.Errorf("Get after Remove: want ErrNotFound, got %v", err)
	}
}
