package memory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/tailored-agentic-units/hostpilot/memory"
)

func TestFileStore_SaveAndLoad(t *testing.T) {
	store := memory.NewFileStore(t.TempDir())
	ctx := context.Background()

	entry := memory.Entry{Key: "notes/router", Value: []byte("guest wifi on radio1")}
	if err := store.Save(ctx, entry); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := store.Load(ctx, "notes/router")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if string(entries[0].Value) != "guest wifi on radio1" {
		t.Errorf("got value %q, want the saved note", entries[0].Value)
	}
}

func TestFileStore_List(t *testing.T) {
	store := memory.NewFileStore(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"notes/a", "notes/b", "hosts/router/usb"} {
		if err := store.Save(ctx, memory.Entry{Key: key, Value: []byte("v")}); err != nil {
			t.Fatalf("save %s failed: %v", key, err)
		}
	}

	keys, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("got %d keys, want 3", len(keys))
	}
	for _, want := range []string{"notes/a", "notes/b", "hosts/router/usb"} {
		if !slices.Contains(keys, want) {
			t.Errorf("missing key %q in %v", want, keys)
		}
	}
}

func TestFileStore_List_MissingRoot(t *testing.T) {
	store := memory.NewFileStore(filepath.Join(t.TempDir(), "nope"))

	keys, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list on missing root should not fail: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("got %d keys, want 0", len(keys))
	}
}

func TestFileStore_List_SkipsHiddenFiles(t *testing.T) {
	root := t.TempDir()
	store := memory.NewFileStore(root)

	if err := os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(context.Background(), memory.Entry{Key: "visible", Value: []byte("v")}); err != nil {
		t.Fatal(err)
	}

	keys, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "visible" {
		t.Errorf("got keys %v, want only [visible]", keys)
	}
}

func TestFileStore_Load_MissingKey(t *testing.T) {
	store := memory.NewFileStore(t.TempDir())

	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, memory.ErrKeyNotFound) {
		t.Errorf("got %v, want ErrKeyNotFound", err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	store := memory.NewFileStore(t.TempDir())
	ctx := context.Background()

	if err := store.Save(ctx, memory.Entry{Key: "notes/tmp", Value: []byte("v")}); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "notes/tmp"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	keys, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Errorf("got keys %v after delete, want none", keys)
	}
}

func TestFileStore_Delete_MissingKeyIgnored(t *testing.T) {
	store := memory.NewFileStore(t.TempDir())

	if err := store.Delete(context.Background(), "nope"); err != nil {
		t.Errorf("deleting a missing key should be a no-op, got %v", err)
	}
}

func TestNewStore_DisabledWithoutPath(t *testing.T) {
	cfg := memory.DefaultConfig()
	store, err := memory.NewStore(&cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store != nil {
		t.Error("empty path should disable the store")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := memory.DefaultConfig()
	cfg.Merge(&memory.Config{Path: "/var/lib/hostpilot/notes"})

	if cfg.Path != "/var/lib/hostpilot/notes" {
		t.Errorf("got path %q, want the merged path", cfg.Path)
	}
}
