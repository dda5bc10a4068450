package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

func TestExportImport(t *testing.T) {
	h := newHarness()
	src := newTaskStore(t, storage.NewMemoryKV(), h)
	due := h.clock.now.Add(48 * time.Hour)
	mustAdd(t, src, model.Draft{Title: "a", DueDate: due})
	mustAdd(t, src, model.Draft{Title: "b", DueDate: due})

	path := filepath.Join(t.TempDir(), "export.json")
	who := &model.Identity{ID: "u1", Name: "Sam", Email: "sam@example.com", Provider: model.ProviderGitHub}
	snap, err := src.Export(path, who)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if snap.Version != SnapshotVersion || len(snap.Tasks) != 2 || snap.Identity.Name != "Sam" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	dh := newHarness()
	dst := newTaskStore(t, storage.NewMemoryKV(), dh)
	// Same id generator, so "local" takes task-001 and collides with "a".
	mustAdd(t, dst, model.Draft{Title: "local", DueDate: due})

	res, err := dst.Import(context.Background(), path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Added != 1 || res.Skipped != 1 {
		t.Fatalf("unexpected import result: %+v", res)
	}
	if got := titles(dst.Tasks()); !equalStrings(got, []string{"local", "b"}) {
		t.Fatalf("unexpected tasks after import: %v", got)
	}
	if n, ok := dh.feed.Latest(); !ok || n.Title != "Tasks imported" {
		t.Fatalf("expected import notification, got %+v", n)
	}
}

func TestImportRejectsNewerVersion(t *testing.T) {
	h := newHarness()
	s := newTaskStore(t, storage.NewMemoryKV(), h)
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "tasks": []}`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Import(context.Background(), path); err == nil {
		t.Fatal("expected version error")
	}
	if s.Len() != 0 {
		t.Fatalf("expected no tasks, got %d", s.Len())
	}
}

func TestImportSkipsInvalidTasks(t *testing.T) {
	h := newHarness()
	s := newTaskStore(t, storage.NewMemoryKV(), h)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"version": 1, "tasks": [{"id": "x", "title": ""}]}`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	res, err := s.Import(context.Background(), path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Added != 0 || res.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
