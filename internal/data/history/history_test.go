package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStore_SaveAndLoadRuns(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)
	first, err := store.SaveRun(Run{ProjectID: "shop", Timestamp: base, ModuleCount: 3, NodeCount: 4, EdgeCount: 2})
	if err != nil {
		t.Fatalf("save first run: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated run id")
	}
	if _, err := store.SaveRun(Run{ProjectID: "shop", Timestamp: base.Add(time.Hour), ModuleCount: 5, NodeCount: 7, EdgeCount: 6}); err != nil {
		t.Fatalf("save second run: %v", err)
	}
	if _, err := store.SaveRun(Run{ProjectID: "other", Timestamp: base}); err != nil {
		t.Fatalf("save other project run: %v", err)
	}

	runs, err := store.LoadRuns("shop", 0)
	if err != nil {
		t.Fatalf("load runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].Timestamp.Equal(base) || runs[1].ModuleCount != 5 {
		t.Fatalf("unexpected run order: %+v", runs)
	}
	if runs[0].ID != first.ID {
		t.Fatalf("expected id %q, got %q", first.ID, runs[0].ID)
	}

	latest, ok, err := store.Latest("shop")
	if err != nil || !ok {
		t.Fatalf("latest: ok=%v err=%v", ok, err)
	}
	if latest.EdgeCount != 6 {
		t.Fatalf("expected latest edge count 6, got %d", latest.EdgeCount)
	}

	limited, err := store.LoadRuns("shop", 1)
	if err != nil {
		t.Fatalf("load limited runs: %v", err)
	}
	if len(limited) != 1 || limited[0].ModuleCount != 5 {
		t.Fatalf("expected only the newest run, got %+v", limited)
	}
}

func TestStore_LatestEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Latest("nobody")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if ok {
		t.Fatal("expected no run for unknown project")
	}
}

func TestStore_SaveRunRequiresProject(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRun(Run{}); err == nil {
		t.Fatal("expected error for empty project id")
	}
}

func TestOpen_RejectsBadPaths(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
	dir := t.TempDir()
	if _, err := Open(dir); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestOpen_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.SaveRun(Run{ProjectID: "shop"}); err != nil {
		t.Fatalf("save run: %v", err)
	}
	_ = store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.LoadRuns("shop", 0)
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected 1 run after reopen, got %d (err=%v)", len(runs), err)
	}
	if reopened.Path() != path {
		t.Fatalf("expected path %q, got %q", path, reopened.Path())
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	if err := os.WriteFile(path, []byte(strings.Repeat("not a sqlite file ", 512)), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	_, err := Open(path)
	if err == nil {
		t.Fatal("expected error opening corrupt database")
	}
	if !IsCorruptError(err) {
		t.Fatalf("expected corrupt error, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	prev := Run{PackageCount: 2, ModuleCount: 3, FileCount: 10, NodeCount: 4, EdgeCount: 5}
	cur := Run{PackageCount: 3, ModuleCount: 3, FileCount: 8, NodeCount: 6, EdgeCount: 5, MissingPackages: 1}
	d := Compare(prev, cur)
	if d.Packages != 1 || d.Modules != 0 || d.Files != -2 || d.Nodes != 2 || d.Edges != 0 || d.MissingPackages != 1 {
		t.Fatalf("unexpected delta: %+v", d)
	}
}
