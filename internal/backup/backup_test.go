package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	writeFile(t, db, "database bytes")

	backups := filepath.Join(dir, "backups")
	dest, err := Snapshot(db, backups)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	name := filepath.Base(dest)
	if !strings.HasPrefix(name, "jrnl-") || !strings.HasSuffix(name, ".db") {
		t.Errorf("snapshot name: got %q", name)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(data) != "database bytes" {
		t.Errorf("snapshot content: got %q", data)
	}

	// No temporary leftovers.
	entries, _ := os.ReadDir(backups)
	if len(entries) != 1 {
		t.Errorf("backup dir entries: got %d, want 1", len(entries))
	}
}

func TestSnapshotMissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := Snapshot(filepath.Join(dir, "missing.db"), dir); err == nil {
		t.Fatal("Snapshot of a missing database: expected error")
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()

	names := []string{
		"jrnl-20250101-aaaaaaaa.db",
		"jrnl-20250102-bbbbbbbb.db",
		"jrnl-20250103-cccccccc.db",
		"not-a-backup.txt",
	}
	for _, n := range names {
		writeFile(t, filepath.Join(dir, n), "x")
	}

	if err := Prune(dir, 2); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, names[0])); !os.IsNotExist(err) {
		t.Error("oldest snapshot survived the prune")
	}
	for _, n := range names[1:] {
		if _, err := os.Stat(filepath.Join(dir, n)); err != nil {
			t.Errorf("%s removed unexpectedly: %v", n, err)
		}
	}
}

func TestPruneKeepEverything(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "jrnl-20250101-aaaaaaaa.db"), "x")

	if err := Prune(dir, 0); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "jrnl-20250101-aaaaaaaa.db")); err != nil {
		t.Errorf("snapshot removed with keep=0: %v", err)
	}
}

func TestPruneMissingDir(t *testing.T) {
	if err := Prune(filepath.Join(t.TempDir(), "nope"), 5); err != nil {
		t.Fatalf("Prune on a missing directory: %v", err)
	}
}
