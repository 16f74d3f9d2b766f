// Package backup snapshots the journal database file.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Snapshot copies the database at dbPath into dir, returning the
// snapshot path. The copy is written to a temporary file and renamed
// into place so an interrupted backup never looks complete. Snapshot
// names embed the date and a short unique suffix:
// jrnl-20060102-xxxxxxxx.db.
func Snapshot(dbPath, dir string) (string, error) {
	src, err := os.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("opening database %s: %w", dbPath, err)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("jrnl-%s-%s.db",
		time.Now().Format("20060102"),
		uuid.New().String()[:8],
	)
	dest := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, ".jrnl-backup-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary backup file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("copying database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing backup file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("moving backup into place: %w", err)
	}
	return dest, nil
}

// Prune removes the oldest snapshots in dir beyond keep. keep <= 0
// retains everything.
func Prune(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("listing backup directory %s: %w", dir, err)
	}

	var snaps []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "jrnl-") && strings.HasSuffix(e.Name(), ".db") {
			snaps = append(snaps, e.Name())
		}
	}
	if len(snaps) <= keep {
		return nil
	}

	// Names sort chronologically by their embedded date.
	sort.Strings(snaps)
	for _, name := range snaps[:len(snaps)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("pruning backup %s: %w", name, err)
		}
	}
	return nil
}
