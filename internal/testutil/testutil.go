// Package testutil provides shared test helpers for setting up data
// directories and index databases.
package testutil

import (
	"os"
	"testing"

	"github.com/nvoss/macrolog/internal/index"
	"github.com/nvoss/macrolog/internal/storage"
)

// TestDB creates a temporary SQLite index that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "macrolog-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestData creates a temporary data directory with a storage provider.
func TestData(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, fs
}
