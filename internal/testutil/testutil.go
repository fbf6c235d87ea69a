// Package testutil provides shared test helpers for setting up data roots
// and databases.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/starford/laguz/internal/docstore"
	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/sharing"
	"github.com/starford/laguz/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "laguz-test-*.db")
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

// TestData creates a temporary data directory with a storage.Provider.
func TestData(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dataDir := t.TempDir()
	store, err := storage.NewFS(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	return dataDir, store
}

// TestRepo creates a document repository on a temporary data directory.
func TestRepo(t *testing.T) (*docstore.Repository, storage.Provider) {
	t.Helper()
	_, store := TestData(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return docstore.New(store, sharing.NewRegistry(store), logger), store
}
