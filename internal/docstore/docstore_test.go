package docstore

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/starford/laguz/internal/sharing"
	"github.com/starford/laguz/internal/storage"
)

func testRepo(t *testing.T) (*Repository, storage.Provider) {
	t.Helper()
	st, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(st, sharing.NewRegistry(st), logger), st
}

func ctx() context.Context { return context.Background() }

func strPtr(s string) *string { return &s }
