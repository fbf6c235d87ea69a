package docstore

import (
	"errors"
	"testing"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/models"
)

func TestCreateAndGetNote(t *testing.T) {
	r, st := testRepo(t)

	n, err := r.CreateNote(ctx(), "alice", "Meeting Notes", "agenda\n\ndecisions", "work")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if n.ID != "meeting-notes" {
		t.Errorf("id = %q", n.ID)
	}
	if !st.Exists("notes/alice/work/meeting-notes.md") {
		t.Error("file not written")
	}

	got, err := r.GetNote(ctx(), "alice", "work", "meeting-notes")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Title != "Meeting Notes" || got.Content != "agenda\n\ndecisions" {
		t.Errorf("note = %+v", got)
	}
}

func TestGetNote_Missing(t *testing.T) {
	r, _ := testRepo(t)
	if _, err := r.GetNote(ctx(), "alice", "", "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateNote_ContentOnly(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateNote(ctx(), "alice", "Stable", "v1", "")

	n, renamed, err := r.UpdateNote(ctx(), "alice", "", "stable", NoteUpdate{Content: strPtr("v2")})
	if err != nil {
		t.Fatal(err)
	}
	if renamed != nil {
		t.Errorf("renamed = %+v, want nil", renamed)
	}
	if n.Content != "v2" || n.Title != "Stable" {
		t.Errorf("note = %+v", n)
	}
}

func TestUpdateNote_TitleRename(t *testing.T) {
	r, st := testRepo(t)
	_, _ = r.CreateNote(ctx(), "alice", "Old Name", "body", "")

	n, renamed, err := r.UpdateNote(ctx(), "alice", "", "old-name", NoteUpdate{Title: strPtr("New Name")})
	if err != nil {
		t.Fatal(err)
	}
	if renamed == nil || renamed.OldID != "old-name" || renamed.NewID != "new-name" {
		t.Fatalf("renamed = %+v", renamed)
	}
	if n.Content != "body" {
		t.Errorf("content lost across rename: %q", n.Content)
	}
	if st.Exists("notes/alice/old-name.md") || !st.Exists("notes/alice/new-name.md") {
		t.Error("files not swapped")
	}
}

func TestUpdateNote_CategoryMove(t *testing.T) {
	r, st := testRepo(t)
	_, _ = r.CreateNote(ctx(), "alice", "Roamer", "body", "inbox")

	n, renamed, err := r.UpdateNote(ctx(), "alice", "inbox", "roamer", NoteUpdate{Category: strPtr("archive")})
	if err != nil {
		t.Fatal(err)
	}
	if renamed != nil {
		t.Errorf("pure move should keep the id: %+v", renamed)
	}
	if n.Category != "archive" || !st.Exists("notes/alice/archive/roamer.md") {
		t.Errorf("move failed: %+v", n)
	}
}

func TestDeleteNote(t *testing.T) {
	r, st := testRepo(t)
	_, _ = r.CreateNote(ctx(), "alice", "Doomed", "x", "")

	if err := r.DeleteNote(ctx(), "bob", "alice", "", "doomed", false); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("foreign delete err = %v", err)
	}
	if err := r.DeleteNote(ctx(), "alice", "", "", "doomed", false); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if st.Exists("notes/alice/doomed.md") {
		t.Error("file survived delete")
	}
}

func TestListNotes_IncludesShared(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateNote(ctx(), "alice", "Own", "x", "")
	_, _ = r.CreateNote(ctx(), "bob", "Lent", "y", "")
	if _, err := r.Share(ctx(), models.ItemTypeNote, "bob", "", "lent", []string{"alice"}, false); err != nil {
		t.Fatal(err)
	}

	got, err := r.ListNotes(ctx(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d: %+v", len(got), got)
	}
	if got[1].ID != "lent" || !got[1].IsShared {
		t.Errorf("shared tail = %+v", got[1])
	}
}
