package docstore

import (
	"errors"
	"testing"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/models"
)

func TestCreateAndGetChecklist(t *testing.T) {
	r, st := testRepo(t)

	c, err := r.CreateChecklist(ctx(), "alice", "Weekly Groceries", models.TypeSimple, "")
	if err != nil {
		t.Fatalf("CreateChecklist: %v", err)
	}
	if c.ID != "weekly-groceries" {
		t.Errorf("id = %q", c.ID)
	}
	if !st.Exists("checklists/alice/weekly-groceries.md") {
		t.Error("file not written")
	}

	got, err := r.GetChecklist(ctx(), "alice", "", "weekly-groceries")
	if err != nil {
		t.Fatalf("GetChecklist: %v", err)
	}
	if got.Title != "Weekly Groceries" || got.Type != models.TypeSimple || got.Owner != "alice" {
		t.Errorf("got %+v", got)
	}
}

func TestCreateChecklist_CollisionSuffix(t *testing.T) {
	r, _ := testRepo(t)
	ids := []string{}
	for i := 0; i < 3; i++ {
		c, err := r.CreateChecklist(ctx(), "alice", "Notes", "", "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, c.ID)
	}
	want := []string{"notes", "notes-1", "notes-2"}
	for i, w := range want {
		if ids[i] != w {
			t.Errorf("ids = %v, want %v", ids, want)
			break
		}
	}
}

func TestGetChecklist_Missing(t *testing.T) {
	r, _ := testRepo(t)
	if _, err := r.GetChecklist(ctx(), "alice", "", "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateChecklist_TitleRename(t *testing.T) {
	r, st := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Draft", "", "")

	c, renamed, err := r.UpdateChecklist(ctx(), "alice", "", "draft", ChecklistUpdate{Title: strPtr("Final Plan")})
	if err != nil {
		t.Fatalf("UpdateChecklist: %v", err)
	}
	if renamed == nil || renamed.OldID != "draft" || renamed.NewID != "final-plan" {
		t.Fatalf("renamed = %+v", renamed)
	}
	if c.ID != "final-plan" || c.Title != "Final Plan" {
		t.Errorf("checklist = %+v", c)
	}
	if st.Exists("checklists/alice/draft.md") {
		t.Error("old file survived the rename")
	}
	if !st.Exists("checklists/alice/final-plan.md") {
		t.Error("new file missing")
	}
}

func TestUpdateChecklist_NoRenameForSameTitle(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Stable", "", "")

	items := []models.Item{{Text: "x", Order: 0}}
	_, renamed, err := r.UpdateChecklist(ctx(), "alice", "", "stable", ChecklistUpdate{Items: &items})
	if err != nil {
		t.Fatal(err)
	}
	if renamed != nil {
		t.Errorf("renamed = %+v, want nil", renamed)
	}
}

func TestUpdateChecklist_ItemsNormalized(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "List", "", "")

	items := []models.Item{
		{ID: "b", Text: "second", Order: 10},
		{Text: "first", Order: 2},
	}
	c, _, err := r.UpdateChecklist(ctx(), "alice", "", "list", ChecklistUpdate{Items: &items})
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 2 {
		t.Fatalf("items = %d", len(c.Items))
	}
	if c.Items[0].Text != "first" || c.Items[1].Text != "second" {
		t.Errorf("order wrong: %+v", c.Items)
	}
	if c.Items[0].Order != 0 || c.Items[1].Order != 1 {
		t.Errorf("orders not dense: %+v", c.Items)
	}
	if c.Items[0].ID == "" {
		t.Error("missing id not generated")
	}
}

func TestUpdateChecklist_CategoryMove(t *testing.T) {
	r, st := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Movable", "", "")

	c, renamed, err := r.UpdateChecklist(ctx(), "alice", "", "movable", ChecklistUpdate{Category: strPtr("Home")})
	if err != nil {
		t.Fatal(err)
	}
	if renamed != nil {
		t.Errorf("pure move should keep the id, renamed = %+v", renamed)
	}
	if c.Category != "Home" {
		t.Errorf("category = %q", c.Category)
	}
	if st.Exists("checklists/alice/movable.md") || !st.Exists("checklists/alice/Home/movable.md") {
		t.Error("file not relocated")
	}
}

func TestUpdateChecklist_MoveCollision(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Dup", "", "")
	_, _ = r.CreateChecklist(ctx(), "alice", "Dup", "", "Home")

	c, renamed, err := r.UpdateChecklist(ctx(), "alice", "", "dup", ChecklistUpdate{Category: strPtr("Home")})
	if err != nil {
		t.Fatal(err)
	}
	if renamed == nil || c.ID != "dup-1" {
		t.Errorf("collision not suffixed: id=%q renamed=%+v", c.ID, renamed)
	}
}

func TestDeleteChecklist(t *testing.T) {
	r, st := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Doomed", "", "")

	if err := r.DeleteChecklist(ctx(), "alice", "", "", "doomed", false); err != nil {
		t.Fatalf("DeleteChecklist: %v", err)
	}
	if st.Exists("checklists/alice/doomed.md") {
		t.Error("file survived delete")
	}
	if err := r.DeleteChecklist(ctx(), "alice", "", "", "doomed", false); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestDeleteChecklist_Authorization(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Protected", "", "")

	if err := r.DeleteChecklist(ctx(), "bob", "alice", "", "protected", false); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
	if err := r.DeleteChecklist(ctx(), "root", "alice", "", "protected", true); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}

func TestListChecklists_OrderAndSharedInjection(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Alpha", "", "")
	_, _ = r.CreateChecklist(ctx(), "alice", "Beta", "", "")
	if err := r.SetItemOrder(ctx(), KindChecklists, "alice", "", []string{"beta", "alpha"}); err != nil {
		t.Fatal(err)
	}
	_, _ = r.CreateChecklist(ctx(), "bob", "From Bob", "", "")
	if _, err := r.Share(ctx(), models.ItemTypeChecklist, "bob", "", "from-bob", []string{"alice"}, false); err != nil {
		t.Fatal(err)
	}

	got, err := r.ListChecklists(ctx(), "alice")
	if err != nil {
		t.Fatalf("ListChecklists: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d: %+v", len(got), got)
	}
	if got[0].ID != "beta" || got[1].ID != "alpha" {
		t.Errorf("own order = %s, %s; want beta, alpha", got[0].ID, got[1].ID)
	}
	last := got[2]
	if last.ID != "from-bob" || !last.IsShared || last.Owner != "bob" {
		t.Errorf("shared tail = %+v", last)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Mine", "", "")

	if _, err := r.GetChecklist(ctx(), "bob", "", "mine"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("bob read alice's file: %v", err)
	}
	got, _ := r.ListChecklists(ctx(), "bob")
	if len(got) != 0 {
		t.Errorf("bob sees %d checklists", len(got))
	}
}
