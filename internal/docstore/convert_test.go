package docstore

import (
	"strings"
	"testing"

	"github.com/starford/laguz/internal/models"
)

func TestConvertChecklist_SimpleToTask(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Chores", "", "")
	items := []models.Item{
		{Text: "done thing", Completed: true, Order: 0},
		{Text: "open thing", Order: 1},
	}
	_, _, _ = r.UpdateChecklist(ctx(), "alice", "", "chores", ChecklistUpdate{Items: &items})

	c, err := r.ConvertChecklist(ctx(), "alice", "", "chores", models.TypeTask)
	if err != nil {
		t.Fatalf("ConvertChecklist: %v", err)
	}
	if c.Type != models.TypeTask {
		t.Errorf("type = %q", c.Type)
	}
	if c.Items[0].Status != models.StatusCompleted || c.Items[1].Status != models.StatusTodo {
		t.Errorf("statuses = %q, %q", c.Items[0].Status, c.Items[1].Status)
	}
	if c.Items[0].TimeEntries == nil {
		t.Error("time entries not initialized")
	}
}

func TestConvertChecklist_TaskToSimpleIsLossy(t *testing.T) {
	r, st := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Sprint", models.TypeTask, "")
	items := []models.Item{
		{Text: "task", Completed: true, Status: models.StatusCompleted, EstimatedTime: 30, TargetDate: "2026-09-01", Order: 0},
	}
	_, _, _ = r.UpdateChecklist(ctx(), "alice", "", "sprint", ChecklistUpdate{Items: &items})

	c, err := r.ConvertChecklist(ctx(), "alice", "", "sprint", models.TypeSimple)
	if err != nil {
		t.Fatal(err)
	}
	it := c.Items[0]
	if it.Status != "" || it.EstimatedTime != 0 || it.TargetDate != "" || it.TimeEntries != nil {
		t.Errorf("task metadata survived conversion: %+v", it)
	}
	if !it.Completed {
		t.Error("completed flag lost")
	}

	data, _ := st.Read("checklists/alice/sprint.md")
	if strings.Contains(string(data), "status:") || strings.Contains(string(data), "<!-- type:task -->") {
		t.Errorf("task metadata still on disk:\n%s", data)
	}
}

func TestConvertChecklist_SameTypeNoOp(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Plain", "", "")

	c, err := r.ConvertChecklist(ctx(), "alice", "", "plain", models.TypeSimple)
	if err != nil {
		t.Fatal(err)
	}
	if c.Type != models.TypeSimple {
		t.Errorf("type = %q", c.Type)
	}
}

func TestConvertChecklist_UnknownTarget(t *testing.T) {
	r, _ := testRepo(t)
	_, _ = r.CreateChecklist(ctx(), "alice", "Plain", "", "")

	if _, err := r.ConvertChecklist(ctx(), "alice", "", "plain", "kanban"); err == nil {
		t.Error("expected error for unknown target type")
	}
}
