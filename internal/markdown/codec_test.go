package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/laguz/internal/models"
)

func TestEncodeChecklist_Simple(t *testing.T) {
	c := &models.Checklist{
		Title: "Groceries",
		Type:  models.TypeSimple,
		Items: []models.Item{
			{Text: "milk", Order: 0},
			{Text: "eggs", Completed: true, Order: 1},
		},
	}
	got := EncodeChecklist(c)
	want := "# Groceries\n\n- [ ] milk\n- [x] eggs\n"
	if got != want {
		t.Errorf("encoded = %q, want %q", got, want)
	}
}

func TestEncodeChecklist_TaskMarkerAndMetadata(t *testing.T) {
	c := &models.Checklist{
		Title: "Sprint",
		Type:  models.TypeTask,
		Items: []models.Item{
			{Text: "review", Status: models.StatusInProgress, EstimatedTime: 30, TargetDate: "2026-09-01", Order: 0},
		},
	}
	got := EncodeChecklist(c)
	if !strings.Contains(got, "<!-- type:task -->") {
		t.Error("task marker missing")
	}
	if !strings.Contains(got, "- [ ] review | status:in_progress | time:0 | estimated:30 | target:2026-09-01") {
		t.Errorf("item line wrong:\n%s", got)
	}
}

func TestEncodeChecklist_SortsByOrder(t *testing.T) {
	c := &models.Checklist{
		Title: "Ordered",
		Type:  models.TypeSimple,
		Items: []models.Item{
			{Text: "second", Order: 1},
			{Text: "first", Order: 0},
		},
	}
	got := EncodeChecklist(c)
	if strings.Index(got, "first") > strings.Index(got, "second") {
		t.Errorf("items not sorted by order:\n%s", got)
	}
}

func TestRoundTrip_PipeEscape(t *testing.T) {
	c := &models.Checklist{
		Title: "Pipes",
		Type:  models.TypeTask,
		Items: []models.Item{{Text: "either this | or that", Status: models.StatusTodo, Order: 0}},
	}
	encoded := EncodeChecklist(c)
	if strings.Contains(strings.SplitN(encoded, "status:", 2)[0], "this | or") {
		t.Fatalf("literal pipe leaked into encoded text:\n%s", encoded)
	}

	decoded := DecodeChecklist(encoded, "pipes", "", DecodeContext{})
	if len(decoded.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(decoded.Items))
	}
	if decoded.Items[0].Text != "either this | or that" {
		t.Errorf("text = %q", decoded.Items[0].Text)
	}
	if decoded.Items[0].Status != models.StatusTodo {
		t.Errorf("status = %q", decoded.Items[0].Status)
	}
}

func TestDecodeChecklist_TypeInference(t *testing.T) {
	cases := []struct {
		name string
		text string
		want models.ChecklistType
	}{
		{"marker", "# A\n<!-- type:task -->\n\n- [ ] x\n", models.TypeTask},
		{"status field", "# A\n\n- [ ] x | status:todo\n", models.TypeTask},
		{"time field", "# A\n\n- [ ] x | time:0\n", models.TypeTask},
		{"estimated field", "# A\n\n- [ ] x | estimated:15\n", models.TypeTask},
		{"target field", "# A\n\n- [ ] x | target:2026-01-01\n", models.TypeTask},
		{"plain", "# A\n\n- [ ] x\n", models.TypeSimple},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DecodeChecklist(tc.text, "a", "", DecodeContext{})
			if c.Type != tc.want {
				t.Errorf("type = %q, want %q", c.Type, tc.want)
			}
		})
	}
}

func TestDecodeChecklist_CheckboxVariants(t *testing.T) {
	text := "# Boxes\n\n- [ ] open\n- [x] done\n- [X] also done\n"
	c := DecodeChecklist(text, "boxes", "", DecodeContext{})
	if len(c.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(c.Items))
	}
	if c.Items[0].Completed || !c.Items[1].Completed || !c.Items[2].Completed {
		t.Errorf("completed flags = %v %v %v", c.Items[0].Completed, c.Items[1].Completed, c.Items[2].Completed)
	}
	if c.Items[1].ID != "boxes-1" || c.Items[1].Order != 1 {
		t.Errorf("item identity = %q order %d", c.Items[1].ID, c.Items[1].Order)
	}
}

func TestDecodeChecklist_TaskDefaults(t *testing.T) {
	text := "# T\n<!-- type:task -->\n\n- [ ] pending\n- [x] finished\n"
	c := DecodeChecklist(text, "t", "", DecodeContext{})
	if c.Items[0].Status != models.StatusTodo {
		t.Errorf("unchecked status = %q, want todo", c.Items[0].Status)
	}
	if c.Items[1].Status != models.StatusCompleted {
		t.Errorf("checked status = %q, want completed", c.Items[1].Status)
	}
	if c.Items[0].TimeEntries == nil {
		t.Error("task items should get empty, non-nil time entries")
	}
}

func TestRoundTrip_TimeEntries(t *testing.T) {
	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	c := &models.Checklist{
		Title: "Tracked",
		Type:  models.TypeTask,
		Items: []models.Item{{
			Text:        "deep work",
			Status:      models.StatusInProgress,
			TimeEntries: []models.TimeEntry{{ID: "e1", StartTime: start, EndTime: &end, Duration: 1800}},
			Order:       0,
		}},
	}
	decoded := DecodeChecklist(EncodeChecklist(c), "tracked", "", DecodeContext{})
	entries := decoded.Items[0].TimeEntries
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Seconds() != 1800 {
		t.Errorf("seconds = %d, want 1800", entries[0].Seconds())
	}
	if !entries[0].StartTime.Equal(start) {
		t.Errorf("start = %v, want %v", entries[0].StartTime, start)
	}
}

func TestDecodeChecklist_IdentityAndTimes(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(time.Hour)
	c := DecodeChecklist("# Titled\n\n- [ ] x\n", "titled", "Home/Kitchen", DecodeContext{
		Owner:    "alice",
		IsShared: true,
		Times:    FileTimes{CreatedAt: created, UpdatedAt: updated},
	})
	if c.Title != "Titled" || c.ID != "titled" || c.Category != "Home/Kitchen" {
		t.Errorf("identity = %q/%q/%q", c.ID, c.Title, c.Category)
	}
	if c.Owner != "alice" || !c.IsShared {
		t.Errorf("context = %q shared=%v", c.Owner, c.IsShared)
	}
	if !c.CreatedAt.Equal(created) || !c.UpdatedAt.Equal(updated) {
		t.Errorf("times = %v / %v", c.CreatedAt, c.UpdatedAt)
	}
}

func TestDecodeChecklist_MissingHeadingFallsBackToID(t *testing.T) {
	c := DecodeChecklist("- [ ] only item\n", "fallback", "", DecodeContext{})
	if c.Title != "fallback" {
		t.Errorf("title = %q, want id fallback", c.Title)
	}
	if len(c.Items) != 1 || c.Items[0].Text != "only item" {
		t.Errorf("items = %+v", c.Items)
	}
}

func TestDecodeChecklist_CorruptTimeEntries(t *testing.T) {
	c := DecodeChecklist("# T\n\n- [ ] x | status:todo | time:not-json\n", "t", "", DecodeContext{})
	if got := c.Items[0].TimeEntries; got == nil || len(got) != 0 {
		t.Errorf("corrupt time entries should decode to empty slice, got %v", got)
	}
}

func TestNoteRoundTrip(t *testing.T) {
	n := &models.Note{Title: "Meeting Notes", Content: "First line.\n\nSecond paragraph."}
	encoded := EncodeNote(n)
	if !strings.HasPrefix(encoded, "# Meeting Notes\n\n") {
		t.Errorf("heading missing:\n%s", encoded)
	}
	if !strings.HasSuffix(encoded, "\n") {
		t.Error("encoded note should end with newline")
	}

	decoded := DecodeNote(encoded, "meeting-notes", "work", DecodeContext{Owner: "alice"})
	if decoded.Title != "Meeting Notes" {
		t.Errorf("title = %q", decoded.Title)
	}
	if decoded.Content != "First line.\n\nSecond paragraph." {
		t.Errorf("content = %q", decoded.Content)
	}
	if decoded.Category != "work" || decoded.Owner != "alice" {
		t.Errorf("context = %q/%q", decoded.Category, decoded.Owner)
	}
}

func TestDecodeNote_NoHeading(t *testing.T) {
	n := DecodeNote("just body text\n", "untitled", "", DecodeContext{})
	if n.Title != "untitled" {
		t.Errorf("title = %q, want id fallback", n.Title)
	}
	if n.Content != "just body text" {
		t.Errorf("content = %q", n.Content)
	}
}
