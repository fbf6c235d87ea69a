// Package markdown encodes and decodes checklists and notes to and from
// their on-disk markdown representation.
//
// Checklist format: line 1 is "# {title}", followed by an optional
// "<!-- type:task -->" marker, a blank line, and one "- [x] " / "- [ ] "
// line per item. Task metadata is appended to the item line as
// " | key:value" fields. A literal "|" in item text is stored as "∣" so it
// cannot be confused with the metadata delimiter.
package markdown

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/starford/laguz/internal/models"
)

const (
	taskMarker = "<!-- type:task -->"

	// pipeEscape replaces literal "|" in item text (U+2223 DIVIDES).
	pipeEscape = "∣"
)

// FileTimes carries filesystem timestamps into decode. Zero values fall
// back to the current time.
type FileTimes struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DecodeContext supplies the identity fields that are not part of the file
// content itself.
type DecodeContext struct {
	Owner    string
	IsShared bool
	Times    FileTimes
}

// EncodeChecklist renders a checklist as markdown text.
func EncodeChecklist(c *models.Checklist) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(c.Title)
	b.WriteString("\n")
	if c.Type == models.TypeTask {
		b.WriteString(taskMarker)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	items := make([]models.Item, len(c.Items))
	copy(items, c.Items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	for _, it := range items {
		if it.Completed {
			b.WriteString("- [x] ")
		} else {
			b.WriteString("- [ ] ")
		}
		b.WriteString(escapePipes(it.Text))
		if c.Type == models.TypeTask {
			b.WriteString(" | status:")
			b.WriteString(statusOrDefault(it))
			b.WriteString(" | time:")
			b.WriteString(encodeTimeEntries(it.TimeEntries))
			if it.EstimatedTime > 0 {
				fmt.Fprintf(&b, " | estimated:%d", it.EstimatedTime)
			}
			if it.TargetDate != "" {
				b.WriteString(" | target:")
				b.WriteString(it.TargetDate)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DecodeChecklist parses markdown text into a checklist. The type marker is
// optional: any " | status:", " | time:", " | estimated:" or " | target:"
// field implies task type (legacy files predate the marker).
func DecodeChecklist(text, id, category string, dc DecodeContext) *models.Checklist {
	c := &models.Checklist{
		ID:        id,
		Title:     id,
		Type:      models.TypeSimple,
		Category:  category,
		Items:     []models.Item{},
		CreatedAt: timeOrNow(dc.Times.CreatedAt),
		UpdatedAt: timeOrNow(dc.Times.UpdatedAt),
		Owner:     dc.Owner,
		IsShared:  dc.IsShared,
	}

	if InferTaskType(text) {
		c.Type = models.TypeTask
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "# "):
			if c.Title == id {
				c.Title = strings.TrimSpace(trimmed[2:])
			}
		case strings.HasPrefix(trimmed, "- ["):
			it := decodeItem(trimmed, id, len(c.Items), c.Type)
			c.Items = append(c.Items, it)
		}
	}
	return c
}

// InferTaskType reports whether the markdown content describes a task-type
// checklist, either via the explicit marker or via task metadata fields.
func InferTaskType(text string) bool {
	if strings.Contains(text, taskMarker) {
		return true
	}
	for _, key := range []string{" | status:", " | time:", " | estimated:", " | target:"} {
		if strings.Contains(text, key) {
			return true
		}
	}
	return false
}

// EncodeNote renders a note as markdown text: a title heading followed by
// the content verbatim.
func EncodeNote(n *models.Note) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(n.Title)
	b.WriteString("\n\n")
	b.WriteString(n.Content)
	if !strings.HasSuffix(n.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// DecodeNote parses markdown text into a note. The first "# " line is the
// title; the remaining trimmed text is the content.
func DecodeNote(text, id, category string, dc DecodeContext) *models.Note {
	n := &models.Note{
		ID:        id,
		Title:     id,
		Category:  category,
		CreatedAt: timeOrNow(dc.Times.CreatedAt),
		UpdatedAt: timeOrNow(dc.Times.UpdatedAt),
		Owner:     dc.Owner,
		IsShared:  dc.IsShared,
	}
	lines := strings.Split(text, "\n")
	body := lines
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "# ") {
		n.Title = strings.TrimSpace(strings.TrimSpace(lines[0])[2:])
		body = lines[1:]
	}
	n.Content = strings.TrimSpace(strings.Join(body, "\n"))
	return n
}

func decodeItem(line, listID string, index int, typ models.ChecklistType) models.Item {
	it := models.Item{
		ID:    fmt.Sprintf("%s-%d", listID, index),
		Order: index,
	}

	rest := line
	switch {
	case strings.HasPrefix(line, "- [x]"), strings.HasPrefix(line, "- [X]"):
		it.Completed = true
		rest = strings.TrimPrefix(line[5:], " ")
	case strings.HasPrefix(line, "- [ ]"):
		rest = strings.TrimPrefix(line[5:], " ")
	default:
		// Malformed checkbox; keep the raw remainder as text.
		rest = strings.TrimPrefix(line, "- ")
	}

	fields := strings.Split(rest, " | ")
	it.Text = unescapePipes(fields[0])

	for _, field := range fields[1:] {
		key, val, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		switch key {
		case "status":
			it.Status = val
		case "time":
			it.TimeEntries = decodeTimeEntries(val)
		case "estimated":
			if n, err := strconv.Atoi(val); err == nil {
				it.EstimatedTime = n
			}
		case "target":
			it.TargetDate = val
		}
	}

	if typ == models.TypeTask {
		if it.Status == "" {
			if it.Completed {
				it.Status = models.StatusCompleted
			} else {
				it.Status = models.StatusTodo
			}
		}
		if it.TimeEntries == nil {
			it.TimeEntries = []models.TimeEntry{}
		}
	}
	return it
}

// encodeTimeEntries renders time entries as a JSON array, or the literal
// "0" when there are none.
func encodeTimeEntries(entries []models.TimeEntry) string {
	if len(entries) == 0 {
		return "0"
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "0"
	}
	return string(data)
}

func decodeTimeEntries(val string) []models.TimeEntry {
	if val == "" || val == "0" {
		return []models.TimeEntry{}
	}
	var entries []models.TimeEntry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		return []models.TimeEntry{}
	}
	return entries
}

func statusOrDefault(it models.Item) string {
	if it.Status != "" {
		return it.Status
	}
	if it.Completed {
		return models.StatusCompleted
	}
	return models.StatusTodo
}

func escapePipes(s string) string   { return strings.ReplaceAll(s, "|", pipeEscape) }
func unescapePipes(s string) string { return strings.ReplaceAll(s, pipeEscape, "|") }

func timeOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
