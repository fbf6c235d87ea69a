// Package models defines the domain types for Laguz.
package models

import "time"

// ChecklistType distinguishes plain checklists from task-tracking checklists.
type ChecklistType string

// Checklist types.
const (
	TypeSimple ChecklistType = "simple"
	TypeTask   ChecklistType = "task"
)

// Item workflow statuses (task-type checklists only).
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Item kinds as stored in the sharing registry.
const (
	ItemTypeChecklist = "checklist"
	ItemTypeNote      = "note"
)

// Checklist is an ordered list of items stored as one markdown file.
// ID is derived from the sanitized title and doubles as the filename stem;
// it is not stable across renames.
type Checklist struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Type      ChecklistType `json:"type"`
	Category  string        `json:"category"`
	Items     []Item        `json:"items"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Owner     string        `json:"owner,omitempty"`
	IsShared  bool          `json:"isShared,omitempty"`
}

// Item is a single checklist entry. Status, TimeEntries, EstimatedTime and
// TargetDate are only populated on task-type checklists. Order values are
// dense, zero-based, and consistent with slice position.
type Item struct {
	ID            string      `json:"id"`
	Text          string      `json:"text"`
	Completed     bool        `json:"completed"`
	Order         int         `json:"order"`
	Status        string      `json:"status,omitempty"`
	TimeEntries   []TimeEntry `json:"timeEntries,omitempty"`
	EstimatedTime int         `json:"estimatedTime,omitempty"` // minutes
	TargetDate    string      `json:"targetDate,omitempty"`    // ISO date
}

// TimeEntry records one tracked work interval on a task item.
// Duration (seconds) is derived from the timestamps, not authoritative.
type TimeEntry struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int64      `json:"duration,omitempty"`
}

// Seconds returns the entry duration, recomputing it from the timestamps
// when both are present.
func (e TimeEntry) Seconds() int64 {
	if e.EndTime != nil && !e.StartTime.IsZero() {
		return int64(e.EndTime.Sub(e.StartTime).Seconds())
	}
	return e.Duration
}

// Note is a free-form markdown document.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Owner     string    `json:"owner,omitempty"`
	IsShared  bool      `json:"isShared,omitempty"`
}

// Category describes one directory in a user's document tree. Path is the
// /-joined hierarchical key; Count is the direct (non-recursive) document
// count at that level.
type Category struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Parent string `json:"parent,omitempty"`
	Level  int    `json:"level"`
	Count  int    `json:"count"`
}

// OrderData is the content of a per-directory .order.json sidecar. Omitted
// arrays mean "no explicit order, fall back to alphabetical".
type OrderData struct {
	Categories []string `json:"categories,omitempty"`
	Items      []string `json:"items,omitempty"`
}

// SharedItem is one entry in the sharing registry. FilePath must always
// resolve to the current on-disk location of the owner's file; the rename
// protocol in the document repository preserves that.
type SharedItem struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"` // "checklist" or "note"
	Title            string    `json:"title"`
	Owner            string    `json:"owner"`
	SharedWith       []string  `json:"sharedWith"`
	SharedAt         time.Time `json:"sharedAt"`
	Category         string    `json:"category,omitempty"`
	FilePath         string    `json:"filePath"`
	IsPubliclyShared bool      `json:"isPubliclyShared,omitempty"`
}
