// Package docstore implements the document repository: CRUD, rename/move
// and delete for checklists and notes persisted as markdown files, with the
// sharing registry kept consistent through every identity-changing
// operation.
package docstore

import (
	"context"
	"log/slog"
	gopath "path"
	"strings"

	"github.com/starford/laguz/internal/markdown"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/order"
	"github.com/starford/laguz/internal/sharing"
	"github.com/starford/laguz/internal/storage"
)

// Document kind roots under the data directory.
const (
	KindChecklists = "checklists"
	KindNotes      = "notes"
)

// Upload staging directories excluded from the notes category walk.
var noteExclusions = []string{"images", "files"}

// Renamed signals that an update changed a document's id (and therefore its
// filename). All references keyed by OldID are invalid afterwards.
type Renamed struct {
	OldID string `json:"oldId"`
	NewID string `json:"newId"`
}

// Repository coordinates storage, ordering and sharing for checklists and
// notes.
type Repository struct {
	st     storage.Provider
	reg    *sharing.Registry
	locks  *keyedMutex
	logger *slog.Logger
}

// New creates a repository on top of the given storage provider and
// sharing registry.
func New(st storage.Provider, reg *sharing.Registry, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{st: st, reg: reg, locks: newKeyedMutex(), logger: logger}
}

// kindForType maps a sharing item type to its directory root.
func kindForType(itemType string) string {
	if itemType == models.ItemTypeNote {
		return KindNotes
	}
	return KindChecklists
}

func userDir(kind, owner string) string {
	return gopath.Join(kind, owner)
}

func docDir(kind, owner, category string) string {
	return gopath.Join(kind, owner, category)
}

func docPath(kind, owner, category, id string) string {
	return gopath.Join(kind, owner, category, id+".md")
}

// ownerRelPath is the path stored in the sharing registry: relative to the
// kind root, i.e. "owner/category/id.md".
func ownerRelPath(owner, category, id string) string {
	return gopath.Join(owner, category, id+".md")
}

// sharedFilePath resolves a registry entry to a storage path, trusting
// FilePath when present and falling back to the conventional
// owner/category/id.md location for entries created before FilePath was
// tracked.
func sharedFilePath(item models.SharedItem) string {
	rel := item.FilePath
	if rel == "" {
		rel = ownerRelPath(item.Owner, item.Category, item.ID)
	}
	return gopath.Join(kindForType(item.Type), rel)
}

// orderedIDs returns the document ids in dir in display order: the order
// sidecar's item list first, unlisted documents appended alphabetically.
func (r *Repository) orderedIDs(dir string) ([]string, error) {
	entries, err := r.st.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir && strings.HasSuffix(e.Name, ".md") {
			ids = append(ids, strings.TrimSuffix(e.Name, ".md"))
		}
	}
	var explicit []string
	if od := order.Read(r.st, dir); od != nil {
		explicit = od.Items
	}
	return order.Resolve(explicit, ids), nil
}

// categoryPaths returns "" (the root level) followed by every category path
// of the user's tree in display order.
func (r *Repository) categoryPaths(ctx context.Context, kind, owner string) ([]string, error) {
	cats, err := r.Categories(ctx, kind, owner)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(cats)+1)
	paths = append(paths, "")
	for _, c := range cats {
		paths = append(paths, c.Path)
	}
	return paths, nil
}

// syncSharing keeps the registry consistent after an identity- or
// location-changing document operation. Failures are logged only; the file
// write has already happened and is not rolled back.
func (r *Repository) syncSharing(itemType, owner, oldID, newID, category, title string) {
	entry, ok := r.reg.Get(owner, oldID, itemType)
	if !ok {
		return
	}
	filePath := ownerRelPath(owner, category, newID)

	if newID != oldID {
		if err := r.reg.Remove(owner, oldID, itemType); err != nil {
			r.logger.Warn("sharing sync: remove old key failed",
				slog.String("owner", owner), slog.String("id", oldID), slog.String("error", err.Error()))
			return
		}
		entry.ID = newID
		entry.Title = title
		entry.Category = category
		entry.FilePath = filePath
		if err := r.reg.Add(entry); err != nil {
			r.logger.Warn("sharing sync: re-add under new key failed",
				slog.String("owner", owner), slog.String("id", newID), slog.String("error", err.Error()))
		}
		return
	}

	if err := r.reg.Update(owner, oldID, itemType, sharing.Patch{
		Title:    &title,
		Category: &category,
		FilePath: &filePath,
	}); err != nil {
		r.logger.Warn("sharing sync: update failed",
			slog.String("owner", owner), slog.String("id", oldID), slog.String("error", err.Error()))
	}
}

func (r *Repository) decodeContext(path, owner string, isShared bool) markdown.DecodeContext {
	dc := markdown.DecodeContext{Owner: owner, IsShared: isShared}
	if times, err := r.st.Stat(path); err == nil {
		dc.Times = markdown.FileTimes{CreatedAt: times.CreatedAt, UpdatedAt: times.UpdatedAt}
	}
	return dc
}
