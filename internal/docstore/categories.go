package docstore

import (
	"context"
	"fmt"
	"log/slog"
	gopath "path"
	"strings"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/category"
	"github.com/starford/laguz/internal/markdown"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/order"
)

// Categories returns the ordered, leveled category list of a user's tree.
// The notes walk skips the upload staging directories.
func (r *Repository) Categories(_ context.Context, kind, owner string) ([]models.Category, error) {
	var exclude []string
	if kind == KindNotes {
		exclude = noteExclusions
	}
	return category.Build(r.st, userDir(kind, owner), exclude...)
}

// CreateCategory creates an (empty) category directory. Categories also come
// into existence implicitly when a document is first placed in them.
func (r *Repository) CreateCategory(_ context.Context, kind, owner, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("docstore: category path is required")
	}
	return r.st.MkdirAll(docDir(kind, owner, path))
}

// RenameCategory moves a category subtree in one filesystem rename, then
// re-serializes every contained document against its new category path and
// patches the sharing entries that pointed into the old subtree.
func (r *Repository) RenameCategory(_ context.Context, kind, owner, oldPath, newPath string) error {
	unlock := r.locks.lock(userDir(kind, owner))
	defer unlock()

	oldDir := docDir(kind, owner, oldPath)
	newDir := docDir(kind, owner, newPath)
	if !r.st.Exists(oldDir) {
		return apperr.ErrNotFound
	}
	if r.st.Exists(newDir) {
		return apperr.ErrAlreadyExists
	}
	if err := r.st.Move(oldDir, newDir); err != nil {
		return fmt.Errorf("docstore: rename category: %w", err)
	}

	r.rewriteCategory(kind, owner, newPath)
	r.replaceInParentOrder(kind, owner, oldPath, newPath)
	return nil
}

// DeleteCategory recursively removes a category: every contained document,
// every order sidecar, and every sharing entry pointing into the subtree.
func (r *Repository) DeleteCategory(_ context.Context, kind, owner, path string) error {
	unlock := r.locks.lock(userDir(kind, owner))
	defer unlock()

	dir := docDir(kind, owner, path)
	if !r.st.Exists(dir) {
		return apperr.ErrNotFound
	}

	metas, err := r.st.List(dir)
	if err != nil {
		return err
	}
	if err := r.st.RemoveAll(dir); err != nil {
		return err
	}

	itemType := models.ItemTypeChecklist
	if kind == KindNotes {
		itemType = models.ItemTypeNote
	}
	for _, m := range metas {
		id := strings.TrimSuffix(gopath.Base(m.Path), ".md")
		if err := r.reg.Remove(owner, id, itemType); err != nil {
			r.logger.Warn("delete category: registry cleanup failed",
				slog.String("owner", owner), slog.String("id", id), slog.String("error", err.Error()))
		}
	}

	r.removeFromParentOrder(kind, owner, path)
	return nil
}

// SetCategoryOrder records the explicit display order of the subcategories
// directly under parentPath ("" for the top level).
func (r *Repository) SetCategoryOrder(_ context.Context, kind, owner, parentPath string, names []string) error {
	unlock := r.locks.lock(userDir(kind, owner))
	defer unlock()
	return order.Write(r.st, docDir(kind, owner, parentPath), models.OrderData{Categories: names})
}

// SetItemOrder records the explicit display order of the documents directly
// under categoryPath.
func (r *Repository) SetItemOrder(_ context.Context, kind, owner, categoryPath string, ids []string) error {
	unlock := r.locks.lock(userDir(kind, owner))
	defer unlock()
	return order.Write(r.st, docDir(kind, owner, categoryPath), models.OrderData{Items: ids})
}

// rewriteCategory re-parses and re-writes every document under the (moved)
// category so its serialized form reflects the new location, and syncs the
// sharing entries. An O(n) pass over the subtree.
func (r *Repository) rewriteCategory(kind, owner, newPath string) {
	newDir := docDir(kind, owner, newPath)
	metas, err := r.st.List(newDir)
	if err != nil {
		r.logger.Warn("rename category: list failed",
			slog.String("dir", newDir), slog.String("error", err.Error()))
		return
	}

	itemType := models.ItemTypeChecklist
	if kind == KindNotes {
		itemType = models.ItemTypeNote
	}

	for _, m := range metas {
		id := strings.TrimSuffix(gopath.Base(m.Path), ".md")
		docCategory := categoryOf(m.Path, kind, owner)
		data, err := r.st.Read(m.Path)
		if err != nil {
			r.logger.Warn("rename category: read failed",
				slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}

		var encoded string
		var title string
		if kind == KindNotes {
			n := markdown.DecodeNote(string(data), id, docCategory, r.decodeContext(m.Path, owner, false))
			encoded = markdown.EncodeNote(n)
			title = n.Title
		} else {
			c := markdown.DecodeChecklist(string(data), id, docCategory, r.decodeContext(m.Path, owner, false))
			encoded = markdown.EncodeChecklist(c)
			title = c.Title
		}
		if err := r.st.Write(m.Path, []byte(encoded)); err != nil {
			r.logger.Warn("rename category: rewrite failed",
				slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		r.syncSharing(itemType, owner, id, id, docCategory, title)
	}
}

// categoryOf extracts the category path of a document from its storage
// path, i.e. everything between "kind/owner/" and the filename.
func categoryOf(path, kind, owner string) string {
	rel := strings.TrimPrefix(path, userDir(kind, owner)+"/")
	dir := gopath.Dir(rel)
	if dir == "." {
		return ""
	}
	return dir
}

// replaceInParentOrder swaps the old category name for the new one in the
// parent's order sidecar. A move to a different parent drops the old entry;
// the destination shows up via the alphabetical fallback until reordered.
func (r *Repository) replaceInParentOrder(kind, owner, oldPath, newPath string) {
	oldParent, oldName := gopath.Dir(oldPath), gopath.Base(oldPath)
	newParent, newName := gopath.Dir(newPath), gopath.Base(newPath)
	if oldParent == "." {
		oldParent = ""
	}
	if newParent == "." {
		newParent = ""
	}

	dir := docDir(kind, owner, oldParent)
	od := order.Read(r.st, dir)
	if od == nil || len(od.Categories) == 0 {
		return
	}
	out := make([]string, 0, len(od.Categories))
	for _, name := range od.Categories {
		switch {
		case name != oldName:
			out = append(out, name)
		case oldParent == newParent:
			out = append(out, newName)
		}
	}
	if err := order.Write(r.st, dir, models.OrderData{Categories: out}); err != nil {
		r.logger.Warn("rename category: order sidecar update failed",
			slog.String("dir", dir), slog.String("error", err.Error()))
	}
}

func (r *Repository) removeFromParentOrder(kind, owner, path string) {
	parent, name := gopath.Dir(path), gopath.Base(path)
	if parent == "." {
		parent = ""
	}
	dir := docDir(kind, owner, parent)
	od := order.Read(r.st, dir)
	if od == nil || len(od.Categories) == 0 {
		return
	}
	out := make([]string, 0, len(od.Categories))
	for _, n := range od.Categories {
		if n != name {
			out = append(out, n)
		}
	}
	if err := order.Write(r.st, dir, models.OrderData{Categories: out}); err != nil {
		r.logger.Warn("delete category: order sidecar update failed",
			slog.String("dir", dir), slog.String("error", err.Error()))
	}
}
