package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"time"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/markdown"
	"github.com/starford/laguz/internal/models"
)

// ChecklistUpdate describes a partial checklist mutation. Nil fields are
// left unchanged; a non-nil Items slice replaces the item list wholesale.
type ChecklistUpdate struct {
	Title    *string
	Category *string
	Items    *[]models.Item
}

// CreateChecklist allocates a filename from the sanitized title, resolving
// collisions with -1, -2, … suffixes, and writes the new checklist. The
// category directory is created on demand.
func (r *Repository) CreateChecklist(_ context.Context, owner, title string, typ models.ChecklistType, category string) (*models.Checklist, error) {
	unlock := r.locks.lock(userDir(KindChecklists, owner))
	defer unlock()

	if typ == "" {
		typ = models.TypeSimple
	}
	id := r.uniqueID(KindChecklists, owner, category, SanitizeTitle(title))
	now := time.Now()
	c := &models.Checklist{
		ID:        id,
		Title:     title,
		Type:      typ,
		Category:  category,
		Items:     []models.Item{},
		CreatedAt: now,
		UpdatedAt: now,
		Owner:     owner,
	}
	path := docPath(KindChecklists, owner, category, id)
	if err := r.st.Write(path, []byte(markdown.EncodeChecklist(c))); err != nil {
		return nil, fmt.Errorf("docstore: create checklist: %w", err)
	}
	return c, nil
}

// GetChecklist reads and decodes one checklist from the owner's tree.
func (r *Repository) GetChecklist(_ context.Context, owner, category, id string) (*models.Checklist, error) {
	path := docPath(KindChecklists, owner, category, id)
	data, err := r.st.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return markdown.DecodeChecklist(string(data), id, category, r.decodeContext(path, owner, false)), nil
}

// ListChecklists returns every checklist of the user in display order
// (category tree order, item order sidecars within each category), followed
// by checklists other users have shared with them.
func (r *Repository) ListChecklists(ctx context.Context, user string) ([]*models.Checklist, error) {
	paths, err := r.categoryPaths(ctx, KindChecklists, user)
	if err != nil {
		return nil, err
	}

	out := []*models.Checklist{}
	for _, category := range paths {
		ids, err := r.orderedIDs(docDir(KindChecklists, user, category))
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			c, err := r.GetChecklist(ctx, user, category, id)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					continue
				}
				return nil, err
			}
			out = append(out, c)
		}
	}

	for _, item := range r.reg.SharedWith(user) {
		if item.Type != models.ItemTypeChecklist {
			continue
		}
		c, err := r.readSharedChecklist(item)
		if err != nil {
			r.logger.Warn("list checklists: shared item unreadable",
				slog.String("owner", item.Owner), slog.String("id", item.ID), slog.String("error", err.Error()))
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// UpdateChecklist applies a partial update. When the title changed — or the
// current filename no longer matches what the title sanitizes to — a new
// unique id is generated and Renamed reports the id change. The new file is
// written first, then sharing metadata is synced, then the old file is
// removed, in that order.
func (r *Repository) UpdateChecklist(_ context.Context, owner, category, id string, upd ChecklistUpdate) (*models.Checklist, *Renamed, error) {
	unlock := r.locks.lock(userDir(KindChecklists, owner))
	defer unlock()

	oldPath := docPath(KindChecklists, owner, category, id)
	data, err := r.st.Read(oldPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, apperr.ErrNotFound
		}
		return nil, nil, err
	}
	c := markdown.DecodeChecklist(string(data), id, category, r.decodeContext(oldPath, owner, false))

	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Category != nil {
		c.Category = *upd.Category
	}
	if upd.Items != nil {
		c.Items = normalizeItems(id, *upd.Items)
	}

	newID := id
	sanitized := SanitizeTitle(c.Title)
	newPath := docPath(KindChecklists, owner, c.Category, newID)
	switch {
	case !idMatchesTitle(id, sanitized):
		// Title changed, or a legacy filename that sanitization would not
		// produce today: self-heal by renaming.
		newID = r.uniqueID(KindChecklists, owner, c.Category, sanitized)
		newPath = docPath(KindChecklists, owner, c.Category, newID)
	case newPath != oldPath && r.st.Exists(newPath):
		// Category move collided with an existing document.
		newID = r.uniqueID(KindChecklists, owner, c.Category, sanitized)
		newPath = docPath(KindChecklists, owner, c.Category, newID)
	}
	c.ID = newID
	c.UpdatedAt = time.Now()

	if err := r.st.Write(newPath, []byte(markdown.EncodeChecklist(c))); err != nil {
		return nil, nil, fmt.Errorf("docstore: update checklist: %w", err)
	}
	r.syncSharing(models.ItemTypeChecklist, owner, id, newID, c.Category, c.Title)
	if newPath != oldPath {
		if err := r.st.Delete(oldPath); err != nil {
			r.logger.Warn("update checklist: old file cleanup failed",
				slog.String("path", oldPath), slog.String("error", err.Error()))
		}
	}

	var renamed *Renamed
	if newID != id {
		renamed = &Renamed{OldID: id, NewID: newID}
	}
	return c, renamed, nil
}

// DeleteChecklist unlinks a checklist and drops its sharing entry. When
// owner differs from user (a shared item), only the owner or an admin may
// delete.
func (r *Repository) DeleteChecklist(_ context.Context, user, owner, category, id string, isAdmin bool) error {
	if owner == "" {
		owner = user
	}
	if user != owner && !isAdmin {
		return apperr.ErrUnauthorized
	}

	unlock := r.locks.lock(userDir(KindChecklists, owner))
	defer unlock()

	path := docPath(KindChecklists, owner, category, id)
	if entry, ok := r.reg.Get(owner, id, models.ItemTypeChecklist); ok {
		path = sharedFilePath(entry)
	}
	if err := r.st.Delete(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := r.reg.Remove(owner, id, models.ItemTypeChecklist); err != nil {
		r.logger.Warn("delete checklist: registry cleanup failed",
			slog.String("owner", owner), slog.String("id", id), slog.String("error", err.Error()))
	}
	return nil
}

// normalizeItems sorts items by their order field and reassigns dense,
// zero-based order values. Items arriving without an id get a
// timestamp-suffixed one.
func normalizeItems(listID string, items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		out[i].Order = i
		if out[i].ID == "" {
			out[i].ID = fmt.Sprintf("%s-%d", listID, time.Now().UnixMilli())
		}
	}
	return out
}
