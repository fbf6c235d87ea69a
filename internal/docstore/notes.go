package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/markdown"
	"github.com/starford/laguz/internal/models"
)

// NoteUpdate describes a partial note mutation. Nil fields are left
// unchanged.
type NoteUpdate struct {
	Title    *string
	Content  *string
	Category *string
}

// CreateNote allocates a filename from the sanitized title and writes the
// new note. The category directory is created on demand.
func (r *Repository) CreateNote(_ context.Context, owner, title, content, category string) (*models.Note, error) {
	unlock := r.locks.lock(userDir(KindNotes, owner))
	defer unlock()

	id := r.uniqueID(KindNotes, owner, category, SanitizeTitle(title))
	now := time.Now()
	n := &models.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
		Owner:     owner,
	}
	path := docPath(KindNotes, owner, category, id)
	if err := r.st.Write(path, []byte(markdown.EncodeNote(n))); err != nil {
		return nil, fmt.Errorf("docstore: create note: %w", err)
	}
	return n, nil
}

// GetNote reads and decodes one note from the owner's tree.
func (r *Repository) GetNote(_ context.Context, owner, category, id string) (*models.Note, error) {
	path := docPath(KindNotes, owner, category, id)
	data, err := r.st.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return markdown.DecodeNote(string(data), id, category, r.decodeContext(path, owner, false)), nil
}

// ListNotes returns every note of the user in display order, followed by
// notes other users have shared with them.
func (r *Repository) ListNotes(ctx context.Context, user string) ([]*models.Note, error) {
	paths, err := r.categoryPaths(ctx, KindNotes, user)
	if err != nil {
		return nil, err
	}

	out := []*models.Note{}
	for _, category := range paths {
		ids, err := r.orderedIDs(docDir(KindNotes, user, category))
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			n, err := r.GetNote(ctx, user, category, id)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					continue
				}
				return nil, err
			}
			out = append(out, n)
		}
	}

	for _, item := range r.reg.SharedWith(user) {
		if item.Type != models.ItemTypeNote {
			continue
		}
		n, err := r.readSharedNote(item)
		if err != nil {
			r.logger.Warn("list notes: shared item unreadable",
				slog.String("owner", item.Owner), slog.String("id", item.ID), slog.String("error", err.Error()))
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// UpdateNote applies a partial update with the same rename protocol as
// checklists: new file first, sharing sync second, old file removal last.
func (r *Repository) UpdateNote(_ context.Context, owner, category, id string, upd NoteUpdate) (*models.Note, *Renamed, error) {
	unlock := r.locks.lock(userDir(KindNotes, owner))
	defer unlock()

	oldPath := docPath(KindNotes, owner, category, id)
	data, err := r.st.Read(oldPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, apperr.ErrNotFound
		}
		return nil, nil, err
	}
	n := markdown.DecodeNote(string(data), id, category, r.decodeContext(oldPath, owner, false))

	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.Category != nil {
		n.Category = *upd.Category
	}

	newID := id
	sanitized := SanitizeTitle(n.Title)
	newPath := docPath(KindNotes, owner, n.Category, newID)
	switch {
	case !idMatchesTitle(id, sanitized):
		newID = r.uniqueID(KindNotes, owner, n.Category, sanitized)
		newPath = docPath(KindNotes, owner, n.Category, newID)
	case newPath != oldPath && r.st.Exists(newPath):
		newID = r.uniqueID(KindNotes, owner, n.Category, sanitized)
		newPath = docPath(KindNotes, owner, n.Category, newID)
	}
	n.ID = newID
	n.UpdatedAt = time.Now()

	if err := r.st.Write(newPath, []byte(markdown.EncodeNote(n))); err != nil {
		return nil, nil, fmt.Errorf("docstore: update note: %w", err)
	}
	r.syncSharing(models.ItemTypeNote, owner, id, newID, n.Category, n.Title)
	if newPath != oldPath {
		if err := r.st.Delete(oldPath); err != nil {
			r.logger.Warn("update note: old file cleanup failed",
				slog.String("path", oldPath), slog.String("error", err.Error()))
		}
	}

	var renamed *Renamed
	if newID != id {
		renamed = &Renamed{OldID: id, NewID: newID}
	}
	return n, renamed, nil
}

// DeleteNote unlinks a note and drops its sharing entry, with the same
// authorization rule as checklists.
func (r *Repository) DeleteNote(_ context.Context, user, owner, category, id string, isAdmin bool) error {
	if owner == "" {
		owner = user
	}
	if user != owner && !isAdmin {
		return apperr.ErrUnauthorized
	}

	unlock := r.locks.lock(userDir(KindNotes, owner))
	defer unlock()

	path := docPath(KindNotes, owner, category, id)
	if entry, ok := r.reg.Get(owner, id, models.ItemTypeNote); ok {
		path = sharedFilePath(entry)
	}
	if err := r.st.Delete(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := r.reg.Remove(owner, id, models.ItemTypeNote); err != nil {
		r.logger.Warn("delete note: registry cleanup failed",
			slog.String("owner", owner), slog.String("id", id), slog.String("error", err.Error()))
	}
	return nil
}
