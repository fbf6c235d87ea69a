package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/markdown"
	"github.com/starford/laguz/internal/models"
)

// Share registers a document in the sharing registry, recording the current
// file location. Sharing the same document again extends the shared-with
// list.
func (r *Repository) Share(_ context.Context, itemType, owner, category, id string, with []string, public bool) (models.SharedItem, error) {
	kind := kindForType(itemType)
	path := docPath(kind, owner, category, id)
	data, err := r.st.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.SharedItem{}, apperr.ErrNotFound
		}
		return models.SharedItem{}, err
	}

	title := id
	if itemType == models.ItemTypeNote {
		title = markdown.DecodeNote(string(data), id, category, markdown.DecodeContext{}).Title
	} else {
		title = markdown.DecodeChecklist(string(data), id, category, markdown.DecodeContext{}).Title
	}

	item := models.SharedItem{
		ID:               id,
		Type:             itemType,
		Title:            title,
		Owner:            owner,
		SharedWith:       normalizeUsers(with, owner),
		Category:         category,
		FilePath:         ownerRelPath(owner, category, id),
		IsPubliclyShared: public,
	}
	if err := r.reg.Add(item); err != nil {
		return models.SharedItem{}, fmt.Errorf("docstore: share: %w", err)
	}
	stored, _ := r.reg.Get(owner, id, itemType)
	return stored, nil
}

// Unshare removes a document's sharing entry. Only the owner or an admin
// may unshare.
func (r *Repository) Unshare(_ context.Context, itemType, user, owner, id string, isAdmin bool) error {
	if user != owner && !isAdmin {
		return apperr.ErrUnauthorized
	}
	if _, ok := r.reg.Get(owner, id, itemType); !ok {
		return apperr.ErrNotFound
	}
	return r.reg.Remove(owner, id, itemType)
}

// SharedWithUser returns the registry entries visible to user.
func (r *Repository) SharedWithUser(_ context.Context, user string) []models.SharedItem {
	return r.reg.SharedWith(user)
}

// SharedByUser returns the registry entries owned by user.
func (r *Repository) SharedByUser(_ context.Context, user string) []models.SharedItem {
	return r.reg.SharedBy(user)
}

// GetSharedChecklist resolves a checklist another user shared with the
// caller, trusting the registry's file path.
func (r *Repository) GetSharedChecklist(_ context.Context, user, owner, id string) (*models.Checklist, error) {
	item, err := r.sharedEntry(models.ItemTypeChecklist, user, owner, id)
	if err != nil {
		return nil, err
	}
	return r.readSharedChecklist(item)
}

// GetSharedNote resolves a note another user shared with the caller.
func (r *Repository) GetSharedNote(_ context.Context, user, owner, id string) (*models.Note, error) {
	item, err := r.sharedEntry(models.ItemTypeNote, user, owner, id)
	if err != nil {
		return nil, err
	}
	return r.readSharedNote(item)
}

func (r *Repository) sharedEntry(itemType, user, owner, id string) (models.SharedItem, error) {
	item, ok := r.reg.Get(owner, id, itemType)
	if !ok {
		return models.SharedItem{}, apperr.ErrNotFound
	}
	if user != owner && !item.IsPubliclyShared && !slices.Contains(item.SharedWith, user) {
		return models.SharedItem{}, apperr.ErrUnauthorized
	}
	return item, nil
}

func (r *Repository) readSharedChecklist(item models.SharedItem) (*models.Checklist, error) {
	path := sharedFilePath(item)
	data, err := r.st.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return markdown.DecodeChecklist(string(data), item.ID, item.Category,
		r.decodeContext(path, item.Owner, true)), nil
}

func (r *Repository) readSharedNote(item models.SharedItem) (*models.Note, error) {
	path := sharedFilePath(item)
	data, err := r.st.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return markdown.DecodeNote(string(data), item.ID, item.Category,
		r.decodeContext(path, item.Owner, true)), nil
}

// normalizeUsers trims, dedupes, and drops the owner from a shared-with
// list.
func normalizeUsers(users []string, owner string) []string {
	out := []string{}
	for _, u := range users {
		u = strings.TrimSpace(u)
		if u == "" || u == owner || slices.Contains(out, u) {
			continue
		}
		out = append(out, u)
	}
	return out
}
