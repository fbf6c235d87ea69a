package index

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"

	"github.com/starford/laguz/internal/markdown"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/storage"
)

// docRef is a document identity derived from its storage path.
type docRef struct {
	kind     string // "checklist" or "note"
	owner    string
	category string
	id       string
}

// parsePath derives a document identity from a storage path like
// "checklists/alice/Home/groceries.md". Paths outside the two document
// roots — the sharing registry, upload staging directories — yield ok=false.
func parsePath(path string) (docRef, bool) {
	parts := strings.Split(path, "/")
	if len(parts) < 3 || !strings.HasSuffix(parts[len(parts)-1], ".md") {
		return docRef{}, false
	}

	var kind string
	switch parts[0] {
	case "checklists":
		kind = "checklist"
	case "notes":
		kind = "note"
	default:
		return docRef{}, false
	}
	if kind == "note" && len(parts) > 3 && (parts[2] == "images" || parts[2] == "files") {
		return docRef{}, false
	}

	return docRef{
		kind:     kind,
		owner:    parts[1],
		category: strings.Join(parts[2:len(parts)-1], "/"),
		id:       strings.TrimSuffix(parts[len(parts)-1], ".md"),
	}, true
}

// Sync walks the data directory and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{})
	for _, root := range []string{"checklists", "notes"} {
		metas, err := store.List(root)
		if err != nil {
			return err
		}
		for _, m := range metas {
			if _, ok := parsePath(m.Path); !ok {
				continue
			}
			disk[m.Path] = struct{}{}

			if checksums[m.Path] == m.Checksum {
				continue
			}
			data, err := store.Read(m.Path)
			if err != nil {
				logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
				continue
			}
			if err := indexFile(db, m.Path, data); err != nil {
				logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: indexed", slog.String("path", m.Path))
			}
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDocument(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses data with the markdown codec and upserts it into the DB.
func indexFile(db *DB, path string, data []byte) error {
	ref, ok := parsePath(path)
	if !ok {
		return nil
	}

	row := DocumentRow{
		Path:     path,
		Kind:     ref.kind,
		Owner:    ref.owner,
		Category: ref.category,
		DocID:    ref.id,
		Checksum: checksum(data),
	}

	var items []ItemRow
	if ref.kind == "note" {
		n := markdown.DecodeNote(string(data), ref.id, ref.category, markdown.DecodeContext{})
		row.Title = n.Title
		row.UpdatedAt = n.UpdatedAt
	} else {
		c := markdown.DecodeChecklist(string(data), ref.id, ref.category, markdown.DecodeContext{})
		row.Title = c.Title
		row.ListType = string(c.Type)
		row.UpdatedAt = c.UpdatedAt
		for _, it := range c.Items {
			items = append(items, ItemRow{
				ItemID:    it.ID,
				Text:      it.Text,
				Status:    it.Status,
				Completed: it.Completed,
				Position:  it.Order,
				Duration:  trackedSeconds(it.TimeEntries),
			})
		}
	}

	return db.UpsertDocument(row, items)
}

func trackedSeconds(entries []models.TimeEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Seconds()
	}
	return total
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
