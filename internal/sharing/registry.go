// Package sharing maintains the cross-user sharing registry: a single JSON
// file mapping shared document identity to sharing state, independent of
// the document's own file.
package sharing

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/storage"
)

// RegistryPath is the registry file location relative to the data root.
const RegistryPath = "sharing/shared-items.json"

// ID builds the synthetic registry key for a shared item.
func ID(owner, itemID, itemType string) string {
	return fmt.Sprintf("%s-%s-%s", owner, itemID, itemType)
}

// registryFile is the on-disk shape: one map per item kind.
type registryFile struct {
	Checklists map[string]models.SharedItem `json:"checklists"`
	Notes      map[string]models.SharedItem `json:"notes"`
}

// Registry provides read-modify-write access to the sharing registry file.
// A missing or corrupt file is treated as an empty registry.
type Registry struct {
	st storage.Provider
	mu sync.Mutex
}

// NewRegistry creates a registry backed by the given storage provider.
func NewRegistry(st storage.Provider) *Registry {
	return &Registry{st: st}
}

func (r *Registry) load() registryFile {
	f := registryFile{
		Checklists: map[string]models.SharedItem{},
		Notes:      map[string]models.SharedItem{},
	}
	data, err := r.st.Read(RegistryPath)
	if err != nil {
		return f
	}
	var parsed registryFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return f
	}
	if parsed.Checklists != nil {
		f.Checklists = parsed.Checklists
	}
	if parsed.Notes != nil {
		f.Notes = parsed.Notes
	}
	return f
}

func (r *Registry) save(f registryFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("sharing: marshal registry: %w", err)
	}
	if err := r.st.Write(RegistryPath, data); err != nil {
		return fmt.Errorf("sharing: write registry: %w", err)
	}
	return nil
}

func (f registryFile) section(itemType string) map[string]models.SharedItem {
	if itemType == models.ItemTypeNote {
		return f.Notes
	}
	return f.Checklists
}

// Add upserts a sharing entry. An existing entry keeps its SharedAt and
// gains the union of the shared-with lists; the public flag is sticky.
func (r *Registry) Add(item models.SharedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.load()
	section := f.section(item.Type)
	key := ID(item.Owner, item.ID, item.Type)

	if existing, ok := section[key]; ok {
		item.SharedAt = existing.SharedAt
		for _, u := range existing.SharedWith {
			if !slices.Contains(item.SharedWith, u) {
				item.SharedWith = append(item.SharedWith, u)
			}
		}
		item.IsPubliclyShared = item.IsPubliclyShared || existing.IsPubliclyShared
	}
	if item.SharedAt.IsZero() {
		item.SharedAt = time.Now()
	}
	if item.SharedWith == nil {
		item.SharedWith = []string{}
	}
	section[key] = item
	return r.save(f)
}

// Remove deletes the entry keyed by (owner, itemID, itemType). Removing an
// absent entry is a no-op.
func (r *Registry) Remove(owner, itemID, itemType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.load()
	delete(f.section(itemType), ID(owner, itemID, itemType))
	return r.save(f)
}

// Patch describes a partial update of a sharing entry. Nil fields are left
// unchanged.
type Patch struct {
	Title            *string
	Category         *string
	FilePath         *string
	SharedWith       *[]string
	IsPubliclyShared *bool
}

// Update applies a partial patch to an existing entry.
func (r *Registry) Update(owner, itemID, itemType string, p Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.load()
	section := f.section(itemType)
	key := ID(owner, itemID, itemType)
	item, ok := section[key]
	if !ok {
		return apperr.ErrNotFound
	}
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.FilePath != nil {
		item.FilePath = *p.FilePath
	}
	if p.SharedWith != nil {
		item.SharedWith = *p.SharedWith
	}
	if p.IsPubliclyShared != nil {
		item.IsPubliclyShared = *p.IsPubliclyShared
	}
	section[key] = item
	return r.save(f)
}

// Get returns the entry keyed by (owner, itemID, itemType), if present.
func (r *Registry) Get(owner, itemID, itemType string) (models.SharedItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.load()
	item, ok := f.section(itemType)[ID(owner, itemID, itemType)]
	return item, ok
}

// SharedWith returns every entry whose shared-with list contains user or
// that is publicly shared, excluding the user's own items.
func (r *Registry) SharedWith(user string) []models.SharedItem {
	return r.filter(func(item models.SharedItem) bool {
		if item.Owner == user {
			return false
		}
		return item.IsPubliclyShared || slices.Contains(item.SharedWith, user)
	})
}

// SharedBy returns every entry owned by user.
func (r *Registry) SharedBy(user string) []models.SharedItem {
	return r.filter(func(item models.SharedItem) bool {
		return item.Owner == user
	})
}

func (r *Registry) filter(keep func(models.SharedItem) bool) []models.SharedItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.load()
	out := []models.SharedItem{}
	for _, section := range []map[string]models.SharedItem{f.Checklists, f.Notes} {
		for _, item := range section {
			if keep(item) {
				out = append(out, item)
			}
		}
	}
	slices.SortFunc(out, func(a, b models.SharedItem) int {
		if a.SharedAt.Equal(b.SharedAt) {
			return 0
		}
		if a.SharedAt.After(b.SharedAt) {
			return -1
		}
		return 1
	})
	return out
}
