// Package order reads and writes the per-directory .order.json sidecar
// files recording explicit display order for subcategories and items.
package order

import (
	"encoding/json"
	"path"
	"sort"
	"strings"

	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/storage"
)

// FileName is the sidecar file name used in every category directory.
const FileName = ".order.json"

// Read returns the order data for dir, or nil when the sidecar is missing
// or corrupt. Absence of an order file is not an error.
func Read(st storage.Provider, dir string) *models.OrderData {
	data, err := st.Read(path.Join(dir, FileName))
	if err != nil {
		return nil
	}
	var d models.OrderData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil
	}
	return &d
}

// Write merges the supplied partial data into the existing sidecar and
// writes it back. Nil slices leave the existing value untouched; empty
// arrays are omitted from the file entirely.
func Write(st storage.Provider, dir string, d models.OrderData) error {
	merged := models.OrderData{}
	if existing := Read(st, dir); existing != nil {
		merged = *existing
	}
	if d.Categories != nil {
		merged.Categories = d.Categories
	}
	if d.Items != nil {
		merged.Items = d.Items
	}
	if len(merged.Categories) == 0 {
		merged.Categories = nil
	}
	if len(merged.Items) == 0 {
		merged.Items = nil
	}
	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return st.Write(path.Join(dir, FileName), data)
}

// Resolve applies an explicit order list to the entries that actually
// exist: listed entries come first in the given order, entries not listed
// are appended alphabetically, and listed entries that no longer exist are
// dropped.
func Resolve(explicit, existing []string) []string {
	present := make(map[string]bool, len(existing))
	for _, e := range existing {
		present[e] = true
	}

	out := make([]string, 0, len(existing))
	used := make(map[string]bool, len(explicit))
	for _, e := range explicit {
		if present[e] && !used[e] {
			out = append(out, e)
			used[e] = true
		}
	}

	var rest []string
	for _, e := range existing {
		if !used[e] {
			rest = append(rest, e)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		return strings.ToLower(rest[i]) < strings.ToLower(rest[j])
	})
	return append(out, rest...)
}
