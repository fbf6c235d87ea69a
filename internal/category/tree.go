// Package category builds the ordered, leveled category list for a user's
// document tree by merging directory entries with order sidecar data.
package category

import (
	gopath "path"
	"strings"

	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/order"
	"github.com/starford/laguz/internal/storage"
)

// Build walks the directory tree under root (e.g. "checklists/alice") and
// returns a flat list of categories in display order. Level is the
// recursion depth, Parent the category path one level up, Count the direct
// .md file count. Directory names in exclude are skipped at every level.
func Build(st storage.Provider, root string, exclude ...string) ([]models.Category, error) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	var out []models.Category
	if err := walk(st, root, "", 0, skip, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(st storage.Provider, root, rel string, level int, skip map[string]bool, out *[]models.Category) error {
	dir := gopath.Join(root, rel)
	entries, err := st.ReadDir(dir)
	if err != nil {
		return err
	}

	var subdirs []string
	for _, e := range entries {
		if e.IsDir && !skip[e.Name] {
			subdirs = append(subdirs, e.Name)
		}
	}

	var explicit []string
	if od := order.Read(st, dir); od != nil {
		explicit = od.Categories
	}

	for _, name := range order.Resolve(explicit, subdirs) {
		childRel := gopath.Join(rel, name)
		*out = append(*out, models.Category{
			Name:   name,
			Path:   childRel,
			Parent: rel,
			Level:  level,
			Count:  countDocs(st, gopath.Join(root, childRel)),
		})
		if err := walk(st, root, childRel, level+1, skip, out); err != nil {
			return err
		}
	}
	return nil
}

// countDocs returns the direct (non-recursive) markdown document count.
func countDocs(st storage.Provider, dir string) int {
	entries, err := st.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir && strings.HasSuffix(e.Name, ".md") {
			n++
		}
	}
	return n
}
