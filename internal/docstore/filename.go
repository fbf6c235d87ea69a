package docstore

import (
	"fmt"
	"strings"
)

// SanitizeTitle derives a filename stem from a document title: lowercase,
// non-alphanumerics stripped except spaces and hyphens, spaces turned into
// hyphens, runs of hyphens collapsed and trimmed.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-':
			b.WriteRune('-')
		}
	}
	s := b.String()
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// uniqueID returns base if no document with that id exists in the target
// category directory, otherwise base-1, base-2, … until a free name is
// found.
func (r *Repository) uniqueID(kind, owner, category, base string) string {
	id := base
	for n := 1; r.st.Exists(docPath(kind, owner, category, id)); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// idMatchesTitle reports whether an existing filename stem is one the given
// sanitized title could have produced (the stem itself or a collision
// suffix of it). A mismatch triggers the self-healing rename on update.
func idMatchesTitle(id, sanitized string) bool {
	if id == sanitized {
		return true
	}
	rest, ok := strings.CutPrefix(id, sanitized+"-")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
