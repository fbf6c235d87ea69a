package docstore

import "testing"

func TestSanitizeTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Weekly Groceries", "weekly-groceries"},
		{"Hello, World!", "hello-world"},
		{"  --Already - Hyphenated--  ", "already-hyphenated"},
		{"Café au lait", "caf-au-lait"},
		{"2026 Plans", "2026-plans"},
		{"!!!", "untitled"},
		{"", "untitled"},
	}
	for _, tc := range cases {
		if got := SanitizeTitle(tc.title); got != tc.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestIDMatchesTitle(t *testing.T) {
	cases := []struct {
		id, sanitized string
		want          bool
	}{
		{"notes", "notes", true},
		{"notes-1", "notes", true},
		{"notes-42", "notes", true},
		{"notes-", "notes", false},
		{"notes-x", "notes", false},
		{"notes2", "notes", false},
		{"other", "notes", false},
	}
	for _, tc := range cases {
		if got := idMatchesTitle(tc.id, tc.sanitized); got != tc.want {
			t.Errorf("idMatchesTitle(%q, %q) = %v, want %v", tc.id, tc.sanitized, got, tc.want)
		}
	}
}

func TestUniqueID(t *testing.T) {
	r, _ := testRepo(t)
	if _, err := r.CreateChecklist(ctx(), "alice", "Notes", "", ""); err != nil {
		t.Fatal(err)
	}
	if got := r.uniqueID(KindChecklists, "alice", "", "notes"); got != "notes-1" {
		t.Errorf("uniqueID = %q, want notes-1", got)
	}
	if got := r.uniqueID(KindChecklists, "alice", "", "fresh"); got != "fresh" {
		t.Errorf("uniqueID = %q, want fresh", got)
	}
	// A different category directory is a separate namespace.
	if got := r.uniqueID(KindChecklists, "alice", "Home", "notes"); got != "notes" {
		t.Errorf("uniqueID in category = %q, want notes", got)
	}
}
