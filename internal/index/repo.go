package index

import (
	"fmt"
	"time"
)

// DocumentRow represents a row in the documents table.
type DocumentRow struct {
	Path      string    `json:"path"`
	Kind      string    `json:"kind"` // "checklist" or "note"
	Owner     string    `json:"owner"`
	Category  string    `json:"category"`
	DocID     string    `json:"id"`
	Title     string    `json:"title"`
	ListType  string    `json:"listType,omitempty"`
	Checksum  string    `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ItemRow represents a row in the items table.
type ItemRow struct {
	ItemID    string
	Text      string
	Status    string
	Completed bool
	Position  int
	Duration  int64 // seconds
}

// UpsertDocument inserts or replaces a document and its items within a
// transaction.
func (db *DB) UpsertDocument(d DocumentRow, items []ItemRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO documents (path, kind, owner, category, doc_id, title, list_type, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			kind       = excluded.kind,
			owner      = excluded.owner,
			category   = excluded.category,
			doc_id     = excluded.doc_id,
			title      = excluded.title,
			list_type  = excluded.list_type,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, d.Path, d.Kind, d.Owner, d.Category, d.DocID, d.Title, d.ListType, d.Checksum, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	// Replace items: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM items WHERE doc_path = ?`, d.Path)
	if len(items) > 0 {
		stmt, err := tx.Prepare(`
			INSERT OR IGNORE INTO items (doc_path, item_id, text, status, completed, position, duration_seconds)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("index: prepare item insert: %w", err)
		}
		defer stmt.Close()
		for _, it := range items {
			if _, err := stmt.Exec(d.Path, it.ItemID, it.Text, it.Status, it.Completed, it.Position, it.Duration); err != nil {
				return fmt.Errorf("index: insert item: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteDocument removes a document and its items.
func (db *DB) DeleteDocument(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, _ = tx.Exec(`DELETE FROM items WHERE doc_path = ?`, path)
	_, _ = tx.Exec(`DELETE FROM documents WHERE path = ?`, path)

	return tx.Commit()
}

// AllChecksums returns path → checksum for every indexed document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Recent returns the owner's most recently updated documents, optionally
// filtered by kind ("checklist" or "note").
func (db *DB) Recent(owner, kind string, limit int) ([]DocumentRow, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT path, kind, owner, category, doc_id, title, list_type, updated_at
		FROM documents
		WHERE owner = ?`
	args := []any{owner}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY updated_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: recent: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var d DocumentRow
		if err := rows.Scan(&d.Path, &d.Kind, &d.Owner, &d.Category, &d.DocID, &d.Title, &d.ListType, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TaskSummary returns item counts per workflow status across the owner's
// task-type checklists.
func (db *DB) TaskSummary(owner string) (map[string]int, error) {
	rows, err := db.conn.Query(`
		SELECT i.status, COUNT(*)
		FROM items i
		JOIN documents d ON d.path = i.doc_path
		WHERE d.owner = ? AND d.list_type = 'task'
		GROUP BY i.status
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("index: task summary: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

// TimeTotal returns the total tracked seconds across the owner's task
// items.
func (db *DB) TimeTotal(owner string) (int64, error) {
	var total int64
	err := db.conn.QueryRow(`
		SELECT COALESCE(SUM(i.duration_seconds), 0)
		FROM items i
		JOIN documents d ON d.path = i.doc_path
		WHERE d.owner = ?
	`, owner).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("index: time total: %w", err)
	}
	return total, nil
}
