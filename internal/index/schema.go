// Package index provides a SQLite-backed metadata index over the markdown
// document tree. The files stay the source of truth: the index is derived,
// rebuilt by Sync, kept current by Watch, and safe to delete.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	path       TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	owner      TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	doc_id     TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	list_type  TEXT NOT NULL DEFAULT '',
	checksum   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
	doc_path         TEXT NOT NULL,
	item_id          TEXT NOT NULL,
	text             TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT '',
	completed        INTEGER NOT NULL DEFAULT 0,
	position         INTEGER NOT NULL DEFAULT 0,
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (doc_path, item_id)
);

CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents(owner, kind);
CREATE INDEX IF NOT EXISTS idx_items_doc ON items(doc_path);
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
