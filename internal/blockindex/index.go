// Package blockindex records Deepnote blocks from many documents in SQLite so
// that ids, sorting keys and content shared across documents can be found.
package blockindex

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/deepnote-bridge/internal"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS blocks (
	document      TEXT NOT NULL,
	notebook_id   TEXT NOT NULL,
	notebook_name TEXT NOT NULL DEFAULT '',
	position      INTEGER NOT NULL,
	block_id      TEXT NOT NULL,
	block_type    TEXT NOT NULL,
	sorting_key   TEXT NOT NULL,
	fingerprint   TEXT NOT NULL,
	PRIMARY KEY (document, notebook_id, position)
);
CREATE INDEX IF NOT EXISTS idx_blocks_block_id ON blocks(block_id);
CREATE INDEX IF NOT EXISTS idx_blocks_sorting_key ON blocks(notebook_id, sorting_key);
CREATE INDEX IF NOT EXISTS idx_blocks_fingerprint ON blocks(fingerprint);
`

// Entry is one indexed block
type Entry struct {
	Document     string
	NotebookID   string
	NotebookName string
	Position     int
	BlockID      string
	BlockType    string
	SortingKey   string
	Fingerprint  string
}

// Collision groups entries sharing a key
type Collision struct {
	Key     string
	Entries []Entry
}

// Index is a SQLite-backed block index
type Index struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at path
func Open(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &IndexError{Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &IndexError{Op: "open", Err: err}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &IndexError{Op: "open", Err: fmt.Errorf("database ping failed: %w", err)}
	}

	ix, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return ix, nil
}

// New wraps an open database, creating the schema
func New(db *sql.DB) (*Index, error) {
	// a single connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		return nil, &IndexError{Op: "migrate", Err: err}
	}
	return &Index{db: db}, nil
}

// Close closes the database
func (ix *Index) Close() error {
	return ix.db.Close()
}

// IndexDocument replaces every row recorded for docPath with the blocks of file
// and returns the number of blocks written
func (ix *Index) IndexDocument(docPath string, file *internal.DeepnoteFile) (int, error) {
	if file == nil {
		return 0, &IndexError{Op: "index", Err: fmt.Errorf("document is nil")}
	}

	tx, err := ix.db.Begin()
	if err != nil {
		return 0, &IndexError{Op: "index", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM blocks WHERE document = ?", docPath); err != nil {
		return 0, &IndexError{Op: "index", Err: err}
	}

	stmt, err := tx.Prepare(`INSERT INTO blocks
		(document, notebook_id, notebook_name, position, block_id, block_type, sorting_key, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, &IndexError{Op: "index", Err: err}
	}
	defer stmt.Close()

	count := 0
	for _, nb := range file.Project.Notebooks {
		for pos := range nb.Blocks {
			block := &nb.Blocks[pos]
			if _, err := stmt.Exec(docPath, nb.ID, nb.Name, pos, block.ID, block.Type, block.SortingKey, internal.BlockFingerprint(block)); err != nil {
				return 0, &IndexError{Op: "index", Err: fmt.Errorf("block %s: %w", block.ID, err)}
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &IndexError{Op: "index", Err: err}
	}
	internal.LogDebug("Indexed %d block(s) from %s", count, docPath)
	return count, nil
}

// RemoveDocument drops every row recorded for docPath
func (ix *Index) RemoveDocument(docPath string) error {
	if _, err := ix.db.Exec("DELETE FROM blocks WHERE document = ?", docPath); err != nil {
		return &IndexError{Op: "remove", Err: err}
	}
	return nil
}

const selectEntries = `SELECT document, notebook_id, notebook_name, position, block_id, block_type, sorting_key, fingerprint FROM blocks`

// Lookup returns every indexed occurrence of a block id
func (ix *Index) Lookup(blockID string) ([]Entry, error) {
	entries, err := ix.queryEntries(selectEntries+" WHERE block_id = ? ORDER BY document, notebook_id, position", blockID)
	if err != nil {
		return nil, &IndexError{Op: "lookup", Err: err}
	}
	return entries, nil
}

// Count returns the number of indexed blocks
func (ix *Index) Count() (int, error) {
	var n int
	if err := ix.db.QueryRow("SELECT COUNT(*) FROM blocks").Scan(&n); err != nil {
		return 0, &IndexError{Op: "count", Err: err}
	}
	return n, nil
}

// DuplicateIDs returns block ids recorded more than once
func (ix *Index) DuplicateIDs() ([]Collision, error) {
	collisions, err := ix.collisions(
		"SELECT block_id FROM blocks GROUP BY block_id HAVING COUNT(*) > 1 ORDER BY block_id",
		selectEntries+" WHERE block_id = ? ORDER BY document, notebook_id, position",
	)
	if err != nil {
		return nil, &IndexError{Op: "duplicate-ids", Err: err}
	}
	return collisions, nil
}

// SortingKeyCollisions returns sorting keys used by more than one block of
// the same notebook id, within or across documents
func (ix *Index) SortingKeyCollisions() ([]Collision, error) {
	rows, err := ix.db.Query(`SELECT notebook_id, sorting_key FROM blocks
		GROUP BY notebook_id, sorting_key HAVING COUNT(*) > 1
		ORDER BY notebook_id, sorting_key`)
	if err != nil {
		return nil, &IndexError{Op: "sorting-keys", Err: err}
	}

	type pair struct{ notebookID, sortingKey string }
	var pairs []pair
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.notebookID, &p.sortingKey); err != nil {
			rows.Close()
			return nil, &IndexError{Op: "sorting-keys", Err: err}
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, &IndexError{Op: "sorting-keys", Err: err}
	}
	rows.Close()

	collisions := make([]Collision, 0, len(pairs))
	for _, p := range pairs {
		entries, err := ix.queryEntries(selectEntries+" WHERE notebook_id = ? AND sorting_key = ? ORDER BY document, position", p.notebookID, p.sortingKey)
		if err != nil {
			return nil, &IndexError{Op: "sorting-keys", Err: err}
		}
		collisions = append(collisions, Collision{Key: p.notebookID + "/" + p.sortingKey, Entries: entries})
	}
	return collisions, nil
}

// DuplicateContent returns content fingerprints shared by blocks of different documents
func (ix *Index) DuplicateContent() ([]Collision, error) {
	collisions, err := ix.collisions(
		"SELECT fingerprint FROM blocks GROUP BY fingerprint HAVING COUNT(DISTINCT document) > 1 ORDER BY fingerprint",
		selectEntries+" WHERE fingerprint = ? ORDER BY document, notebook_id, position",
	)
	if err != nil {
		return nil, &IndexError{Op: "duplicate-content", Err: err}
	}
	return collisions, nil
}

func (ix *Index) collisions(keyQuery, entryQuery string) ([]Collision, error) {
	rows, err := ix.db.Query(keyQuery)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	collisions := make([]Collision, 0, len(keys))
	for _, key := range keys {
		entries, err := ix.queryEntries(entryQuery, key)
		if err != nil {
			return nil, err
		}
		collisions = append(collisions, Collision{Key: key, Entries: entries})
	}
	return collisions, nil
}

func (ix *Index) queryEntries(query string, args ...any) ([]Entry, error) {
	rows, err := ix.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Document, &e.NotebookID, &e.NotebookName, &e.Position, &e.BlockID, &e.BlockType, &e.SortingKey, &e.Fingerprint); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return entries, nil
}
