// Package index maintains an ephemeral SQLite mirror of the bookmark file
// for ad-hoc SQL queries. The text file stays the source of truth; the
// mirror is rebuilt whenever it drifts and can be deleted at any time.
package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/bmtool/bm/internal/bookmark"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS bookmarks (
  pos    INTEGER PRIMARY KEY,
  key    TEXT NOT NULL,
  target TEXT NOT NULL,
  tags   TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS idx_bookmarks_key ON bookmarks(key)`,
	`CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
)`,
}

const metaSourceHash = "source_hash"

// Index is an open handle to the mirror database.
type Index struct {
	db *sql.DB
}

// Open opens the index database at dbPath, creating it and its schema if
// needed.
func Open(dbPath string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating index schema: %w", err)
		}
	}
	return &Index{db: db}, nil
}

// Close releases the database handle.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// SourceHash returns the SHA-256 of the bookmark file at path. A missing
// file hashes like an empty one.
func SourceHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return hex.EncodeToString(sha256.New().Sum(nil)), nil
		}
		return "", fmt.Errorf("opening store file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing store file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Stale reports whether the mirror no longer matches the bookmark file at
// path. A mirror that was never built is stale.
func (ix *Index) Stale(path string) (bool, error) {
	current, err := SourceHash(path)
	if err != nil {
		return true, err
	}

	var stored string
	err = ix.db.QueryRow("SELECT value FROM meta WHERE key = ?", metaSourceHash).Scan(&stored)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("reading index metadata: %w", err)
	}
	return current != stored, nil
}

// Rebuild clears the mirror and repopulates it from the records, stamping
// it with sourceHash. Returns the number of records mirrored.
func (ix *Index) Rebuild(bookmarks []bookmark.Bookmark, sourceHash string) (int, error) {
	tx, err := ix.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return 0, fmt.Errorf("clearing index: %w", err)
	}

	for i, b := range bookmarks {
		_, err := tx.Exec(
			"INSERT INTO bookmarks (pos, key, target, tags) VALUES (?, ?, ?, ?)",
			i+1, b.Key, b.Target, strings.Join(b.Tags, " "),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i+1, err)
		}
	}

	_, err = tx.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		metaSourceHash, sourceHash,
	)
	if err != nil {
		return 0, fmt.Errorf("stamping index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(bookmarks), nil
}

// Query runs a read-only SQL statement against the mirror and returns one
// map per row.
func (ix *Index) Query(query string) ([]map[string]any, error) {
	rows, err := ix.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		record := make(map[string]any, len(cols))
		for i, col := range cols {
			record[col] = values[i]
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
