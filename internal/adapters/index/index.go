// Package index maintains a SQLite FTS5 full-text index over thought files.
// The index is derived data: it can be rebuilt from the thoughts directory
// at any time and is never consulted as a source of truth.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/mull/internal/models"
	"github.com/example/mull/internal/ports/secondary"
)

// Index implements secondary.ThoughtIndex on a SQLite database.
type Index struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at path.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure index: %w", err)
	}
	schema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS thoughts_fts USING fts5(
			path UNINDEXED,
			title,
			body
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Rebuild replaces the index contents with the given thoughts in one
// transaction.
func (x *Index) Rebuild(ctx context.Context, thoughts []*models.Thought) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin index rebuild: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM thoughts_fts"); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	for _, t := range thoughts {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO thoughts_fts (path, title, body) VALUES (?, ?, ?)",
			t.Path, t.Title, t.Body,
		); err != nil {
			return fmt.Errorf("failed to index %s: %w", t.Path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index rebuild: %w", err)
	}
	return nil
}

// Search runs an FTS5 MATCH query and returns hits best-first.
func (x *Index) Search(ctx context.Context, query string, limit int) ([]secondary.IndexHit, error) {
	if limit <= 0 {
		limit = 20
	}
	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := x.db.QueryContext(ctx, `
		SELECT path, title, snippet(thoughts_fts, 2, '', '', '…', 12)
		FROM thoughts_fts
		WHERE thoughts_fts MATCH ?
		ORDER BY rank
		LIMIT ?`,
		ftsQuery, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}
	defer rows.Close()

	var hits []secondary.IndexHit
	for rows.Next() {
		var h secondary.IndexHit
		if err := rows.Scan(&h.Path, &h.Title, &h.Snippet); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Close closes the underlying database.
func (x *Index) Close() error {
	return x.db.Close()
}

// sanitizeFTS quotes each term so user input cannot inject FTS5 query
// syntax.
func sanitizeFTS(query string) string {
	fields := strings.Fields(query)
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		if f != "" {
			quoted = append(quoted, `"`+f+`"`)
		}
	}
	return strings.Join(quoted, " ")
}
