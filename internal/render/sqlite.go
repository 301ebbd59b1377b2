package render

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvp-joe/dirmap/internal/hierarchy"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	root_dir     TEXT NOT NULL,
	project_type TEXT NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS nodes (
	run_id   TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	name     TEXT NOT NULL,
	is_root  INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, name)
);

CREATE TABLE IF NOT EXISTS edges (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	parent TEXT NOT NULL,
	child  TEXT NOT NULL,
	PRIMARY KEY (run_id, parent, child)
);

CREATE INDEX IF NOT EXISTS idx_edges_child ON edges(run_id, child);
`

// RunInfo describes the build a SQLite export belongs to.
type RunInfo struct {
	RootDir     string
	ProjectType string
}

// SQLiteWriter appends hierarchy exports to a SQLite database. Each export
// is a run with its own id; earlier runs are kept.
type SQLiteWriter struct {
	db     *sql.DB
	ownsDB bool // true if we opened the connection, false if shared
}

// NewSQLiteWriter opens (creating if needed) the database at dbPath and
// ensures the schema exists.
func NewSQLiteWriter(dbPath string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &SQLiteWriter{db: db, ownsDB: true}
	if err := w.init(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

// NewSQLiteWriterWithDB creates a writer on an existing connection. The
// caller owns the connection.
func NewSQLiteWriterWithDB(db *sql.DB) (*SQLiteWriter, error) {
	w := &SQLiteWriter{db: db}
	if err := w.init(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *SQLiteWriter) init() error {
	if _, err := w.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := w.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection if owned by this writer.
func (w *SQLiteWriter) Close() error {
	if !w.ownsDB || w.db == nil {
		return nil
	}
	return w.db.Close()
}

// Write stores h as a new run in a single transaction and returns the run id.
func (w *SQLiteWriter) Write(run RunInfo, h hierarchy.Map) (string, error) {
	runID := uuid.New().String()

	tx, err := w.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	_, err = sq.Insert("runs").
		Columns("id", "root_dir", "project_type", "created_at").
		Values(runID, run.RootDir, run.ProjectType, time.Now().UTC().Format(time.RFC3339)).
		RunWith(tx).
		Exec()
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	roots := make(map[string]bool, len(h))
	for name := range h {
		roots[name] = true
	}
	for _, name := range h.Names() {
		_, err := sq.Insert("nodes").
			Columns("run_id", "name", "is_root").
			Values(runID, name, boolToInt(roots[name])).
			RunWith(tx).
			Exec()
		if err != nil {
			return "", fmt.Errorf("failed to insert node %s: %w", name, err)
		}
	}

	for _, e := range h.Edges() {
		_, err := sq.Insert("edges").
			Columns("run_id", "parent", "child").
			Values(runID, e.Parent, e.Child).
			RunWith(tx).
			Exec()
		if err != nil {
			return "", fmt.Errorf("failed to insert edge %s -> %s: %w", e.Parent, e.Child, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return runID, nil
}

// ReadEdges returns the edges stored for runID, ordered by parent then child.
func (w *SQLiteWriter) ReadEdges(runID string) ([]hierarchy.Edge, error) {
	rows, err := sq.Select("parent", "child").
		From("edges").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("parent", "child").
		RunWith(w.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()

	var edges []hierarchy.Edge
	for rows.Next() {
		var e hierarchy.Edge
		if err := rows.Scan(&e.Parent, &e.Child); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
