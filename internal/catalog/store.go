// Package catalog stores project snapshots in SQLite so a session can
// reopen an exported project view by name.
//
// Every snapshot is flattened into a node table (one row per device,
// group, item, software, block, or type) in depth-first order; Load
// rebuilds the snapshot.Document from those rows.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HendryAvila/tianav/internal/project"
	"github.com/HendryAvila/tianav/internal/snapshot"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ─── Types ───────────────────────────────────────────────────────────────────

// Snapshot describes one stored project view.
type Snapshot struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Project    string `json:"project"`
	Source     string `json:"source"`
	NodeCount  int    `json:"node_count"`
	ImportedAt string `json:"imported_at"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds catalog configuration. The process-wide default data dir
// comes from config.DefaultConfig.
type Config struct {
	DataDir string
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the snapshot catalog backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if cfg.DataDir == "" {
		return nil, errors.New("catalog: data dir is required")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("catalog: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "catalog.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("catalog: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT    NOT NULL UNIQUE,
			project     TEXT    NOT NULL,
			source      TEXT    NOT NULL DEFAULT '',
			node_count  INTEGER NOT NULL DEFAULT 0,
			imported_at TEXT    NOT NULL
		);

		CREATE TABLE IF NOT EXISTS nodes (
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			id          INTEGER NOT NULL,
			parent_id   INTEGER,
			kind        TEXT    NOT NULL,
			name        TEXT    NOT NULL DEFAULT '',
			type_name   TEXT    NOT NULL DEFAULT '',
			variant     TEXT    NOT NULL DEFAULT '',
			block_kind  TEXT    NOT NULL DEFAULT '',
			number      INTEGER NOT NULL DEFAULT 0,
			language    TEXT    NOT NULL DEFAULT '',
			container   INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (snapshot_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(snapshot_id, parent_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Operations ──────────────────────────────────────────────────────────────

// Save stores doc under name, replacing any snapshot with the same name.
func (s *Store) Save(name, source string, doc *snapshot.Document) (*Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("catalog: snapshot name is required")
	}
	if doc == nil {
		return nil, errors.New("catalog: document is required")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	rows := flatten(doc)
	importedAt := now()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("catalog: begin: %w", err)
	}
	defer tx.Rollback()

	if err := deleteSnapshot(tx, name); err != nil {
		return nil, fmt.Errorf("catalog: replace %q: %w", name, err)
	}

	res, err := tx.Exec(
		`INSERT INTO snapshots (name, project, source, node_count, imported_at) VALUES (?, ?, ?, ?, ?)`,
		name, doc.Name, source, len(rows), importedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("catalog: snapshot id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO nodes (snapshot_id, id, parent_id, kind, name, type_name, variant, block_kind, number, language, container)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("catalog: prepare nodes: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		var parent any
		if r.parentID >= 0 {
			parent = r.parentID
		}
		if _, err := stmt.Exec(
			id, r.id, parent, r.kind, r.name, r.typeName, r.variant,
			r.blockKind, r.number, r.language, boolInt(r.container),
		); err != nil {
			return nil, fmt.Errorf("catalog: insert node %d: %w", r.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("catalog: commit: %w", err)
	}

	return &Snapshot{
		ID:         id,
		Name:       name,
		Project:    doc.Name,
		Source:     source,
		NodeCount:  len(rows),
		ImportedAt: importedAt,
	}, nil
}

// Get returns the metadata of the snapshot called name.
func (s *Store) Get(name string) (*Snapshot, error) {
	var snap Snapshot
	err := s.db.QueryRow(
		`SELECT id, name, project, source, node_count, imported_at FROM snapshots WHERE name = ?`, name,
	).Scan(&snap.ID, &snap.Name, &snap.Project, &snap.Source, &snap.NodeCount, &snap.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, project.NotFound("snapshot", name)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: get %q: %w", name, err)
	}
	return &snap, nil
}

// Load rebuilds the document stored under name.
func (s *Store) Load(name string) (*snapshot.Document, error) {
	snap, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, parent_id, kind, name, type_name, variant, block_kind, number, language, container
		FROM nodes WHERE snapshot_id = ? ORDER BY id`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("catalog: load %q: %w", name, err)
	}
	defer rows.Close()

	var nodes []nodeRow
	for rows.Next() {
		var (
			r         nodeRow
			parent    sql.NullInt64
			container int
		)
		if err := rows.Scan(
			&r.id, &parent, &r.kind, &r.name, &r.typeName, &r.variant,
			&r.blockKind, &r.number, &r.language, &container,
		); err != nil {
			return nil, fmt.Errorf("catalog: scan node: %w", err)
		}
		r.parentID = -1
		if parent.Valid {
			r.parentID = parent.Int64
		}
		r.container = container != 0
		nodes = append(nodes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate nodes: %w", err)
	}

	doc, err := unflatten(snap.Project, nodes)
	if err != nil {
		return nil, fmt.Errorf("catalog: rebuild %q: %w", name, err)
	}
	return doc, nil
}

// List returns every stored snapshot, newest first.
func (s *Store) List() ([]Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT id, name, project, source, node_count, imported_at
		FROM snapshots ORDER BY imported_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Project, &snap.Source, &snap.NodeCount, &snap.ImportedAt); err != nil {
			return nil, fmt.Errorf("catalog: scan snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Delete removes the snapshot called name and its nodes.
func (s *Store) Delete(name string) error {
	if _, err := s.Get(name); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin: %w", err)
	}
	defer tx.Rollback()

	if err := deleteSnapshot(tx, name); err != nil {
		return fmt.Errorf("catalog: delete %q: %w", name, err)
	}
	return tx.Commit()
}

// deleteSnapshot removes nodes explicitly: foreign_keys is a
// per-connection pragma, so the cascade cannot be relied on.
func deleteSnapshot(tx *sql.Tx, name string) error {
	if _, err := tx.Exec(
		`DELETE FROM nodes WHERE snapshot_id IN (SELECT id FROM snapshots WHERE name = ?)`, name,
	); err != nil {
		return err
	}
	_, err := tx.Exec(`DELETE FROM snapshots WHERE name = ?`, name)
	return err
}

// now returns the current UTC time in the catalog's timestamp format.
func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
