package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dkovalenko-dev/gridcalc"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	rows     INTEGER NOT NULL,
	columns  INTEGER NOT NULL,
	saved_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS cells (
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	row         INTEGER NOT NULL,
	col         INTEGER NOT NULL,
	expression  TEXT NOT NULL,
	PRIMARY KEY (document_id, row, col)
);
`

// SQLiteStore keeps named table snapshots in a SQLite database.
// Document names are unique; saving under an existing name replaces
// the previous content under a new document ID.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLiteStore opens (or creates) the database at path and ensures
// the schema exists.
func OpenSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	logger.Info("sqlite store opened", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (st *SQLiteStore) Close() error {
	return st.db.Close()
}

// Save stores the snapshot under name, replacing any previous document
// with that name. It returns the new document ID.
func (st *SQLiteStore) Save(ctx context.Context, name string, snap gridcalc.Snapshot) (uuid.UUID, error) {
	if name == "" {
		return uuid.Nil, fmt.Errorf("document name must not be empty")
	}
	if err := snap.Validate(); err != nil {
		return uuid.Nil, err
	}

	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name); err != nil {
		return uuid.Nil, fmt.Errorf("replacing document %q: %w", name, err)
	}

	id := uuid.New()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, name, rows, columns, saved_at) VALUES (?, ?, ?, ?, ?)`,
		id.String(), name, snap.Rows, snap.Columns, time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting document %q: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cells (document_id, row, col, expression) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("preparing cell insert: %w", err)
	}
	defer stmt.Close()

	for _, cell := range snap.Cells {
		if _, err := stmt.ExecContext(ctx, id.String(), cell.Row, cell.Col, cell.Expression); err != nil {
			return uuid.Nil, fmt.Errorf("inserting cell (%d,%d): %w", cell.Row, cell.Col, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("committing document %q: %w", name, err)
	}

	st.logger.Info("document saved", "name", name, "id", id.String(), "cells", len(snap.Cells))
	return id, nil
}

// Load reads the snapshot of the document with the given ID.
func (st *SQLiteStore) Load(ctx context.Context, id uuid.UUID) (gridcalc.Snapshot, error) {
	var snap gridcalc.Snapshot
	err := st.db.QueryRowContext(ctx,
		`SELECT rows, columns FROM documents WHERE id = ?`, id.String()).
		Scan(&snap.Rows, &snap.Columns)
	if err == sql.ErrNoRows {
		return gridcalc.Snapshot{}, fmt.Errorf("document %s not found", id)
	}
	if err != nil {
		return gridcalc.Snapshot{}, fmt.Errorf("loading document %s: %w", id, err)
	}

	rows, err := st.db.QueryContext(ctx,
		`SELECT row, col, expression FROM cells WHERE document_id = ? ORDER BY row, col`, id.String())
	if err != nil {
		return gridcalc.Snapshot{}, fmt.Errorf("loading cells of %s: %w", id, err)
	}
	defer rows.Close()

	snap.Cells = []gridcalc.SnapshotCell{}
	for rows.Next() {
		var cell gridcalc.SnapshotCell
		if err := rows.Scan(&cell.Row, &cell.Col, &cell.Expression); err != nil {
			return gridcalc.Snapshot{}, fmt.Errorf("scanning cell row: %w", err)
		}
		snap.Cells = append(snap.Cells, cell)
	}
	if err := rows.Err(); err != nil {
		return gridcalc.Snapshot{}, fmt.Errorf("iterating cells: %w", err)
	}

	if err := snap.Validate(); err != nil {
		return gridcalc.Snapshot{}, err
	}
	return snap, nil
}

// LoadByName reads the snapshot of the document with the given name.
func (st *SQLiteStore) LoadByName(ctx context.Context, name string) (gridcalc.Snapshot, error) {
	var id string
	err := st.db.QueryRowContext(ctx,
		`SELECT id FROM documents WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return gridcalc.Snapshot{}, fmt.Errorf("document %q not found", name)
	}
	if err != nil {
		return gridcalc.Snapshot{}, fmt.Errorf("looking up document %q: %w", name, err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return gridcalc.Snapshot{}, fmt.Errorf("document %q has invalid id %q: %w", name, id, err)
	}
	return st.Load(ctx, parsed)
}

// List returns metadata for every stored document, newest first.
func (st *SQLiteStore) List(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := st.db.QueryContext(ctx,
		`SELECT id, name, saved_at FROM documents ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var (
			id      string
			info    DocumentInfo
			savedAt time.Time
		)
		if err := rows.Scan(&id, &info.Name, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		info.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("document %q has invalid id %q: %w", info.Name, id, err)
		}
		info.SavedAt = savedAt
		docs = append(docs, info)
	}
	return docs, rows.Err()
}

// Delete removes the document with the given ID and its cells.
func (st *SQLiteStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := st.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document %s not found", id)
	}

	st.logger.Info("document deleted", "id", id.String())
	return nil
}
