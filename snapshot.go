package gridcalc

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Snapshot is the persistence image of a table: dimensions plus the
// flat list of non-empty cell expressions. Loading a snapshot replays
// expression assignment followed by a full evaluation pass, so cached
// values and errors are re-derived, never stored.
type Snapshot struct {
	Rows    int            `json:"rows" yaml:"rows"`
	Columns int            `json:"columns" yaml:"columns"`
	Cells   []SnapshotCell `json:"cells" yaml:"cells"`
}

// SnapshotCell is one non-empty cell of a snapshot, addressed by
// zero-based indices.
type SnapshotCell struct {
	Row        int    `json:"row" yaml:"row"`
	Col        int    `json:"col" yaml:"col"`
	Expression string `json:"expression" yaml:"expression"`
}

// Validate checks the structural invariants of a decoded snapshot.
func (snap Snapshot) Validate() error {
	if snap.Rows < 1 {
		return NewAppError(InvalidArgument, "snapshot field 'rows' must be >= 1")
	}
	if snap.Columns < 1 {
		return NewAppError(InvalidArgument, "snapshot field 'columns' must be >= 1")
	}

	for _, cell := range snap.Cells {
		if cell.Row < 0 || cell.Row >= snap.Rows || cell.Col < 0 || cell.Col >= snap.Columns {
			return NewAppError(InvalidArgument,
				fmt.Sprintf("snapshot cell (%d,%d) outside the %dx%d table",
					cell.Row, cell.Col, snap.Rows, snap.Columns))
		}
	}
	return nil
}

// WriteJSON encodes the snapshot as indented JSON.
func (snap Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// ReadSnapshotJSON decodes and validates a JSON snapshot.
func ReadSnapshotJSON(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, NewAppError(InvalidArgument, fmt.Sprintf("invalid snapshot JSON: %v", err))
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// WriteYAML encodes the snapshot as YAML.
func (snap Snapshot) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(snap)
}

// ReadSnapshotYAML decodes and validates a YAML snapshot.
func ReadSnapshotYAML(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, NewAppError(InvalidArgument, fmt.Sprintf("invalid snapshot YAML: %v", err))
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Export captures the current table as a snapshot. Only non-empty
// cells are listed, in row-major order.
func (s *TableService) Export() Snapshot {
	snap := Snapshot{
		Rows:    s.table.Rows(),
		Columns: s.table.Columns(),
		Cells:   []SnapshotCell{},
	}

	for _, pc := range s.table.NonEmptyCells() {
		snap.Cells = append(snap.Cells, SnapshotCell{
			Row:        pc.Row,
			Col:        pc.Col,
			Expression: pc.Cell.Expression(),
		})
	}
	return snap
}

// Load replaces the current table with the snapshot's content: the
// table is rebuilt, every expression is replayed (cell-local syntax
// errors are recorded on their cells, not returned), and one full
// evaluation pass runs.
func (s *TableService) Load(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	s.logger.Info("loading table snapshot", "rows", snap.Rows, "columns", snap.Columns, "cells", len(snap.Cells))

	table, err := NewTable(snap.Rows, snap.Columns)
	if err != nil {
		return err
	}
	s.table = table

	for _, cell := range snap.Cells {
		// syntax errors stay on the cell; the load itself proceeds
		_ = s.SetCellExpression(cell.Row, cell.Col, cell.Expression)
	}

	s.CalculateAll()
	return nil
}
