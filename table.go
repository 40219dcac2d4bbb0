package gridcalc

import (
	"fmt"
	"sort"
)

// CellCoord addresses a cell by zero-based row and column indices.
type CellCoord struct {
	Row int
	Col int
}

// PositionedCell pairs a cell with its coordinates.
type PositionedCell struct {
	Row  int
	Col  int
	Cell *Cell
}

// Table is a sparse collection of cells addressed by zero-based
// (row, col). Reading an absent in-bounds cell lazily materializes an
// empty Cell and stores it, so call sites can rely on identity of the
// returned cell across reads. Cells outside the current bounds are
// pruned on resize-down.
type Table struct {
	rows    int
	columns int
	cells   map[CellCoord]*Cell
}

// NewTable creates a table with the given dimensions, both at least 1.
func NewTable(rows, columns int) (*Table, error) {
	if rows < 1 || columns < 1 {
		return nil, NewAppError(InvalidArgument,
			fmt.Sprintf("table dimensions must be >= 1, got %dx%d", rows, columns))
	}
	return &Table{
		rows:    rows,
		columns: columns,
		cells:   make(map[CellCoord]*Cell),
	}, nil
}

// Rows returns the row count.
func (t *Table) Rows() int {
	return t.rows
}

// Columns returns the column count.
func (t *Table) Columns() int {
	return t.columns
}

// Resize changes the table dimensions. Cells that fall outside the new
// bounds are removed; the content of in-bounds cells is untouched.
func (t *Table) Resize(rows, columns int) error {
	if rows < 1 || columns < 1 {
		return NewAppError(InvalidArgument,
			fmt.Sprintf("table dimensions must be >= 1, got %dx%d", rows, columns))
	}

	if rows < t.rows || columns < t.columns {
		for coord := range t.cells {
			if coord.Row >= rows || coord.Col >= columns {
				delete(t.cells, coord)
			}
		}
	}

	t.rows = rows
	t.columns = columns
	return nil
}

// Cell returns the cell at (row, col), materializing an empty cell on
// first access. Fails with an OutOfRange error for indices outside the
// table bounds.
func (t *Table) Cell(row, col int) (*Cell, error) {
	if err := t.checkBounds(row, col); err != nil {
		return nil, err
	}

	coord := CellCoord{Row: row, Col: col}
	cell, exists := t.cells[coord]
	if !exists {
		cell = NewCell()
		t.cells[coord] = cell
	}
	return cell, nil
}

// CellByReference returns the cell addressed by a CellReference.
func (t *Table) CellByReference(ref CellReference) (*Cell, error) {
	row, col := ref.ToIndices()
	return t.Cell(row, col)
}

// SetExpression assigns expression text to the cell at (row, col).
func (t *Table) SetExpression(row, col int, expression string) error {
	cell, err := t.Cell(row, col)
	if err != nil {
		return err
	}
	cell.SetExpression(expression)
	return nil
}

// ClearCell empties the cell at (row, col) in place, so references to
// the materialized cell stay valid across the clear.
func (t *Table) ClearCell(row, col int) error {
	if err := t.checkBounds(row, col); err != nil {
		return err
	}

	coord := CellCoord{Row: row, Col: col}
	if cell, exists := t.cells[coord]; exists {
		cell.SetExpression("")
	}
	return nil
}

// ClearAll drops the entire sparse cell map.
func (t *Table) ClearAll() {
	t.cells = make(map[CellCoord]*Cell)
}

// NonEmptyCells returns all non-empty cells with their coordinates, in
// row-major order for deterministic iteration.
func (t *Table) NonEmptyCells() []PositionedCell {
	result := make([]PositionedCell, 0, len(t.cells))
	for coord, cell := range t.cells {
		if !cell.IsEmpty() {
			result = append(result, PositionedCell{Row: coord.Row, Col: coord.Col, Cell: cell})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Row != result[j].Row {
			return result[i].Row < result[j].Row
		}
		return result[i].Col < result[j].Col
	})
	return result
}

// InvalidateAll invalidates every materialized cell, dropping ASTs,
// values and errors.
func (t *Table) InvalidateAll() {
	for _, cell := range t.cells {
		cell.Invalidate()
	}
}

// InvalidateValues drops cached values and errors on every materialized
// cell but keeps parsed ASTs, so a following evaluation pass can
// recompute without re-parsing.
func (t *Table) InvalidateValues() {
	for _, cell := range t.cells {
		cell.InvalidateValue()
	}
}

func (t *Table) checkBounds(row, col int) error {
	if row < 0 || row >= t.rows {
		return NewAppError(OutOfRange,
			fmt.Sprintf("row index %d outside table bounds (%d rows)", row, t.rows))
	}
	if col < 0 || col >= t.columns {
		return NewAppError(OutOfRange,
			fmt.Sprintf("column index %d outside table bounds (%d columns)", col, t.columns))
	}
	return nil
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(rows=%d, columns=%d, cells=%d)", t.rows, t.columns, len(t.cells))
}
