package gridcalc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
)

// TableService coordinates parsing-on-edit and the whole-table
// evaluation pass: Idle -> Parsing -> Evaluating -> Idle, driven
// entirely by explicit calls. The service is the only mutator of the
// underlying table and performs no internal locking; hosts driving it
// from multiple goroutines must serialize all mutating calls.
type TableService struct {
	table     *Table
	evaluator *Evaluator
	logger    *slog.Logger
}

// NewTableService creates a service with a fresh table of the given
// dimensions. A nil logger discards all output; the service keeps no
// process-wide state.
func NewTableService(rows, columns int, logger *slog.Logger) (*TableService, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	table, err := NewTable(rows, columns)
	if err != nil {
		return nil, err
	}

	s := &TableService{
		table:  table,
		logger: logger,
	}
	s.evaluator = NewEvaluator(s.resolveCellValue, logger)
	return s, nil
}

// Table exposes the underlying table for read access and display.
func (s *TableService) Table() *Table {
	return s.table
}

// CreateTable replaces the current table with a fresh one.
func (s *TableService) CreateTable(rows, columns int) error {
	table, err := NewTable(rows, columns)
	if err != nil {
		return err
	}
	s.logger.Info("creating table", "rows", rows, "columns", columns)
	s.table = table
	return nil
}

// ResizeTable changes the table dimensions, pruning out-of-bounds
// cells. Cached values are invalidated but parsed ASTs survive, so a
// following CalculateAll re-derives every result against the new
// bounds.
func (s *TableService) ResizeTable(rows, columns int) error {
	s.logger.Info("resizing table", "rows", rows, "columns", columns)
	if err := s.table.Resize(rows, columns); err != nil {
		return err
	}
	s.table.InvalidateValues()
	return nil
}

// ClearAll drops every cell of the table.
func (s *TableService) ClearAll() {
	s.logger.Info("clearing all cells")
	s.table.ClearAll()
}

// SetCellExpression stores expression text at (row, col). Empty text
// clears the cell's cached state; a bare literal is stored verbatim and
// never parsed; a formula (leading "=") is parsed immediately and any
// syntax error is recorded on the cell and returned. Values are not
// computed here — run CalculateAll for that.
func (s *TableService) SetCellExpression(row, col int, expression string) error {
	s.logger.Debug("setting expression", "row", row, "col", col, "expression", expression)

	cell, err := s.table.Cell(row, col)
	if err != nil {
		return err
	}
	cell.SetExpression(expression)

	if cell.IsEmpty() {
		cell.InvalidateValue()
		return nil
	}

	if cell.IsLiteral() {
		cell.SetAST(nil)
		cell.InvalidateValue()
		return nil
	}

	// formula: parse now, evaluate later
	ast, err := ParseExpression(cell.FormulaBody())
	if err != nil {
		s.logger.Warn("formula parse failed", "row", row, "col", col, "err", err)
		cell.SetError(fmt.Sprintf("syntax error: %v", err))
		return err
	}

	// a no-op assignment of identical text keeps the previous cached
	// value; only the error state is refreshed
	cell.SetAST(ast)
	cell.ClearError()
	return nil
}

// CalculateAll runs one full evaluation pass: every non-empty formula
// cell with a successfully parsed AST is evaluated, seeding cycle
// detection with the cell's own reference. Errors are cell-local; a
// failing cell never aborts the pass, and previous errors are re-derived
// rather than kept.
func (s *TableService) CalculateAll() {
	s.logger.Info("calculating all cells")

	for _, pc := range s.table.NonEmptyCells() {
		if pc.Cell.IsFormula() && pc.Cell.AST() != nil {
			s.calculateCell(pc.Row, pc.Col, pc.Cell)
		}
	}
}

// calculateCell evaluates a single formula cell, storing exactly one of
// value or error.
func (s *TableService) calculateCell(row, col int, cell *Cell) {
	ref := ReferenceFromIndices(row, col)

	value, err := s.evaluator.Evaluate(cell.AST(), &ref)
	if err != nil {
		var circular *CircularReferenceError
		message := err.Error()
		if errors.As(err, &circular) {
			message = fmt.Sprintf("circular reference: %v", err)
		}
		s.logger.Warn("cell evaluation failed", "cell", ref.String(), "err", err)
		cell.SetError(message)
		return
	}

	s.logger.Debug("cell evaluated", "cell", ref.String(), "value", FormatValue(value))
	cell.SetCachedValue(value)
}

// EvaluateExpression parses and evaluates a standalone expression
// against the current table without storing it in any cell. A leading
// "=" is accepted and ignored.
func (s *TableService) EvaluateExpression(expression string) (*big.Rat, error) {
	body := strings.TrimSpace(expression)
	body = strings.TrimPrefix(body, "=")

	ast, err := ParseExpression(body)
	if err != nil {
		return nil, err
	}
	return s.evaluator.Evaluate(ast, nil)
}

// resolveCellValue is the evaluator's resolver callback. Empty cells
// resolve to zero; literal cells to their integer value; formula cells
// recurse into the evaluator, sharing the active visited set. Cells
// outside the table bounds (for example after a resize-down) are an
// error, not a silent zero.
func (s *TableService) resolveCellValue(ref CellReference) (*big.Rat, error) {
	cell, err := s.table.CellByReference(ref)
	if err != nil {
		return nil, err
	}

	if cell.HasError() {
		return nil, fmt.Errorf("cell %s has an error: %s", ref, cell.Err())
	}

	if cell.IsEmpty() {
		return new(big.Rat), nil
	}

	if cell.IsLiteral() {
		literal := strings.TrimSpace(cell.Expression())
		n, ok := new(big.Int).SetString(literal, 10)
		if !ok {
			return nil, fmt.Errorf("cell %s holds a non-numeric literal: %s", ref, literal)
		}
		return new(big.Rat).SetInt(n), nil
	}

	if cell.AST() == nil {
		return nil, fmt.Errorf("cell %s has not been parsed", ref)
	}
	return s.evaluator.eval(cell.AST())
}
