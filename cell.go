package gridcalc

import (
	"fmt"
	"math/big"
	"strings"
)

// Display markers produced by DisplayValue.
const (
	DisplayError   = "ERROR"
	DisplayPending = "?"
	DisplayTrue    = "TRUE"
	DisplayFalse   = "FALSE"
)

// booleanOperators are the substrings that mark a formula as boolean
// for display. The test is a plain substring scan of the lowercased
// formula body, preserved from the reference behavior.
var booleanOperators = []string{"and", "or", "not", "=", "<", ">"}

// Cell holds one grid cell: the raw expression text, the parsed AST for
// formula cells, the cached value or error from the last evaluation
// pass, and a dirty flag. Cached value and error are mutually
// exclusive; both may be unset before the first evaluation.
type Cell struct {
	expression  string
	ast         Node
	cachedValue *big.Rat
	errMessage  string
	dirty       bool
}

// NewCell creates an empty, dirty cell.
func NewCell() *Cell {
	return &Cell{dirty: true}
}

// Expression returns the raw cell text.
func (c *Cell) Expression() string {
	return c.expression
}

// SetExpression replaces the cell text. Assigning identical text is a
// no-op; otherwise the AST, cached value and error are invalidated and
// the cell is marked dirty.
func (c *Cell) SetExpression(expression string) {
	if c.expression == expression {
		return
	}
	c.expression = expression
	c.Invalidate()
}

// AST returns the parsed formula tree, or nil for non-formula cells and
// formulas that failed to parse.
func (c *Cell) AST() Node {
	return c.ast
}

// SetAST stores the parsed formula tree.
func (c *Cell) SetAST(ast Node) {
	c.ast = ast
}

// CachedValue returns the value from the last evaluation, or nil.
func (c *Cell) CachedValue() *big.Rat {
	return c.cachedValue
}

// SetCachedValue stores an evaluation result, clearing any previous
// error and the dirty flag.
func (c *Cell) SetCachedValue(value *big.Rat) {
	c.cachedValue = value
	c.errMessage = ""
	c.dirty = false
}

// Err returns the stored error message, "" when the cell has none.
func (c *Cell) Err() string {
	return c.errMessage
}

// HasError reports whether the cell carries an error.
func (c *Cell) HasError() bool {
	return c.errMessage != ""
}

// SetError stores an error message, clearing any previous cached value
// and the dirty flag.
func (c *Cell) SetError(message string) {
	c.errMessage = message
	c.cachedValue = nil
	c.dirty = false
}

// ClearError drops a stored error message without touching the cached
// value.
func (c *Cell) ClearError() {
	c.errMessage = ""
}

// IsDirty reports whether the cached state is stale relative to the
// current expression.
func (c *Cell) IsDirty() bool {
	return c.dirty
}

// Invalidate drops the AST, cached value and error, and marks the cell
// dirty.
func (c *Cell) Invalidate() {
	c.ast = nil
	c.cachedValue = nil
	c.errMessage = ""
	c.dirty = true
}

// InvalidateValue drops only the evaluation result, keeping the AST.
func (c *Cell) InvalidateValue() {
	c.cachedValue = nil
	c.errMessage = ""
	c.dirty = true
}

// IsEmpty reports whether the cell holds no meaningful text.
func (c *Cell) IsEmpty() bool {
	return strings.TrimSpace(c.expression) == ""
}

// IsFormula reports whether the cell text is a formula (starts with
// "=").
func (c *Cell) IsFormula() bool {
	return strings.HasPrefix(strings.TrimSpace(c.expression), "=")
}

// IsLiteral reports whether the cell holds a non-formula value,
// interpreted verbatim when referenced by other formulas.
func (c *Cell) IsLiteral() bool {
	return !c.IsEmpty() && !c.IsFormula()
}

// FormulaBody returns the formula text without the "=" prefix, or ""
// for non-formula cells.
func (c *Cell) FormulaBody() string {
	if !c.IsFormula() {
		return ""
	}
	trimmed := strings.TrimSpace(c.expression)
	return strings.TrimSpace(trimmed[1:])
}

// IsBooleanExpression reports whether the formula text contains a
// comparison or logical operator, which switches the display to
// TRUE/FALSE.
func (c *Cell) IsBooleanExpression() bool {
	if !c.IsFormula() {
		return false
	}
	body := strings.ToLower(c.FormulaBody())
	for _, op := range booleanOperators {
		if strings.Contains(body, op) {
			return true
		}
	}
	return false
}

// DisplayValue returns the presentable string for the cell: the error
// marker, raw literal text, TRUE/FALSE for boolean formulas, the
// cached numeric value, "" for empty cells, or the pending marker for
// formulas that have not been evaluated yet.
func (c *Cell) DisplayValue() string {
	if c.HasError() {
		return DisplayError
	}

	if c.IsLiteral() {
		return strings.TrimSpace(c.expression)
	}

	if c.cachedValue != nil {
		if c.IsBooleanExpression() {
			if isTruthy(c.cachedValue) {
				return DisplayTrue
			}
			return DisplayFalse
		}
		return FormatValue(c.cachedValue)
	}

	if c.IsEmpty() {
		return ""
	}

	return DisplayPending
}

func (c *Cell) String() string {
	return fmt.Sprintf("Cell(expression=%q, value=%v)", c.expression, c.cachedValue)
}
