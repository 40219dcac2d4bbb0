package gridcalc

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
)

// Resolver supplies the value of a referenced cell during evaluation.
// It is provided by the orchestration layer and may recursively invoke
// the evaluator for formula cells; the evaluator's visited set spans
// those nested calls, which is what makes cross-cell cycle detection
// work.
type Resolver func(ref CellReference) (*big.Rat, error)

// Evaluator walks a formula AST and computes its value as a single
// exhaustive switch over the node variants. The visited set guards the
// active reference chain of one top-level Evaluate call; it is reset at
// the start of every call, so an Evaluator must not be shared between
// concurrently running evaluations.
//
// Recursion depth follows expression nesting and the cell reference
// chain; pathologically deep input can exhaust the goroutine stack.
type Evaluator struct {
	resolve  Resolver
	logger   *slog.Logger
	visiting map[string]struct{}
}

// NewEvaluator creates an evaluator backed by the given resolver. A nil
// logger discards all output.
func NewEvaluator(resolve Resolver, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Evaluator{
		resolve:  resolve,
		logger:   logger,
		visiting: make(map[string]struct{}),
	}
}

// Evaluate computes the value of ast. current, when non-nil, seeds the
// cycle-detection set so a formula referencing its own cell fails with
// a CircularReferenceError.
func (e *Evaluator) Evaluate(ast Node, current *CellReference) (*big.Rat, error) {
	clear(e.visiting)
	if current != nil {
		e.visiting[current.String()] = struct{}{}
	}

	value, err := e.eval(ast)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("expression evaluated", "value", FormatValue(value))
	return value, nil
}

// eval dispatches on the node variant. The default arm is unreachable
// as long as the parser only emits the documented node set.
func (e *Evaluator) eval(node Node) (*big.Rat, error) {
	switch n := node.(type) {
	case *NumberNode:
		return new(big.Rat).SetInt(n.Value), nil
	case *CellRefNode:
		return e.evalCellRef(n)
	case *UnaryNode:
		return e.evalUnary(n)
	case *BinaryNode:
		return e.evalBinary(n)
	default:
		return nil, &EvaluationError{Message: fmt.Sprintf("unknown AST node %T", node)}
	}
}

// evalCellRef resolves a cell reference. The reference stays in the
// visited set only while its resolution is in flight, so sibling
// branches may legally revisit the same cell; only the active call
// chain is protected.
func (e *Evaluator) evalCellRef(n *CellRefNode) (*big.Rat, error) {
	key := n.Ref.String()

	if _, active := e.visiting[key]; active {
		return nil, &CircularReferenceError{Ref: key}
	}

	e.visiting[key] = struct{}{}
	value, err := e.resolve(n.Ref)
	delete(e.visiting, key)

	if err != nil {
		return nil, &CellReferenceError{Ref: key, Cause: err}
	}
	return value, nil
}

func (e *Evaluator) evalUnary(n *UnaryNode) (*big.Rat, error) {
	operand, err := e.eval(n.Operand)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case UnaryPlus:
		return operand, nil
	case UnaryMinus:
		return new(big.Rat).Neg(operand), nil
	case UnaryNot:
		// not: 0 -> 1, nonzero -> 0
		return boolValue(!isTruthy(operand)), nil
	default:
		return nil, &EvaluationError{Message: fmt.Sprintf("unknown unary operator: %s", n.Op)}
	}
}

func (e *Evaluator) evalBinary(n *BinaryNode) (*big.Rat, error) {
	// and/or short-circuit: the right operand is only evaluated when
	// the left side does not already decide the result
	switch n.Op {
	case BinAnd:
		left, err := e.eval(n.Left)
		if err != nil {
			return nil, err
		}
		if !isTruthy(left) {
			return boolValue(false), nil
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return nil, err
		}
		return boolValue(isTruthy(right)), nil

	case BinOr:
		left, err := e.eval(n.Left)
		if err != nil {
			return nil, err
		}
		if isTruthy(left) {
			return boolValue(true), nil
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return nil, err
		}
		return boolValue(isTruthy(right)), nil
	}

	left, err := e.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case BinAdd:
		return new(big.Rat).Add(left, right), nil

	case BinSubtract:
		return new(big.Rat).Sub(left, right), nil

	case BinMultiply:
		return new(big.Rat).Mul(left, right), nil

	case BinDivide:
		if right.Sign() == 0 {
			return nil, &EvaluationError{Message: "division by zero"}
		}
		quotient := new(big.Rat).Quo(left, right)
		return roundRat(quotient, divisionScale), nil

	case BinPower:
		return e.evalPower(left, right)

	case BinEqual:
		return boolValue(left.Cmp(right) == 0), nil

	case BinLess:
		return boolValue(left.Cmp(right) < 0), nil

	case BinGreater:
		return boolValue(left.Cmp(right) > 0), nil

	default:
		return nil, &EvaluationError{Message: fmt.Sprintf("unknown binary operator: %s", n.Op)}
	}
}

// evalPower computes base^exponent exactly. The exponent must be a
// non-negative integer; the base may be fractional (a prior division
// result), in which case numerator and denominator are raised
// separately.
func (e *Evaluator) evalPower(base, exponent *big.Rat) (*big.Rat, error) {
	if exponent.Sign() < 0 {
		return nil, &EvaluationError{Message: "negative exponent is not supported"}
	}
	if !exponent.IsInt() {
		return nil, &EvaluationError{Message: "fractional exponent is not supported"}
	}

	exp := exponent.Num()
	num := new(big.Int).Exp(base.Num(), exp, nil)
	den := new(big.Int).Exp(base.Denom(), exp, nil)
	return new(big.Rat).SetFrac(num, den), nil
}
