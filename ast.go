package gridcalc

import (
	"fmt"
	"math/big"
)

// UnaryOp represents unary operators in AST nodes
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "not"
	default:
		return "?"
	}
}

// BinaryOp represents binary operators in AST nodes
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSubtract
	BinMultiply
	BinDivide
	BinPower
	BinEqual
	BinLess
	BinGreater
	BinAnd
	BinOr
)

func (op BinaryOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSubtract:
		return "-"
	case BinMultiply:
		return "*"
	case BinDivide:
		return "/"
	case BinPower:
		return "^"
	case BinEqual:
		return "="
	case BinLess:
		return "<"
	case BinGreater:
		return ">"
	case BinAnd:
		return "and"
	case BinOr:
		return "or"
	default:
		return "?"
	}
}

// Node is the closed set of formula AST variants: number literal, cell
// reference, unary operation, binary operation. The unexported marker
// method seals the set so the evaluator's type switch stays exhaustive.
// Trees are immutable once built and strictly tree-shaped; cycles can
// only occur in the reference graph across cells, never within a tree.
type Node interface {
	node()
	String() string
}

// NumberNode is an arbitrary-precision integer literal.
type NumberNode struct {
	Value *big.Int
}

// CellRefNode references another cell of the grid by name.
type CellRefNode struct {
	Ref CellReference
}

// UnaryNode applies a prefix operator to its operand.
type UnaryNode struct {
	Op      UnaryOp
	Operand Node
}

// BinaryNode applies an infix operator to two operands.
type BinaryNode struct {
	Op    BinaryOp
	Left  Node
	Right Node
}

func (*NumberNode) node()  {}
func (*CellRefNode) node() {}
func (*UnaryNode) node()   {}
func (*BinaryNode) node()  {}

func (n *NumberNode) String() string {
	return n.Value.String()
}

func (n *CellRefNode) String() string {
	return n.Ref.String()
}

func (n *UnaryNode) String() string {
	if n.Op == UnaryNot {
		return fmt.Sprintf("(not %s)", n.Operand)
	}
	return fmt.Sprintf("(%s%s)", n.Op, n.Operand)
}

func (n *BinaryNode) String() string {
	if n.Op == BinAnd || n.Op == BinOr {
		return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
	}
	return fmt.Sprintf("(%s%s%s)", n.Left, n.Op, n.Right)
}
