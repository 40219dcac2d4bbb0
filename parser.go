package gridcalc

import (
	"fmt"
	"math/big"
	"strings"
)

// Parser parses a token stream into an AST via recursive descent.
//
// Grammar, precedence low to high:
//
//	expression     ::= orExpr
//	orExpr         ::= andExpr ("or" andExpr)*
//	andExpr        ::= comparison ("and" comparison)*
//	comparison     ::= additive (("=" | "<" | ">") additive)?
//	additive       ::= multiplicative (("+" | "-") multiplicative)*
//	multiplicative ::= power (("*" | "/") power)*
//	power          ::= unary ("^" power)?
//	unary          ::= ("+" | "-" | "not") unary | primary
//	primary        ::= NUMBER | CELL_REF | "(" expression ")"
//
// Comparison deliberately does not chain: "1 < 2 < 3" is a syntax
// error, not a chained comparison.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser over a token stream.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens, pos: 0}
}

// ParseExpression lexes and parses a formula body (the text after the
// "=" prefix) into an AST. Parsing is pure: it never consults other
// cells. Any unconsumed token after the top-level expression is a
// syntax error.
func ParseExpression(expression string) (Node, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &SyntaxError{Message: "empty expression", Position: 0}
	}

	lexer := NewLexer(expression)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}

	p := NewParser(tokens)
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.Type != TokenEOF {
		return nil, &SyntaxError{
			Message:  fmt.Sprintf("unexpected token after expression: %s", tok.Value),
			Position: tok.Pos,
		}
	}

	return node, nil
}

// current returns the token at the cursor; the stream is EOF-terminated
// so the cursor never runs past the end.
func (p *Parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

// expect consumes the current token, failing if it is not of the
// required type.
func (p *Parser) expect(tokenType TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tokenType {
		return Token{}, &SyntaxError{
			Message:  fmt.Sprintf("expected %s, found %s", tokenType, tok.Type),
			Position: tok.Pos,
		}
	}
	p.pos++
	return tok, nil
}

// parseOr handles logical OR (lowest precedence)
func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: BinOr, Left: left, Right: right}
	}

	return left, nil
}

// parseAnd handles logical AND
func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: BinAnd, Left: left, Right: right}
	}

	return left, nil
}

// parseComparison handles =, < and >. At most one comparison per level.
func (p *Parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	var op BinaryOp
	switch p.current().Type {
	case TokenEquals:
		op = BinEqual
	case TokenLess:
		op = BinLess
	case TokenGreater:
		op = BinGreater
	default:
		return left, nil
	}

	p.advance()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	return &BinaryNode{Op: op, Left: left, Right: right}, nil
}

// parseAdditive handles addition and subtraction
func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryOp
		switch p.current().Type {
		case TokenPlus:
			op = BinAdd
		case TokenMinus:
			op = BinSubtract
		default:
			return left, nil
		}

		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
}

// parseMultiplicative handles multiplication and division
func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryOp
		switch p.current().Type {
		case TokenStar:
			op = BinMultiply
		case TokenSlash:
			op = BinDivide
		default:
			return left, nil
		}

		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
}

// parsePower handles exponentiation
func (p *Parser) parsePower() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	// right-associative
	if p.current().Type == TokenCaret {
		p.advance()
		right, err := p.parsePower() // recursive for right-associativity
		if err != nil {
			return nil, err
		}
		return &BinaryNode{Op: BinPower, Left: left, Right: right}, nil
	}

	return left, nil
}

// parseUnary handles prefix operators, right-recursive so chains like
// "--5" and "not not A1" parse naturally.
func (p *Parser) parseUnary() (Node, error) {
	var op UnaryOp
	switch p.current().Type {
	case TokenPlus:
		op = UnaryPlus
	case TokenMinus:
		op = UnaryMinus
	case TokenNot:
		op = UnaryNot
	default:
		return p.parsePrimary()
	}

	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &UnaryNode{Op: op, Operand: operand}, nil
}

// parsePrimary handles primary expressions (literals, references,
// parentheses)
func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current()

	switch tok.Type {
	case TokenNumber:
		p.advance()
		value, ok := new(big.Int).SetString(tok.Value, 10)
		if !ok {
			return nil, &SyntaxError{
				Message:  fmt.Sprintf("invalid number: %s", tok.Value),
				Position: tok.Pos,
			}
		}
		return &NumberNode{Value: value}, nil

	case TokenCellRef:
		p.advance()
		ref, err := ParseReference(tok.Value)
		if err != nil {
			return nil, &SyntaxError{Message: err.Error(), Position: tok.Pos}
		}
		return &CellRefNode{Ref: ref}, nil

	case TokenLeftParen:
		p.advance()
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return node, nil

	default:
		return nil, &SyntaxError{
			Message:  fmt.Sprintf("expected number, cell reference or '(', found %s", tok.Type),
			Position: tok.Pos,
		}
	}
}
