package gridcalc

// TokenType represents different types of tokens in formulas
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenCellRef
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenEquals
	TokenLess
	TokenGreater
	TokenNot
	TokenAnd
	TokenOr
	TokenLeftParen
	TokenRightParen
)

// String returns a readable name for the token type, used in syntax
// error messages.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenNumber:
		return "number"
	case TokenCellRef:
		return "cell reference"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	case TokenCaret:
		return "'^'"
	case TokenEquals:
		return "'='"
	case TokenLess:
		return "'<'"
	case TokenGreater:
		return "'>'"
	case TokenNot:
		return "'not'"
	case TokenAnd:
		return "'and'"
	case TokenOr:
		return "'or'"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	default:
		return "unknown token"
	}
}

// Token represents a lexical token with position information. Pos is
// the offset into the formula body. Tokens are never mutated after
// creation; the stream always ends with an EOF token.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}
