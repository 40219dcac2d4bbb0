package gridcalc

import "fmt"

// character classification constants. slightly easier to read.
const (
	charNull     = 0
	charTab      = '\t'
	charNewline  = '\n'
	charReturn   = '\r'
	charSpace    = ' '
	charLParen   = '('
	charRParen   = ')'
	charAsterisk = '*'
	charPlus     = '+'
	charMinus    = '-'
	charSlash    = '/'
	charLess     = '<'
	charEqual    = '='
	charGreater  = '>'
	charCaret    = '^'
)

// keywordTokens maps the word operators to their token types. Keywords
// are lowercase only and must match as whole words: "nota" is not a
// 'not' followed by an identifier, it is a lexical error.
var keywordTokens = map[string]TokenType{
	"not": TokenNot,
	"and": TokenAnd,
	"or":  TokenOr,
}

// Lexer tokenizes cell formula expressions. It scans left to right,
// skipping whitespace and matching the longest applicable pattern at
// each position.
type Lexer struct {
	input  string
	runes  []rune
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given formula body (without the
// leading "=" prefix).
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		runes:  []rune(input),
		pos:    0,
		tokens: []Token{},
	}
}

// Tokenize tokenizes the entire input and returns the token stream,
// terminated by an explicit EOF token. On an unmatched character it
// fails with a SyntaxError carrying the offset and the offending rune.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.runes) {
			break
		}

		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Pos: l.pos})
	return l.tokens, nil
}

// nextToken returns the next token from the input
func (l *Lexer) nextToken() (Token, error) {
	startPos := l.pos
	ch := l.current()

	if l.isDigit(ch) {
		return l.scanNumber(), nil
	}

	// uppercase letters can only start a cell reference
	if ch >= 'A' && ch <= 'Z' {
		return l.scanCellRef()
	}

	// lowercase letters can only start a keyword operator
	if ch >= 'a' && ch <= 'z' {
		return l.scanKeyword()
	}

	switch ch {
	case charCaret:
		l.pos++
		return Token{Type: TokenCaret, Value: "^", Pos: startPos}, nil
	case charEqual:
		l.pos++
		return Token{Type: TokenEquals, Value: "=", Pos: startPos}, nil
	case charLess:
		l.pos++
		return Token{Type: TokenLess, Value: "<", Pos: startPos}, nil
	case charGreater:
		l.pos++
		return Token{Type: TokenGreater, Value: ">", Pos: startPos}, nil
	case charPlus:
		l.pos++
		return Token{Type: TokenPlus, Value: "+", Pos: startPos}, nil
	case charMinus:
		l.pos++
		return Token{Type: TokenMinus, Value: "-", Pos: startPos}, nil
	case charAsterisk:
		l.pos++
		return Token{Type: TokenStar, Value: "*", Pos: startPos}, nil
	case charSlash:
		l.pos++
		return Token{Type: TokenSlash, Value: "/", Pos: startPos}, nil
	case charLParen:
		l.pos++
		return Token{Type: TokenLeftParen, Value: "(", Pos: startPos}, nil
	case charRParen:
		l.pos++
		return Token{Type: TokenRightParen, Value: ")", Pos: startPos}, nil
	}

	return Token{}, &SyntaxError{
		Message:  fmt.Sprintf("unexpected character %q", ch),
		Position: startPos,
	}
}

// scanNumber scans an unsigned integer literal. Signs are handled by
// the parser as unary operators.
func (l *Lexer) scanNumber() Token {
	startPos := l.pos
	for l.pos < len(l.runes) && l.isDigit(l.current()) {
		l.pos++
	}
	return Token{Type: TokenNumber, Value: l.substring(startPos, l.pos), Pos: startPos}
}

// scanCellRef scans a cell reference: uppercase letters immediately
// followed by digits. Letters without a row number do not form any
// valid token.
func (l *Lexer) scanCellRef() (Token, error) {
	startPos := l.pos
	for l.pos < len(l.runes) && l.current() >= 'A' && l.current() <= 'Z' {
		l.pos++
	}

	digitsStart := l.pos
	for l.pos < len(l.runes) && l.isDigit(l.current()) {
		l.pos++
	}

	if digitsStart == l.pos {
		l.pos = startPos
		return Token{}, &SyntaxError{
			Message:  fmt.Sprintf("unexpected character %q", l.runes[startPos]),
			Position: startPos,
		}
	}

	return Token{Type: TokenCellRef, Value: l.substring(startPos, l.pos), Pos: startPos}, nil
}

// scanKeyword scans a lowercase word and matches it against the keyword
// operators. Keywords match on word boundaries only: a word character on
// either side disqualifies them, so "A1and" and "nota" are lexical
// errors, not a token followed by a keyword.
func (l *Lexer) scanKeyword() (Token, error) {
	startPos := l.pos

	if startPos > 0 && l.isWordChar(l.runes[startPos-1]) {
		return Token{}, &SyntaxError{
			Message:  fmt.Sprintf("unexpected character %q", l.runes[startPos]),
			Position: startPos,
		}
	}
	for l.pos < len(l.runes) && l.isWordChar(l.current()) {
		l.pos++
	}

	word := l.substring(startPos, l.pos)
	if tokenType, ok := keywordTokens[word]; ok {
		return Token{Type: tokenType, Value: word, Pos: startPos}, nil
	}

	l.pos = startPos
	return Token{}, &SyntaxError{
		Message:  fmt.Sprintf("unexpected character %q", l.runes[startPos]),
		Position: startPos,
	}
}

// helper methods for character navigation and classification

// substring returns a substring of the original input based on rune positions
func (l *Lexer) substring(start, end int) string {
	if start < 0 || end > len(l.runes) || start > end {
		return ""
	}
	return string(l.runes[start:end])
}

func (l *Lexer) current() rune {
	if l.pos >= len(l.runes) {
		return charNull
	}
	return l.runes[l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.runes) {
		ch := l.current()
		if ch == charSpace || ch == charTab || ch == charNewline || ch == charReturn {
			l.pos++
		} else {
			break
		}
	}
}

func (l *Lexer) isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) isWordChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		l.isDigit(ch) || ch == '_'
}
