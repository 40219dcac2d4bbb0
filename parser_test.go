package gridcalc

import (
	"errors"
	"strings"
	"testing"
)

func TestParseExpressionShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// precedence
		{"2+3*4", "(2+(3*4))"},
		{"2*3+4", "((2*3)+4)"},
		{"2*3^2", "(2*(3^2))"},
		{"1+2=3", "((1+2)=3)"},
		{"1=2 and 3=4", "((1=2) and (3=4))"},
		{"1 and 2 or 3", "((1 and 2) or 3)"},

		// associativity
		{"1-2-3", "((1-2)-3)"},
		{"8/4/2", "((8/4)/2)"},
		{"2^3^2", "(2^(3^2))"},

		// unary
		{"-5", "(-5)"},
		{"--5", "(-(-5))"},
		{"-2^2", "((-2)^2)"},
		{"not not 1", "(not (not 1))"},
		{"not 1 = 2", "((not 1)=2)"},
		{"+A1", "(+A1)"},

		// grouping
		{"(1+2)*3", "((1+2)*3)"},
		{"((7))", "7"},
		{"A1 * (B2 + 4)", "(A1*(B2+4))"},
	}

	for _, tt := range tests {
		node, err := ParseExpression(tt.input)
		if err != nil {
			t.Errorf("ParseExpression(%q) failed: %v", tt.input, err)
			continue
		}
		if got := node.String(); got != tt.want {
			t.Errorf("ParseExpression(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseExpressionErrors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"1 +",
		"* 2",
		"(1 + 2",
		"1 + 2)",
		"1 2",
		"A1 B2",
		"1 < 2 < 3", // comparison does not chain
		"1 = 2 = 3",
		"A1and B1", // keyword glued to a cell reference
		"123or 1",
		"()",
		"1 + + ",
		"not",
	}

	for _, input := range inputs {
		_, err := ParseExpression(input)
		if err == nil {
			t.Errorf("ParseExpression(%q) should fail", input)
			continue
		}
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("ParseExpression(%q) returned %T, want *SyntaxError", input, err)
		}
	}
}

func TestParseExpressionTrailingInput(t *testing.T) {
	_, err := ParseExpression("1 + 2 3")

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("ParseExpression returned %v, want *SyntaxError", err)
	}
	if syntaxErr.Position != 6 {
		t.Errorf("error position = %d, want 6", syntaxErr.Position)
	}
}

// Recursion depth follows expression nesting, so deeply nested input
// must parse without blowing the stack at depths well beyond anything a
// grid formula reaches.
func TestParseDeeplyNestedExpression(t *testing.T) {
	const depth = 2000

	parens := strings.Repeat("(", depth) + "7" + strings.Repeat(")", depth)
	node, err := ParseExpression(parens)
	if err != nil {
		t.Fatalf("ParseExpression failed at depth %d: %v", depth, err)
	}
	if node.String() != "7" {
		t.Errorf("nested parens collapsed to %s, want 7", node.String())
	}

	minuses := strings.Repeat("-", depth) + "5"
	node, err = ParseExpression(minuses)
	if err != nil {
		t.Fatalf("ParseExpression failed on %d chained minuses: %v", depth, err)
	}
	unary, ok := node.(*UnaryNode)
	if !ok || unary.Op != UnaryMinus {
		t.Errorf("chained minuses parsed as %T, want leading *UnaryNode minus", node)
	}
}

func TestParseExpressionLargeNumber(t *testing.T) {
	node, err := ParseExpression("123456789012345678901234567890")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}

	number, ok := node.(*NumberNode)
	if !ok {
		t.Fatalf("parsed %T, want *NumberNode", node)
	}
	if number.Value.String() != "123456789012345678901234567890" {
		t.Errorf("value = %s, precision lost", number.Value)
	}
}
