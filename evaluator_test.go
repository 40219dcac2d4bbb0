package gridcalc

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
)

// mapResolver resolves references from a fixed map; unknown references
// resolve to zero, like empty cells.
func mapResolver(values map[string]string) Resolver {
	return func(ref CellReference) (*big.Rat, error) {
		text, ok := values[ref.String()]
		if !ok {
			return new(big.Rat), nil
		}
		v, ok := new(big.Rat).SetString(text)
		if !ok {
			return nil, fmt.Errorf("bad test value %q", text)
		}
		return v, nil
	}
}

func evalString(t *testing.T, expression string, values map[string]string) (*big.Rat, error) {
	t.Helper()
	ast, err := ParseExpression(expression)
	if err != nil {
		t.Fatalf("ParseExpression(%q) failed: %v", expression, err)
	}
	e := NewEvaluator(mapResolver(values), nil)
	return e.Evaluate(ast, nil)
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		expression string
		want       string
	}{
		{"2 + 3", "5"},
		{"2 - 5", "-3"},
		{"4 * 5", "20"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"-5 + 3", "-2"},
		{"--5", "5"},
		{"+7", "7"},

		// division rounds the exact quotient to three places
		{"5 / 2", "2.5"},
		{"1 / 3", "0.333"},
		{"2 / 3", "0.667"},
		{"10 / 4", "2.5"},
		{"-1 / 3", "-0.333"},
		{"1 / 8", "0.125"},

		// fractional intermediates flow through exactly
		{"1 / 2 + 1 / 2", "1"},
		{"10 / 3 * 3", "9.999"},

		// power
		{"2 ^ 10", "1024"},
		{"2 ^ 0", "1"},
		{"0 ^ 0", "1"},
		{"2 ^ 3 ^ 2", "512"},
		{"(1 / 2) ^ 2", "0.25"},

		// comparison and logic produce 0/1
		{"1 < 2", "1"},
		{"2 < 1", "0"},
		{"3 > 2", "1"},
		{"2 = 2", "1"},
		{"2 = 3", "0"},
		{"1 and 2", "1"},
		{"1 and 0", "0"},
		{"0 or 5", "1"},
		{"0 or 0", "0"},
		{"not 0", "1"},
		{"not 7", "0"},
		{"not 0 and 1", "1"},
	}

	for _, tt := range tests {
		got, err := evalString(t, tt.expression, nil)
		if err != nil {
			t.Errorf("evaluate(%q) failed: %v", tt.expression, err)
			continue
		}
		if FormatValue(got) != tt.want {
			t.Errorf("evaluate(%q) = %s, want %s", tt.expression, FormatValue(got), tt.want)
		}
	}
}

func TestEvaluateLargeExponent(t *testing.T) {
	got, err := evalString(t, "2 ^ 100", nil)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if FormatValue(got) != "1267650600228229401496703205376" {
		t.Errorf("2^100 = %s, precision lost", FormatValue(got))
	}
}

// Evaluation recursion follows the tree depth; deeply nested input must
// evaluate correctly well beyond realistic formula depth.
func TestEvaluateDeeplyNestedExpression(t *testing.T) {
	const depth = 2000

	parens := strings.Repeat("(", depth) + "7" + strings.Repeat(")", depth)
	got, err := evalString(t, parens, nil)
	if err != nil {
		t.Fatalf("evaluate failed at depth %d: %v", depth, err)
	}
	if FormatValue(got) != "7" {
		t.Errorf("nested parens = %s, want 7", FormatValue(got))
	}

	// an odd chain of unary minuses negates exactly once
	minuses := strings.Repeat("-", depth+1) + "5"
	got, err = evalString(t, minuses, nil)
	if err != nil {
		t.Fatalf("evaluate failed on %d chained minuses: %v", depth+1, err)
	}
	if FormatValue(got) != "-5" {
		t.Errorf("chained minuses = %s, want -5", FormatValue(got))
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		expression string
		message    string
	}{
		{"1 / 0", "division by zero"},
		{"5 / (3 - 3)", "division by zero"},
		{"2 ^ -1", "negative exponent is not supported"},
		{"2 ^ (1 / 2)", "fractional exponent is not supported"},
	}

	for _, tt := range tests {
		_, err := evalString(t, tt.expression, nil)
		if err == nil {
			t.Errorf("evaluate(%q) should fail", tt.expression)
			continue
		}
		var evalErr *EvaluationError
		if !errors.As(err, &evalErr) {
			t.Errorf("evaluate(%q) returned %T, want *EvaluationError", tt.expression, err)
			continue
		}
		if evalErr.Message != tt.message {
			t.Errorf("evaluate(%q) error = %q, want %q", tt.expression, evalErr.Message, tt.message)
		}
	}
}

func TestEvaluateShortCircuit(t *testing.T) {
	// the right side would divide by zero; short-circuit must skip it
	tests := []struct {
		expression string
		want       string
	}{
		{"0 and (1 / 0)", "0"},
		{"1 or (1 / 0)", "1"},
	}

	for _, tt := range tests {
		got, err := evalString(t, tt.expression, nil)
		if err != nil {
			t.Errorf("evaluate(%q) failed: %v", tt.expression, err)
			continue
		}
		if FormatValue(got) != tt.want {
			t.Errorf("evaluate(%q) = %s, want %s", tt.expression, FormatValue(got), tt.want)
		}
	}
}

func TestEvaluateCellReferences(t *testing.T) {
	values := map[string]string{
		"A1": "10",
		"B2": "5/2",
	}

	tests := []struct {
		expression string
		want       string
	}{
		{"A1", "10"},
		{"A1 + 1", "11"},
		{"A1 * B2", "25"},
		{"C3", "0"}, // unknown cells resolve to zero
		{"A1 > C3", "1"},
	}

	for _, tt := range tests {
		got, err := evalString(t, tt.expression, values)
		if err != nil {
			t.Errorf("evaluate(%q) failed: %v", tt.expression, err)
			continue
		}
		if FormatValue(got) != tt.want {
			t.Errorf("evaluate(%q) = %s, want %s", tt.expression, FormatValue(got), tt.want)
		}
	}
}

func TestEvaluateSelfReference(t *testing.T) {
	ast, err := ParseExpression("A1 + 1")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}

	e := NewEvaluator(mapResolver(nil), nil)
	current := CellReference{Column: "A", Row: 1}

	_, err = e.Evaluate(ast, &current)
	var circular *CircularReferenceError
	if !errors.As(err, &circular) {
		t.Fatalf("Evaluate returned %v, want *CircularReferenceError", err)
	}
	if circular.Ref != "A1" {
		t.Errorf("cycle reported at %s, want A1", circular.Ref)
	}
}

func TestEvaluateResolverErrorIsWrapped(t *testing.T) {
	cause := fmt.Errorf("upstream failure")
	resolver := func(ref CellReference) (*big.Rat, error) {
		return nil, cause
	}

	ast, err := ParseExpression("B1 * 2")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}

	_, err = NewEvaluator(resolver, nil).Evaluate(ast, nil)
	var refErr *CellReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("Evaluate returned %v, want *CellReferenceError", err)
	}
	if refErr.Ref != "B1" {
		t.Errorf("error names cell %s, want B1", refErr.Ref)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should expose the resolver failure via errors.Is")
	}
}

func TestEvaluateVisitedSetResets(t *testing.T) {
	ast, err := ParseExpression("A1")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}

	e := NewEvaluator(mapResolver(map[string]string{"A1": "3"}), nil)
	current := CellReference{Column: "A", Row: 1}

	if _, err := e.Evaluate(ast, &current); err == nil {
		t.Fatal("self-reference should fail")
	}

	// a following evaluation without the seed must succeed
	got, err := e.Evaluate(ast, nil)
	if err != nil {
		t.Fatalf("second Evaluate failed: %v", err)
	}
	if FormatValue(got) != "3" {
		t.Errorf("second Evaluate = %s, want 3", FormatValue(got))
	}
}

func TestEvaluateSiblingReferencesAreLegal(t *testing.T) {
	// the same cell on two branches of one expression is not a cycle
	got, err := evalString(t, "A1 + A1", map[string]string{"A1": "4"})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if FormatValue(got) != "8" {
		t.Errorf("A1 + A1 = %s, want 8", FormatValue(got))
	}
}
