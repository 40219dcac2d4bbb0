package gridcalc

import "fmt"

// FormatError reports malformed cell-reference text, e.g. "1A" or "A0".
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid cell reference: %q", e.Input)
}

// SyntaxError reports a lexing or parsing failure. Position is the
// offset into the formula body where the failure was detected.
type SyntaxError struct {
	Message  string
	Position int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Position, e.Message)
}

// CircularReferenceError reports that a formula transitively referenced
// a cell already on the active evaluation chain.
type CircularReferenceError struct {
	Ref string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference to cell %s", e.Ref)
}

// CellReferenceError reports that the resolver could not produce a value
// for a referenced cell: the upstream cell is out of bounds, holds a
// non-numeric literal, carries an error, or failed to evaluate.
type CellReferenceError struct {
	Ref   string
	Cause error
}

func (e *CellReferenceError) Error() string {
	return fmt.Sprintf("cannot resolve cell %s: %v", e.Ref, e.Cause)
}

func (e *CellReferenceError) Unwrap() error {
	return e.Cause
}

// EvaluationError reports a domain failure during evaluation: division
// by zero, an unsupported exponent, or an operator the evaluator does
// not know (an internal invariant violation if the parser is correct).
type EvaluationError struct {
	Message string
}

func (e *EvaluationError) Error() string {
	return e.Message
}

// AppErrorCode represents gRPC-style error codes for application-level
// errors. note that we are skipping error codes that don't make sense
// for our use-case, like unauthenticated, or permission denied.
type AppErrorCode int

const (
	// OK indicates the operation completed successfully.
	OK AppErrorCode = 0

	// Unknown error. Errors raised by APIs that do not return enough
	// error information may be converted to this error.
	Unknown AppErrorCode = 2

	// InvalidArgument indicates client specified an invalid argument.
	InvalidArgument AppErrorCode = 3

	// NotFound means some requested entity (e.g., a stored document)
	// was not found.
	NotFound AppErrorCode = 5

	// FailedPrecondition indicates operation was rejected because the
	// system is not in a state required for the operation's execution.
	FailedPrecondition AppErrorCode = 9

	// OutOfRange means operation was attempted past the valid range,
	// such as addressing a cell outside the table bounds.
	OutOfRange AppErrorCode = 11

	// Internal errors. Means some invariants expected by underlying
	// system has been broken.
	Internal AppErrorCode = 13
)

// AppError represents errors at the application level (not formula
// evaluation errors, which stay cell-local).
type AppError struct {
	Code    AppErrorCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a new application error
func NewAppError(code AppErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}
