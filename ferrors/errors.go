// Package ferrors defines the error taxonomy shared across the
// loader, matcher, and diff synthesizer: a parse error for malformed
// input, and an invariant error for internal-consistency failures.
// A "no-op" (spec.md's third class) is never an error value — it is
// simply a nil return — and so has no type here.
package ferrors

import "fmt"

// ParseError is returned by the loader when a block description is
// malformed, references a dangling or cyclic id, or otherwise cannot
// be turned into a well-formed AST. NodeID names the offending block
// id when one is known.
type ParseError struct {
	NodeID string
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("parse error at %q: %s", e.NodeID, e.Msg)
	}
	return fmt.Sprintf("parse error: %s", e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParse builds a ParseError naming the offending id.
func NewParse(id, format string, args ...any) *ParseError {
	return &ParseError{NodeID: id, Msg: fmt.Sprintf(format, args...)}
}

// InvariantError reports a fatal internal-consistency failure: a
// child of the wrong variant, a duplicated mapping, a delete of a
// non-leaf node, or a node missing at apply time. These indicate a
// bug in the caller's edit script or in this library, not a
// recoverable condition.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Msg)
}

// NewInvariant builds an InvariantError.
func NewInvariant(format string, args ...any) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}
