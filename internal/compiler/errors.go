package compiler

import (
	"fmt"

	"github.com/aruslantsev/simpletron/internal/fileinput"
)

// Error wraps any compile-time failure with the source location and text
// of the offending line, so the CLI layer can print a self-contained
// diagnostic without retaining its own copy of the source.
type Error struct {
	Loc  fileinput.Location
	Text string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.Loc, e.Text, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// DuplicateLineError reports a line number bound more than once.
type DuplicateLineError struct{ Line int }

func (e *DuplicateLineError) Error() string {
	return fmt.Sprintf("duplicate line number %d", e.Line)
}

// UnresolvedLabelError reports a goto/if target with no matching line.
type UnresolvedLabelError struct{ Line int }

func (e *UnresolvedLabelError) Error() string {
	return fmt.Sprintf("unresolved label: line %d is never defined", e.Line)
}

// UnknownKeywordError reports a statement whose keyword isn't recognised.
type UnknownKeywordError struct{ Keyword string }

func (e *UnknownKeywordError) Error() string {
	return fmt.Sprintf("unknown keyword %q", e.Keyword)
}

// SyntaxError reports a malformed statement: missing operand, bad integer
// literal, bad identifier, and the like.
type SyntaxError struct{ Reason string }

func (e *SyntaxError) Error() string { return e.Reason }

// CapacityError reports the code and data regions of memory colliding, or
// an allocation exceeding the machine's address space.
type CapacityError struct{ Reason string }

func (e *CapacityError) Error() string { return e.Reason }

// ForStackError reports a next with no matching for, or a for left open
// at end of source.
type ForStackError struct{ Reason string }

func (e *ForStackError) Error() string { return e.Reason }
