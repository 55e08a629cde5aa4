// Package ir defines the compiler's intermediate instruction
// representation: one entry per emitted word, carrying an operand that is
// either already resolved or a pending fixup to be filled in by the
// linker pass.
//
// This replaces the OR-into-a-zero-field back-patch scheme of the
// original translator with an explicit sum type: a StackSlot or LineRef
// operand is replaced by an Absolute one in the linker pass before it is
// lowered to a word, so a
// partially-linked instruction cannot silently be executed with a zero
// operand.
package ir

import "github.com/aruslantsev/simpletron/internal/word"

// OperandKind tags how an Operand's Value should be interpreted.
type OperandKind int

const (
	// None is used by instructions that ignore their operand (NOP, HALT).
	None OperandKind = iota
	// Absolute is a fully resolved memory address.
	Absolute
	// StackSlot is a pending fixup: Value is an evaluation-stack slot
	// index, resolved at link time to dp_final - 1 - Value (dp_final being
	// the lowest allocated data address).
	StackSlot
	// LineRef is a pending fixup: Value is a source line number, resolved
	// at link time to that LINE symbol's bound address.
	LineRef
)

// Operand is an instruction's operand field before linking.
type Operand struct {
	Kind  OperandKind
	Value int
}

// Abs builds a resolved operand.
func Abs(addr uint) Operand { return Operand{Kind: Absolute, Value: int(addr)} }

// Slot builds a pending stack-slot operand.
func Slot(i int) Operand { return Operand{Kind: StackSlot, Value: i} }

// LineNum builds a pending line-reference operand.
func LineNum(line int) Operand { return Operand{Kind: LineRef, Value: line} }

// Instr is one not-yet-linked instruction.
type Instr struct {
	Op      word.Opcode
	Operand Operand
}

// Resolved reports whether Operand no longer needs a linker fixup.
func (in Instr) Resolved() bool {
	return in.Operand.Kind == None || in.Operand.Kind == Absolute
}
