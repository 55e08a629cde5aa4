package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aruslantsev/simpletron/internal/codegen"
	"github.com/aruslantsev/simpletron/internal/ir"
	"github.com/aruslantsev/simpletron/internal/lexer"
	"github.com/aruslantsev/simpletron/internal/word"
)

func testEnv() (codegen.Env, map[int64]uint, map[string]uint) {
	consts := map[int64]uint{}
	vars := map[string]uint{"a": 250, "b": 251}
	next := uint(254)
	env := codegen.Env{
		AllocConst: func(v int64) uint {
			if addr, ok := consts[v]; ok {
				return addr
			}
			addr := next
			next--
			consts[v] = addr
			return addr
		},
		LookupVar: func(name string) (uint, bool) {
			addr, ok := vars[name]
			return addr, ok
		},
	}
	return env, consts, vars
}

func TestGenerateSimpleAddition(t *testing.T) {
	postfix, err := lexer.Tokenize("a+b")
	require.NoError(t, err)
	env, _, vars := testEnv()

	instrs, depth, err := codegen.Generate(postfix, env)
	require.NoError(t, err)
	require.Equal(t, 2, depth)

	want := []ir.Instr{
		{Op: word.Load, Operand: ir.Abs(vars["a"])},
		{Op: word.Store, Operand: ir.Slot(0)},
		{Op: word.Load, Operand: ir.Abs(vars["b"])},
		{Op: word.Store, Operand: ir.Slot(1)},
		{Op: word.Load, Operand: ir.Slot(0)},
		{Op: word.Add, Operand: ir.Slot(1)},
		{Op: word.Store, Operand: ir.Slot(0)},
		{Op: word.Load, Operand: ir.Slot(0)},
	}
	require.Equal(t, want, instrs)
}

// TestGenerateSubtractionOperandOrder pins down that a non-commutative
// operator computes left-op-right, not the reverse: postfix evaluation
// always leaves the left operand (pushed first) below the right operand
// (pushed immediately before the operator) on the stack.
func TestGenerateSubtractionOperandOrder(t *testing.T) {
	postfix, err := lexer.Tokenize("a-b")
	require.NoError(t, err)
	env, _, vars := testEnv()

	instrs, _, err := codegen.Generate(postfix, env)
	require.NoError(t, err)

	want := []ir.Instr{
		{Op: word.Load, Operand: ir.Abs(vars["a"])},
		{Op: word.Store, Operand: ir.Slot(0)},
		{Op: word.Load, Operand: ir.Abs(vars["b"])},
		{Op: word.Store, Operand: ir.Slot(1)},
		{Op: word.Load, Operand: ir.Slot(0)},
		{Op: word.Subtract, Operand: ir.Slot(1)},
		{Op: word.Store, Operand: ir.Slot(0)},
		{Op: word.Load, Operand: ir.Slot(0)},
	}
	require.Equal(t, want, instrs)
}

func TestGenerateUndefinedVariable(t *testing.T) {
	postfix, err := lexer.Tokenize("a+z")
	require.NoError(t, err)
	env, _, _ := testEnv()

	_, _, err = codegen.Generate(postfix, env)
	require.Error(t, err)
	var undef *codegen.ErrUndefinedVariable
	require.ErrorAs(t, err, &undef)
	require.Equal(t, "z", undef.Name)
}

func TestGenerateConstantReused(t *testing.T) {
	postfix, err := lexer.Tokenize("1+1")
	require.NoError(t, err)
	env, consts, _ := testEnv()

	_, _, err = codegen.Generate(postfix, env)
	require.NoError(t, err)
	require.Len(t, consts, 1)
}
