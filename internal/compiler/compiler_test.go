package compiler_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aruslantsev/simpletron/internal/compiler"
	"github.com/aruslantsev/simpletron/internal/word"
)

func compile(t *testing.T, src string) ([]word.Word, error) {
	t.Helper()
	return compiler.New().Compile("test.bas", strings.NewReader(src))
}

func TestCompileProducesFullSizeImage(t *testing.T) {
	mem, err := compile(t, "10 end\n")
	require.NoError(t, err)
	require.Len(t, mem, word.Size)
}

func TestDuplicateLineNumberFails(t *testing.T) {
	_, err := compile(t, "10 end\n10 end\n")
	require.Error(t, err)
	var dup *compiler.DuplicateLineError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, 10, dup.Line)
}

func TestUnresolvedLabelFails(t *testing.T) {
	_, err := compile(t, "10 goto 99\n20 end\n")
	require.Error(t, err)
	var unresolved *compiler.UnresolvedLabelError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, 99, unresolved.Line)
}

func TestUnknownKeywordFails(t *testing.T) {
	_, err := compile(t, "10 frobnicate a\n")
	require.Error(t, err)
	var unk *compiler.UnknownKeywordError
	require.ErrorAs(t, err, &unk)
	require.Equal(t, "frobnicate", unk.Keyword)
}

func TestForWithoutNextFails(t *testing.T) {
	_, err := compile(t, "10 for i = 1 to 5\n20 end\n")
	require.Error(t, err)
	var fs *compiler.ForStackError
	require.ErrorAs(t, err, &fs)
}

func TestNextWithoutForFails(t *testing.T) {
	_, err := compile(t, "10 next\n")
	require.Error(t, err)
	var fs *compiler.ForStackError
	require.ErrorAs(t, err, &fs)
}

func TestLetWithoutEqualsFails(t *testing.T) {
	_, err := compile(t, "10 let x\n")
	require.Error(t, err)
	var se *compiler.SyntaxError
	require.ErrorAs(t, err, &se)
}

func TestUndefinedVariableInExpressionFails(t *testing.T) {
	_, err := compile(t, "10 let x = y + 1\n")
	require.Error(t, err)
}

func TestErrorNamesOffendingLine(t *testing.T) {
	_, err := compile(t, "10 end\n20 goto 999\n")
	require.Error(t, err)
	var cerr *compiler.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, 2, cerr.Loc.Line)
	require.Equal(t, "20 goto 999", cerr.Text)
}

func TestBlankAndRemLinesProduceNoCode(t *testing.T) {
	mem1, err := compile(t, "10 end\n")
	require.NoError(t, err)
	mem2, err := compile(t, "\n10 rem a comment\n\n20 end\n")
	require.NoError(t, err)
	require.Equal(t, mem1, mem2)
}
