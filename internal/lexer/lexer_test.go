package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aruslantsev/simpletron/internal/lexer"
	"github.com/aruslantsev/simpletron/internal/token"
)

func postfixString(t *testing.T, toks []token.Token) []string {
	t.Helper()
	var out []string
	for _, tok := range toks {
		out = append(out, tok.String())
	}
	return out
}

func TestTokenizePrecedence(t *testing.T) {
	cases := []struct {
		expr string
		want []string
	}{
		{"2+3*4", []string{"2", "3", "4", "*", "+"}},
		{"(2+3)*4", []string{"2", "3", "+", "4", "*"}},
		{"2^3^2", []string{"2", "3", "2", "^", "^"}},
		{"a+b*c", []string{"a", "b", "c", "*", "+"}},
	}
	for _, tc := range cases {
		got, err := lexer.Tokenize(tc.expr)
		require.NoError(t, err, tc.expr)
		require.Equal(t, tc.want, postfixString(t, got), tc.expr)
	}
}

func TestTokenizeUnarySign(t *testing.T) {
	cases := []struct {
		expr string
		want []string
	}{
		{"-7", []string{"-1", "7", "*"}},
		{"-2+3*4", []string{"-1", "2", "*", "3", "4", "*", "+"}},
		{"(-x)", []string{"-1", "x", "*"}},
		{"3*-4", []string{"3", "-1", "*", "4", "*"}},
		{"3--4", []string{"3", "-1", "4", "*", "-"}},
	}
	for _, tc := range cases {
		got, err := lexer.Tokenize(tc.expr)
		require.NoError(t, err, tc.expr)
		require.Equal(t, tc.want, postfixString(t, got), tc.expr)
	}
}

func TestTokenizeModPrecedence(t *testing.T) {
	got, err := lexer.Tokenize("5+6%4")
	require.NoError(t, err)
	require.Equal(t, []string{"5", "6", "4", "%", "+"}, postfixString(t, got))
}

func TestTokenizeRejectsStartsWithOperator(t *testing.T) {
	_, err := lexer.Tokenize("*3+4")
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, lexer.StartsWithOperator, lexErr.Reason)
}

func TestTokenizeRejectsAdjacentIdentifiers(t *testing.T) {
	_, err := lexer.Tokenize("a b")
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, lexer.AdjacentIdentifiers, lexErr.Reason)
}

func TestTokenizeRejectsAdjacentOperators(t *testing.T) {
	_, err := lexer.Tokenize("3 + * 4")
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, lexer.AdjacentOperators, lexErr.Reason)
}

func TestTokenizeRejectsMismatchedParens(t *testing.T) {
	for _, expr := range []string{"(1+2", "1+2)", "((1+2)"} {
		_, err := lexer.Tokenize(expr)
		require.Error(t, err, expr)
		var lexErr *lexer.Error
		require.ErrorAs(t, err, &lexErr)
		require.Equal(t, lexer.MismatchedParenthesis, lexErr.Reason, expr)
	}
}

func TestTokenizeRejectsEmpty(t *testing.T) {
	_, err := lexer.Tokenize("   ")
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, lexer.EmptyExpression, lexErr.Reason)
}

func TestTokenizeRejectsTokenTooLong(t *testing.T) {
	long := make([]byte, lexer.MaxLexeme+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := lexer.Tokenize(string(long))
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, lexer.TokenTooLong, lexErr.Reason)
}
