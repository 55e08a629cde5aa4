// Package lexer tokenizes BASIC arithmetic expressions and converts them
// from infix to postfix (reverse-Polish) order, ready for code generation.
//
// The pipeline is four small, independently testable steps: Scan splits
// the raw text into tagged tokens, RewriteUnary turns unary +/- into an
// explicit multiplication by ±1, Validate rejects malformed token
// sequences, and Shunt runs the two-stack infix-to-postfix conversion.
// Tokenize runs all four in order.
package lexer

import (
	"strconv"
	"strings"

	"github.com/aruslantsev/simpletron/internal/token"
)

const (
	// MaxLexeme is the longest lexeme (N_tok) accepted for a single token.
	MaxLexeme = 63

	// MaxTokens is the most tokens accepted in one expression, counting
	// both the raw scan and the unary rewrite's insertions.
	MaxTokens = 512
)

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '(', ')', '+', '-', '*', '/', '%', '^':
		return true
	default:
		return false
	}
}

func isParen(r rune) bool { return r == '(' || r == ')' }
func isOperatorRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '^':
		return true
	default:
		return false
	}
}

// Scan splits expr into tagged tokens: parentheses and operators become
// single-rune tokens, and maximal runs of everything else become a single
// Number or Name token, disambiguated by whether the run is all digits.
func Scan(expr string) ([]token.Token, error) {
	var toks []token.Token
	runes := []rune(expr)
	i, n := 0, len(runes)
	for i < n {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			i++
		case isParen(r):
			toks = append(toks, token.Paren(r))
			i++
		case isOperatorRune(r):
			toks = append(toks, token.Op(r))
			i++
		default:
			start := i
			for i < n && !isSeparator(runes[i]) {
				i++
			}
			lexeme := string(runes[start:i])
			if len(lexeme) > MaxLexeme {
				return nil, errf(TokenTooLong, "%q", lexeme)
			}
			tok, err := classify(lexeme)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		}
		if len(toks) > MaxTokens {
			return nil, errf(TooManyTokens, "%d", len(toks))
		}
	}
	if len(toks) == 0 {
		return nil, errf(EmptyExpression, "")
	}
	return toks, nil
}

func classify(lexeme string) (token.Token, error) {
	if isAllDigits(lexeme) {
		v, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return token.Token{}, errf(IllegalCharacter, "bad integer literal %q", lexeme)
		}
		return token.Num(v, lexeme), nil
	}
	if !isValidName(lexeme) {
		return token.Token{}, errf(IllegalCharacter, "bad identifier %q", lexeme)
	}
	return token.Ident(lexeme), nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// RewriteUnary rewrites a leading, post-operator, or post-'(' +/- into the
// pair (±1 *), so the remaining stages never need a dedicated unary
// operator: "-7" becomes "-1 * 7" and "(-x)" becomes "( -1 * x )".
func RewriteUnary(toks []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(toks)+4)
	for i, t := range toks {
		if t.Kind == token.Operator && (t.Op == '+' || t.Op == '-') {
			unary := i == 0 ||
				toks[i-1].Kind == token.Operator ||
				toks[i-1].Kind == token.LParen
			if unary {
				sign := int64(1)
				if t.Op == '-' {
					sign = -1
				}
				out = append(out, token.Num(sign, strconv.FormatInt(sign, 10)), token.Op('*'))
				continue
			}
		}
		out = append(out, t)
	}
	if len(out) > MaxTokens {
		return nil, errf(TooManyTokens, "%d", len(out))
	}
	return out, nil
}

// Validate rejects token sequences that cannot denote a well-formed
// expression: a leading binary operator, adjacent operands, adjacent
// operators, or unbalanced parentheses.
func Validate(toks []token.Token) error {
	if len(toks) == 0 {
		return errf(EmptyExpression, "")
	}
	if toks[0].Kind == token.Operator {
		return errf(StartsWithOperator, toks[0].String())
	}
	depth := 0
	for i, t := range toks {
		switch t.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth < 0 {
				return errf(MismatchedParenthesis, "unmatched %q at token %d", ")", i)
			}
		}
		if i == 0 {
			continue
		}
		prev := toks[i-1]
		if prev.IsOperand() && t.IsOperand() {
			return errf(AdjacentIdentifiers, "%q followed by %q", prev, t)
		}
		if prev.Kind == token.Operator && t.Kind == token.Operator {
			return errf(AdjacentOperators, "%q followed by %q", prev, t)
		}
	}
	if depth != 0 {
		return errf(MismatchedParenthesis, "%d unclosed", depth)
	}
	return nil
}

// precedence returns the binding strength of operator r: higher binds
// tighter. '^' is right-associative; the rest are left-associative.
func precedence(r rune) int {
	switch r {
	case '^':
		return 3
	case '*', '/', '%':
		return 2
	case '+', '-':
		return 1
	default:
		return 0
	}
}

func rightAssociative(r rune) bool { return r == '^' }

// compare returns +1 when op1 binds tighter than op2, -1 when looser, and 0
// when equal. The original source's precedence comparator has a
// transcription bug treating '%' specially; this one does not — '%' has
// the same precedence as '*' and '/'.
func compare(op1, op2 rune) int {
	p1, p2 := precedence(op1), precedence(op2)
	switch {
	case p1 > p2:
		return 1
	case p1 < p2:
		return -1
	default:
		return 0
	}
}

// Shunt converts an infix token sequence (with unary sign already
// rewritten) into postfix order using the standard two-stack algorithm.
// Operators of equal precedence pop the stack before pushing (left
// associative), except '^' which does not pop its own kind (right
// associative).
func Shunt(toks []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(toks))
	var ops []token.Token
	popWhile := func(stop func(top token.Token) bool) {
		for len(ops) > 0 && stop(ops[len(ops)-1]) {
			out = append(out, ops[len(ops)-1])
			ops = ops[:len(ops)-1]
		}
	}
	for _, t := range toks {
		switch t.Kind {
		case token.Number, token.Name:
			out = append(out, t)
		case token.LParen:
			ops = append(ops, t)
		case token.RParen:
			popWhile(func(top token.Token) bool { return top.Kind != token.LParen })
			if len(ops) == 0 {
				return nil, errf(MismatchedParenthesis, "unmatched %q", ")")
			}
			ops = ops[:len(ops)-1] // discard the '('
		case token.Operator:
			popWhile(func(top token.Token) bool {
				if top.Kind != token.Operator {
					return false
				}
				cmp := compare(top.Op, t.Op)
				if cmp > 0 {
					return true
				}
				return cmp == 0 && !rightAssociative(t.Op)
			})
			ops = append(ops, t)
		}
	}
	popWhile(func(top token.Token) bool {
		if top.Kind == token.LParen {
			return false
		}
		return true
	})
	for _, top := range ops {
		if top.Kind == token.LParen {
			return nil, errf(MismatchedParenthesis, "unmatched %q", "(")
		}
	}
	return out, nil
}

// Tokenize runs scan, unary rewrite, validation, and shunting in sequence,
// returning expr's postfix token stream.
func Tokenize(expr string) ([]token.Token, error) {
	expr = strings.TrimSpace(expr)
	toks, err := Scan(expr)
	if err != nil {
		return nil, err
	}
	toks, err = RewriteUnary(toks)
	if err != nil {
		return nil, err
	}
	if err := Validate(toks); err != nil {
		return nil, err
	}
	return Shunt(toks)
}
