package lexer

import "fmt"

// Reason tags why an expression was rejected, matching the tokenizer's
// documented failure modes.
type Reason int

const (
	// StartsWithOperator: the expression opens with a binary operator.
	StartsWithOperator Reason = iota
	// AdjacentIdentifiers: two operands appear with no operator between them.
	AdjacentIdentifiers
	// AdjacentOperators: two binary operators appear with no operand between them.
	AdjacentOperators
	// MismatchedParenthesis: parentheses do not balance.
	MismatchedParenthesis
	// TokenTooLong: a lexeme exceeds MaxLexeme characters.
	TokenTooLong
	// TooManyTokens: the expression exceeds MaxTokens tokens.
	TooManyTokens
	// IllegalCharacter: a character cannot start any valid token.
	IllegalCharacter
	// EmptyExpression: the expression contains no tokens at all.
	EmptyExpression
	// StackUnbalanced: code generation found more or fewer than one value left.
	StackUnbalanced
)

var reasonText = map[Reason]string{
	StartsWithOperator:    "starts-with-operator",
	AdjacentIdentifiers:   "adjacent-identifiers",
	AdjacentOperators:     "adjacent-operators",
	MismatchedParenthesis: "mismatched-parenthesis",
	TokenTooLong:          "token-too-long",
	TooManyTokens:         "too-many-tokens",
	IllegalCharacter:      "illegal-character",
	EmptyExpression:       "empty-expression",
	StackUnbalanced:       "stack-unbalanced",
}

func (r Reason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Error reports a rejected expression, naming the reason and the offending
// lexeme when one is available.
type Error struct {
	Reason Reason
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Reason.String()
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func errf(reason Reason, format string, args ...interface{}) *Error {
	return &Error{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
