package compiler

import (
	"strconv"
	"strings"
)

// statement is one parsed source line: a line number, a lowercase
// keyword, and the unparsed remainder of the line.
type statement struct {
	LineNo  int
	Keyword string
	Rest    string
}

func parseStatement(text string) (statement, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return statement{}, &SyntaxError{Reason: "expected <line-number> <keyword> ..."}
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return statement{}, &SyntaxError{Reason: "bad line number " + strconv.Quote(fields[0])}
	}
	keyword := strings.ToLower(fields[1])

	// Rest is everything after the keyword, taken from the original text
	// so that identifiers and expressions keep their original spacing.
	rest := text
	if i := strings.Index(rest, fields[0]); i >= 0 {
		rest = rest[i+len(fields[0]):]
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, fields[1]))

	return statement{LineNo: n, Keyword: keyword, Rest: rest}, nil
}

// splitArgs splits a comma-or-space separated argument list, as used by
// input and print.
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else {
		parts = strings.Fields(s)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// comparators are tried longest-match-first: "<=" and ">=" must be found
// before "<" and ">" or they would each be mistaken for two separate
// tokens (a relational operator followed by "=").
var comparators = []string{"<=", ">=", "==", "!=", "<", ">"}

// splitCompare locates the first comparator (in priority order, not
// leftmost-in-text order) in cond and splits it into its left and right
// expression texts.
func splitCompare(cond string) (lhs, cmp, rhs string, ok bool) {
	for _, c := range comparators {
		if i := strings.Index(cond, c); i >= 0 {
			return cond[:i], c, cond[i+len(c):], true
		}
	}
	return "", "", "", false
}

// splitIf parses the body of an "if <cond> goto N" statement.
func splitIf(rest string) (lhs, cmp, rhs string, target int, err error) {
	idx := strings.LastIndex(rest, "goto")
	if idx < 0 {
		return "", "", "", 0, &SyntaxError{Reason: "if without goto"}
	}
	cond := strings.TrimSpace(rest[:idx])
	targetText := strings.TrimSpace(rest[idx+len("goto"):])
	n, convErr := strconv.Atoi(targetText)
	if convErr != nil {
		return "", "", "", 0, &SyntaxError{Reason: "bad goto target " + strconv.Quote(targetText)}
	}
	lhs, cmp, rhs, ok := splitCompare(cond)
	if !ok {
		return "", "", "", 0, &SyntaxError{Reason: "if condition has no comparison operator"}
	}
	return strings.TrimSpace(lhs), cmp, strings.TrimSpace(rhs), n, nil
}

// splitFor parses the body of a "for v = a to b [step s]" statement.
func splitFor(rest string) (v, from, to, step string, err error) {
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return "", "", "", "", &SyntaxError{Reason: "for without '='"}
	}
	v = strings.TrimSpace(rest[:eq])
	tail := rest[eq+1:]

	toIdx := indexWord(tail, "to")
	if toIdx < 0 {
		return "", "", "", "", &SyntaxError{Reason: "for without 'to'"}
	}
	from = strings.TrimSpace(tail[:toIdx])
	tail = tail[toIdx+2:]

	if stepIdx := indexWord(tail, "step"); stepIdx >= 0 {
		to = strings.TrimSpace(tail[:stepIdx])
		step = strings.TrimSpace(tail[stepIdx+4:])
	} else {
		to = strings.TrimSpace(tail)
		step = ""
	}
	return v, from, to, step, nil
}

// indexWord finds word as a standalone token (bounded by whitespace or
// string edges) within s, returning -1 if absent.
func indexWord(s, word string) int {
	fields := strings.Fields(s)
	pos := 0
	for _, f := range fields {
		start := strings.Index(s[pos:], f) + pos
		if f == word {
			return start
		}
		pos = start + len(f)
	}
	return -1
}

func exprPreCheck(expr string) error {
	if strings.ContainsAny(expr, "=!<>") {
		return &SyntaxError{Reason: "expression contains a comparison character"}
	}
	hasAlnum := false
	for _, r := range expr {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' {
			hasAlnum = true
			break
		}
	}
	if !hasAlnum {
		return &SyntaxError{Reason: "expression has no operand"}
	}
	return nil
}
