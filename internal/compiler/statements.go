package compiler

import (
	"strings"

	"github.com/aruslantsev/simpletron/internal/codegen"
	"github.com/aruslantsev/simpletron/internal/ir"
	"github.com/aruslantsev/simpletron/internal/lexer"
	"github.com/aruslantsev/simpletron/internal/symtab"
	"github.com/aruslantsev/simpletron/internal/word"
)

// compileLine parses and compiles one non-empty source line: binding its
// line number, then dispatching on keyword.
func (c *Compiler) compileLine(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	stmt, err := parseStatement(text)
	if err != nil {
		return err
	}
	if _, found := c.table.Search(symtab.Line, symtab.NumKey(stmt.LineNo)); found {
		return &DuplicateLineError{Line: stmt.LineNo}
	}
	c.table.Add(symtab.Line, symtab.NumKey(stmt.LineNo), c.ip())
	c.tracef("line %d: %s @%d", stmt.LineNo, stmt.Keyword, c.ip())

	switch stmt.Keyword {
	case "rem":
		return nil
	case "input":
		return c.compileInput(stmt.Rest)
	case "print":
		return c.compilePrint(stmt.Rest)
	case "let":
		return c.compileLet(stmt.Rest)
	case "goto":
		return c.compileGoto(stmt.Rest)
	case "if":
		return c.compileIf(stmt.Rest)
	case "for":
		return c.compileFor(stmt.Rest)
	case "next":
		return c.compileNext(stmt.Rest)
	case "end":
		return c.compileEnd()
	default:
		return &UnknownKeywordError{Keyword: stmt.Keyword}
	}
}

func (c *Compiler) compileExpr(text string) ([]ir.Instr, error) {
	if err := exprPreCheck(text); err != nil {
		return nil, err
	}
	postfix, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	instrs, depth, err := codegen.Generate(postfix, codegen.Env{
		AllocConst: c.allocConst,
		LookupVar:  c.lookupVar,
	})
	if err != nil {
		return nil, err
	}
	c.noteDepth(depth)
	return instrs, nil
}

func (c *Compiler) emitAll(instrs []ir.Instr) {
	for _, in := range instrs {
		c.emit(in)
	}
}

func (c *Compiler) compileInput(rest string) error {
	names := splitArgs(rest)
	if len(names) == 0 {
		return &SyntaxError{Reason: "input without any variable"}
	}
	for _, name := range names {
		addr := c.declareVar(name)
		c.emit(ir.Instr{Op: word.Read, Operand: ir.Abs(addr)})
	}
	return nil
}

func (c *Compiler) compilePrint(rest string) error {
	names := splitArgs(rest)
	if len(names) == 0 {
		return &SyntaxError{Reason: "print without any variable"}
	}
	for _, name := range names {
		addr, ok := c.lookupVar(name)
		if !ok {
			return &codegen.ErrUndefinedVariable{Name: name}
		}
		c.emit(ir.Instr{Op: word.Write, Operand: ir.Abs(addr)})
	}
	return nil
}

func (c *Compiler) compileLet(rest string) error {
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return &SyntaxError{Reason: "let without '='"}
	}
	name := strings.TrimSpace(rest[:eq])
	if name == "" {
		return &SyntaxError{Reason: "let without a target variable"}
	}
	exprText := rest[eq+1:]

	target := c.declareVar(name)
	instrs, err := c.compileExpr(exprText)
	if err != nil {
		return err
	}
	c.emitAll(instrs)
	c.emit(ir.Instr{Op: word.Store, Operand: ir.Abs(target)})
	return nil
}

func (c *Compiler) compileGoto(rest string) error {
	rest = strings.TrimSpace(rest)
	n, err := parseLineNumber(rest)
	if err != nil {
		return err
	}
	c.emit(ir.Instr{Op: word.Branch, Operand: ir.LineNum(n)})
	return nil
}

// compileIf lowers a conditional jump by reducing the comparison to the
// sign of a single subtraction and choosing which side to subtract from
// which, per the mapping: <=, <, ==, != evaluate (L)-(R); >=, > evaluate
// (R)-(L).
func (c *Compiler) compileIf(rest string) error {
	lhs, cmp, rhs, target, err := splitIf(rest)
	if err != nil {
		return err
	}

	var diffText string
	switch cmp {
	case "<=", "<", "==", "!=":
		diffText = "(" + lhs + ")-(" + rhs + ")"
	case ">=", ">":
		diffText = "(" + rhs + ")-(" + lhs + ")"
	default:
		return &SyntaxError{Reason: "unknown comparator " + cmp}
	}

	instrs, err := c.compileExpr(diffText)
	if err != nil {
		return err
	}
	c.emitAll(instrs)

	switch cmp {
	case "<=", ">=":
		c.emit(ir.Instr{Op: word.BranchNeg, Operand: ir.LineNum(target)})
		c.emit(ir.Instr{Op: word.BranchZero, Operand: ir.LineNum(target)})
	case "<", ">":
		c.emit(ir.Instr{Op: word.BranchNeg, Operand: ir.LineNum(target)})
	case "==":
		c.emit(ir.Instr{Op: word.BranchZero, Operand: ir.LineNum(target)})
	case "!=":
		skip := c.ip()
		c.emit(ir.Instr{Op: word.BranchZero, Operand: ir.Abs(skip + 2)})
		c.emit(ir.Instr{Op: word.Branch, Operand: ir.LineNum(target)})
	}
	return nil
}

func (c *Compiler) compileFor(rest string) error {
	name, fromText, toText, stepText, err := splitFor(rest)
	if err != nil {
		return err
	}

	v := c.declareVar(name)

	fromInstrs, err := c.compileExpr(fromText)
	if err != nil {
		return err
	}
	c.emitAll(fromInstrs)
	c.emit(ir.Instr{Op: word.Store, Operand: ir.Abs(v)})

	toInstrs, err := c.compileExpr(toText)
	if err != nil {
		return err
	}
	c.emitAll(toInstrs)
	b := c.allocData(0)
	c.emit(ir.Instr{Op: word.Store, Operand: ir.Abs(b)})

	var s uint
	descending := false
	if strings.TrimSpace(stepText) == "" {
		s = c.allocConst(1)
	} else {
		stepInstrs, err := c.compileExpr(stepText)
		if err != nil {
			return err
		}
		c.emitAll(stepInstrs)
		s = c.allocData(0)
		c.emit(ir.Instr{Op: word.Store, Operand: ir.Abs(s)})
		descending = isNegativeLiteral(stepText)
	}

	c.forStack = append(c.forStack, forFrame{Head: c.ip(), V: v, B: b, S: s, Descending: descending})
	return nil
}

// isNegativeLiteral reports whether text is a plain signed integer literal
// with a leading minus, the only case next can know a loop's direction at
// compile time; any other step expression is treated as ascending.
func isNegativeLiteral(text string) bool {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "-") {
		return false
	}
	digits := strings.TrimSpace(text[1:])
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// compileNext pops the innermost for frame and emits the increment,
// bound test, and back-branch to the loop head. The operand order of the
// bound test depends on the loop's direction: an ascending loop (the
// common case, and the default when step is omitted) continues while
// V <= B, so it computes V - B and branches back while the result is
// <= 0. A descending loop
// (step a negative literal) continues while V >= B, computed as B - V.
func (c *Compiler) compileNext(rest string) error {
	if len(c.forStack) == 0 {
		return &ForStackError{Reason: "next without a matching for"}
	}
	top := len(c.forStack) - 1
	frame := c.forStack[top]
	c.forStack = c.forStack[:top]

	c.emit(ir.Instr{Op: word.Load, Operand: ir.Abs(frame.V)})
	c.emit(ir.Instr{Op: word.Add, Operand: ir.Abs(frame.S)})
	c.emit(ir.Instr{Op: word.Store, Operand: ir.Abs(frame.V)})
	if frame.Descending {
		c.emit(ir.Instr{Op: word.Load, Operand: ir.Abs(frame.B)})
		c.emit(ir.Instr{Op: word.Subtract, Operand: ir.Abs(frame.V)})
	} else {
		c.emit(ir.Instr{Op: word.Load, Operand: ir.Abs(frame.V)})
		c.emit(ir.Instr{Op: word.Subtract, Operand: ir.Abs(frame.B)})
	}
	c.emit(ir.Instr{Op: word.BranchZero, Operand: ir.Abs(frame.Head)})
	c.emit(ir.Instr{Op: word.BranchNeg, Operand: ir.Abs(frame.Head)})
	return nil
}

func (c *Compiler) compileEnd() error {
	c.emit(ir.Instr{Op: word.Halt, Operand: ir.Operand{Kind: ir.None}})
	return nil
}

func parseLineNumber(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, &SyntaxError{Reason: "missing line number"}
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, &SyntaxError{Reason: "bad line number " + s}
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
