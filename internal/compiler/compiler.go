// Package compiler implements the statement compiler and linker pass: it
// turns a sequence of line-numbered BASIC-like source lines into a
// Simpletron memory image.
//
// Compile never calls os.Exit or writes directly to the terminal; it
// always returns a result or an *Error naming the offending source line,
// leaving it to the CLI layer to decide how to report failure.
package compiler

import (
	"io"

	"github.com/aruslantsev/simpletron/internal/fileinput"
	"github.com/aruslantsev/simpletron/internal/ir"
	"github.com/aruslantsev/simpletron/internal/panicerr"
	"github.com/aruslantsev/simpletron/internal/symtab"
	"github.com/aruslantsev/simpletron/internal/word"
)

// forFrame is a compile-time for/next nesting frame: the loop head
// address, the three variable addresses next's emitted code reads, and
// the direction the loop counts so next compares V and B in the order
// that actually terminates the loop.
type forFrame struct {
	Head       uint
	V, B, S    uint
	Descending bool
}

// Compiler compiles one BASIC-like source file into a memory image. Its
// zero value is not usable; construct one with New.
type Compiler struct {
	debug bool
	logf  func(mess string, args ...interface{})

	table *symtab.Table
	code  []ir.Instr
	// locs and texts parallel code, recording the source line each
	// instruction was emitted from; the linker pass consults these to
	// attribute an unresolved-label error back to the goto/if that
	// recorded the forward reference, not to wherever compilation
	// happened to be by the time linking runs.
	locs  []fileinput.Location
	texts []string
	data  map[uint]word.Word
	dp    uint

	forStack []forFrame
	maxDepth int

	loc  fileinput.Location
	line string

	result []word.Word
}

// capacityPanic unwinds a Compile call the instant the address space is
// exhausted, rather than threading an error return through every emit
// call on the hot path; Compile recovers it via panicerr and turns it
// back into an ordinary *CapacityError.
type capacityPanic struct{ reason string }

func (p capacityPanic) Error() string { return p.reason }

// New returns a ready-to-use Compiler.
func New() *Compiler {
	return &Compiler{
		table: symtab.New(),
		data:  make(map[uint]word.Word),
		dp:    word.Size,
	}
}

// SetDebug toggles whether Compile narrates symbol allocation through the
// function set by SetLogf; it has no effect on the emitted image.
func (c *Compiler) SetDebug(v bool) { c.debug = v }

// SetLogf installs the narration sink SetDebug's tracing writes through.
// A nil logf (the default) silently disables narration even if debug is on.
func (c *Compiler) SetLogf(logf func(mess string, args ...interface{})) {
	c.logf = logf
}

func (c *Compiler) tracef(mess string, args ...interface{}) {
	if c.debug && c.logf != nil {
		c.logf(mess, args...)
	}
}

// Compile reads name from src one line at a time and returns the linked
// memory image, or the first error encountered, wrapped in *Error to
// name the offending source line.
func (c *Compiler) Compile(name string, src io.Reader) ([]word.Word, error) {
	err := panicerr.Recover("compiler.Compile", func() error {
		return c.compile(name, src)
	})
	if err != nil {
		var cp capacityPanic
		if panicerr.IsPanic(err) && unwrapAs(err, &cp) {
			return nil, c.wrap(&CapacityError{Reason: cp.reason})
		}
		return nil, err
	}
	return c.result, nil
}

func unwrapAs(err error, target *capacityPanic) bool {
	type unwrapper interface{ Unwrap() error }
	for err != nil {
		if cp, ok := err.(capacityPanic); ok {
			*target = cp
			return true
		}
		u, ok := err.(unwrapper)
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func (c *Compiler) compile(name string, src io.Reader) error {
	sc := fileinput.NewScanner(name, src)
	for sc.Scan() {
		c.loc = sc.Location()
		c.line = sc.Text()
		if err := c.compileLine(c.line); err != nil {
			return c.wrap(err)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(c.forStack) != 0 {
		return c.wrap(&ForStackError{Reason: "for without matching next at end of source"})
	}
	mem, badAddr, err := c.link()
	if err != nil {
		if badAddr >= 0 && badAddr < len(c.locs) {
			return &Error{Loc: c.locs[badAddr], Text: c.texts[badAddr], Err: err}
		}
		return c.wrap(err)
	}
	c.result = mem
	return nil
}

func (c *Compiler) wrap(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Loc: c.loc, Text: c.line, Err: err}
}

// ip reports the address the next emitted instruction will occupy.
func (c *Compiler) ip() uint { return uint(len(c.code)) }

// emit appends one instruction to the code region and returns its address.
func (c *Compiler) emit(in ir.Instr) uint {
	addr := c.ip()
	c.code = append(c.code, in)
	c.locs = append(c.locs, c.loc)
	c.texts = append(c.texts, c.line)
	return addr
}

// allocData reserves one word of data memory, decrementing dp, and
// returns its address. It panics with capacityPanic if the data region
// would collide with the code region; Compile recovers this.
func (c *Compiler) allocData(value word.Word) uint {
	if c.dp == 0 || c.dp-1 < c.ip() {
		panic(capacityPanic{reason: "data region collided with code region"})
	}
	c.dp--
	addr := c.dp
	c.data[addr] = value
	return addr
}

func (c *Compiler) declareVar(name string) uint {
	return c.table.SearchOrAdd(symtab.Var, symtab.Key(name), func() uint {
		return c.allocData(0)
	})
}

func (c *Compiler) lookupVar(name string) (uint, bool) {
	return c.table.Search(symtab.Var, symtab.Key(name))
}

func (c *Compiler) allocConst(v int64) uint {
	return c.table.SearchOrAdd(symtab.Const, symtab.NumKey(int(v)), func() uint {
		return c.allocData(word.Word(v))
	})
}

func (c *Compiler) noteDepth(d int) {
	if d > c.maxDepth {
		c.maxDepth = d
	}
}
