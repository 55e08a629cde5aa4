package compiler

import (
	"github.com/aruslantsev/simpletron/internal/ir"
	"github.com/aruslantsev/simpletron/internal/symtab"
	"github.com/aruslantsev/simpletron/internal/word"
)

// link resolves every pending operand in c.code against the final
// position of dp and the LINE bindings in the symbol table, then lowers
// the code and data regions into one full-size memory image. On
// failure it also returns the code address responsible, so the caller
// can attribute the error back to the source line that emitted it.
//
// link resolves into a fresh copy and leaves c.code untouched, so
// re-running it against the same compiler state yields the same image.
func (c *Compiler) link() ([]word.Word, int, error) {
	dpFinal := c.dp
	ipFinal := c.ip()

	if int(ipFinal) > int(dpFinal)-c.maxDepth {
		return nil, -1, &CapacityError{Reason: "code region overlaps evaluation-stack headroom"}
	}

	resolved := make([]ir.Instr, len(c.code))
	for i, in := range c.code {
		switch in.Operand.Kind {
		case ir.LineRef:
			line := in.Operand.Value
			addr, ok := c.table.Search(symtab.Line, symtab.NumKey(line))
			if !ok {
				return nil, i, &UnresolvedLabelError{Line: line}
			}
			in.Operand = ir.Abs(addr)
		case ir.StackSlot:
			slot := in.Operand.Value
			// dp is the lowest allocated data address, not the highest
			// free one: slot 0 sits one word below it, matching
			// original_source/src/translator.c's stack reservation
			// strictly below the constant region.
			addr := int(dpFinal) - 1 - slot
			if addr < 0 || addr >= word.Size {
				return nil, i, &CapacityError{Reason: "evaluation stack slot out of range"}
			}
			in.Operand = ir.Abs(uint(addr))
		}
		resolved[i] = in
	}

	mem := make([]word.Word, word.Size)
	for i, in := range resolved {
		var operand uint
		if in.Operand.Kind == ir.Absolute {
			operand = uint(in.Operand.Value)
			if operand >= word.Size {
				return nil, i, &CapacityError{Reason: "instruction operand out of range"}
			}
		}
		mem[i] = word.Pack(in.Op, operand)
	}
	for addr, v := range c.data {
		mem[addr] = v
	}
	return mem, -1, nil
}
