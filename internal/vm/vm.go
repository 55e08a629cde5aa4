// Package vm implements the Simpletron fetch-decode-execute loop: a
// single accumulator, a flat memory of word.Size words, and the
// instruction set word.Opcode enumerates.
package vm

import (
	"bufio"
	"context"
	"io"
	"io/ioutil"

	"github.com/aruslantsev/simpletron/internal/flushio"
	"github.com/aruslantsev/simpletron/internal/panicerr"
	"github.com/aruslantsev/simpletron/internal/word"
)

// VM is a Simpletron machine. Its zero value is not usable; build one
// with New.
type VM struct {
	mem [word.Size]word.Word
	ip  uint
	acc word.Word

	in  *bufio.Scanner
	out flushio.WriteFlusher

	logfn func(mess string, args ...interface{})

	closers []io.Closer
}

// New builds a VM with the given options applied over sensible defaults:
// empty memory, no input, and discarded output.
func New(opts ...Option) *VM {
	vm := &VM{
		in:  bufio.NewScanner(new(io.LimitedReader)),
		out: flushio.NewWriteFlusher(ioutil.Discard),
	}
	vm.in.Split(bufio.ScanWords)
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
	return vm
}

// Close releases any closers accumulated from options (an output writer
// passed to WithOutput that is also an io.Closer), most recently added
// first.
func (vm *VM) Close() error {
	var err error
	for i := len(vm.closers) - 1; i >= 0; i-- {
		if cerr := vm.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// IP returns the instruction pointer at the moment Run returned.
func (vm *VM) IP() uint { return vm.ip }

// Accumulator returns the accumulator at the moment Run returned.
func (vm *VM) Accumulator() word.Word { return vm.acc }

// Memory returns the VM's memory, unchanged by Run unless a program
// wrote through its own address space. The returned slice aliases the
// VM's internal storage and must not be retained past the next Run.
func (vm *VM) Memory() []word.Word { return vm.mem[:] }

// Run fetches, decodes, and executes instructions starting from the
// current ip until HALT or a fault, checking ctx for cancellation
// between instructions. A clean HALT returns a nil error; any fault
// returns a non-nil *Fault so the caller can print a register dump.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("vm.Run", func() error {
		return vm.run(ctx)
	})
	if err == nil {
		return nil
	}
	var hs haltSignal
	if panicerr.IsPanic(err) && asHaltSignal(err, &hs) {
		return hs.err
	}
	return err
}

func asHaltSignal(err error, target *haltSignal) bool {
	type unwrapper interface{ Unwrap() error }
	for err != nil {
		if hs, ok := err.(haltSignal); ok {
			*target = hs
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

func (vm *VM) run(ctx context.Context) (err error) {
	defer func() {
		if ferr := vm.out.Flush(); err == nil {
			err = ferr
		}
	}()
	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		vm.step()
	}
}

// step fetches one instruction, advances ip, and dispatches it. HALT and
// any fault unwind via vm.halt rather than returning, so the caller
// never sees a partially-applied instruction.
func (vm *VM) step() {
	addr := vm.ip
	ir := vm.mem[addr]
	vm.ip++

	op := ir.Opcode()
	operand := ir.Operand()
	if vm.logfn != nil {
		vm.logfn("@%d %v %d acc=%d", addr, op, operand, int64(vm.acc))
	}

	switch op {
	case word.Nop:
		// no effect

	case word.Read:
		v := vm.readWord()
		if v == word.StopValue {
			vm.halt(nil)
		}
		if v < word.SignedMin || v > word.SignedMax {
			vm.fault("input %d out of word range", v)
		}
		vm.mem[operand] = word.Word(v)

	case word.Write:
		vm.writeWord(int64(vm.mem[operand]))

	case word.Load:
		vm.acc = vm.mem[operand]

	case word.Store:
		vm.mem[operand] = vm.acc

	case word.Add:
		vm.arith(operand, func(a, b int64) int64 { return a + b })
	case word.Subtract:
		vm.arith(operand, func(a, b int64) int64 { return a - b })
	case word.Multiply:
		vm.arith(operand, func(a, b int64) int64 { return a * b })
	case word.Divide:
		vm.divide(operand)
	case word.Remainder:
		vm.remainder(operand)
	case word.Power:
		vm.power(operand)

	case word.Branch:
		vm.ip = operand
	case word.BranchNeg:
		if vm.acc < 0 {
			vm.ip = operand
		}
	case word.BranchZero:
		if vm.acc == 0 {
			vm.ip = operand
		}

	case word.Halt:
		vm.halt(nil)

	default:
		vm.ip = addr
		vm.fault("invalid opcode %v", op)
	}
}

func (vm *VM) arith(operand uint, f func(a, b int64) int64) {
	result := f(int64(vm.acc), int64(vm.mem[operand]))
	if !word.InRange(int(result)) {
		vm.fault("arithmetic overflow: result %d out of range", result)
	}
	vm.acc = word.Word(result)
}

func (vm *VM) divide(operand uint) {
	divisor := vm.mem[operand]
	if divisor == 0 {
		vm.fault("division by zero")
	}
	vm.arith(operand, func(a, b int64) int64 { return a / b })
}

func (vm *VM) remainder(operand uint) {
	divisor := vm.mem[operand]
	if divisor == 0 {
		vm.fault("division by zero")
	}
	vm.arith(operand, func(a, b int64) int64 { return a % b })
}

// power raises the accumulator to the memory operand's value. Negative
// exponents cannot produce an integer result and are a fault, matching
// the machine's lack of any non-integer representation.
func (vm *VM) power(operand uint) {
	exp := int64(vm.mem[operand])
	if exp < 0 {
		vm.fault("power: negative exponent %d", exp)
	}
	base := int64(vm.acc)
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
		if !word.InRange(int(result)) {
			vm.fault("arithmetic overflow: result out of range")
		}
	}
	vm.acc = word.Word(result)
}
