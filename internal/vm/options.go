package vm

import (
	"bufio"
	"io"

	"github.com/aruslantsev/simpletron/internal/flushio"
	"github.com/aruslantsev/simpletron/internal/word"
)

// Option configures a VM at construction time.
type Option interface{ apply(vm *VM) }

type optionFunc func(vm *VM)

func (f optionFunc) apply(vm *VM) { f(vm) }

// WithImage loads mem as the VM's starting memory. mem must hold exactly
// word.Size words, as produced by image.Read; shorter input is
// zero-padded, matching image.Write's own padding.
func WithImage(mem []word.Word) Option {
	return optionFunc(func(vm *VM) {
		n := copy(vm.mem[:], mem)
		for i := n; i < word.Size; i++ {
			vm.mem[i] = 0
		}
	})
}

// WithInput supplies the terminal input stream READ consumes from.
func WithInput(r io.Reader) Option {
	return optionFunc(func(vm *VM) {
		vm.in = bufio.NewScanner(r)
		vm.in.Split(bufio.ScanWords)
	})
}

// WithOutput supplies the terminal output stream WRITE writes to.
func WithOutput(w io.Writer) Option {
	return optionFunc(func(vm *VM) {
		if vm.out != nil {
			vm.out.Flush()
		}
		vm.out = flushio.NewWriteFlusher(w)
		if cl, ok := w.(io.Closer); ok {
			vm.closers = append(vm.closers, cl)
		}
	})
}

// WithLogf installs a narration sink for a debug trace of executed
// instructions; nil (the default) disables narration.
func WithLogf(logfn func(mess string, args ...interface{})) Option {
	return optionFunc(func(vm *VM) { vm.logfn = logfn })
}
