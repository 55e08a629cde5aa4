package vm

import (
	"fmt"
	"io"
	"strconv"
)

// readWord blocks for one whitespace-delimited decimal integer from the
// terminal. It faults on malformed input or on an I/O error; it does not
// range-check the value, so the READ case in step can recognise
// word.StopValue as a request to halt before the signed word range check.
func (vm *VM) readWord() int64 {
	if err := vm.out.Flush(); err != nil {
		vm.fault("flushing output before read: %v", err)
	}
	if !vm.in.Scan() {
		if err := vm.in.Err(); err != nil {
			vm.fault("reading input: %v", err)
		}
		vm.fault("reading input: %v", io.ErrUnexpectedEOF)
	}
	tok := vm.in.Text()
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		vm.fault("malformed integer input %q", tok)
	}
	return v
}

// writeWord prints v to the terminal, one value per line.
func (vm *VM) writeWord(v int64) {
	if _, err := fmt.Fprintf(vm.out, "%d\n", v); err != nil {
		vm.fault("writing output: %v", err)
	}
}
