package vm

import (
	"fmt"
	"io"
)

// Dump writes a register and memory dump to w, in the Deitel-style format
// the VM CLI prints after an abnormal termination: the accumulator and
// instruction pointer, followed by every memory word grouped into
// fixed-width rows for easy eyeballing of the code and data regions.
func (vm *VM) Dump(w io.Writer) {
	fmt.Fprintf(w, "REGISTERS:\n")
	fmt.Fprintf(w, "accumulator %16d\n", int64(vm.acc))
	fmt.Fprintf(w, "instructionCounter %9d\n", vm.ip)

	fmt.Fprintf(w, "\nMEMORY:\n")
	const perRow = 16
	fmt.Fprintf(w, "     ")
	for col := 0; col < perRow; col++ {
		fmt.Fprintf(w, "%7d", col)
	}
	fmt.Fprintln(w)
	for addr := 0; addr < len(vm.mem); addr += perRow {
		fmt.Fprintf(w, "%4d", addr)
		for col := 0; col < perRow && addr+col < len(vm.mem); col++ {
			fmt.Fprintf(w, "%7d", int64(vm.mem[addr+col]))
		}
		fmt.Fprintln(w)
	}
}
