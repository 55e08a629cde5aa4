package vm_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aruslantsev/simpletron/internal/compiler"
	"github.com/aruslantsev/simpletron/internal/vm"
	"github.com/aruslantsev/simpletron/internal/word"
)

func compileAndRun(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	mem, err := compiler.New().Compile("test.bas", strings.NewReader(src))
	require.NoError(t, err)

	var out bytes.Buffer
	m := vm.New(
		vm.WithImage(mem),
		vm.WithInput(strings.NewReader(stdin)),
		vm.WithOutput(&out),
	)
	err = m.Run(context.Background())
	return out.String(), err
}

func TestHelloAdd(t *testing.T) {
	src := `
10 input a
20 input b
30 let c = a + b
40 print c
50 end
`
	out, err := compileAndRun(t, src, "7\n5\n")
	require.NoError(t, err)
	require.Equal(t, "12\n", out)
}

func TestUnaryAndPrecedence(t *testing.T) {
	src := `
10 let x = -2 + 3 * 4
20 print x
30 end
`
	out, err := compileAndRun(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "10\n", out)
}

func TestPowerRightAssociative(t *testing.T) {
	src := `
10 let y = 2 ^ 3 ^ 2
20 print y
30 end
`
	out, err := compileAndRun(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "512\n", out)
}

func TestForwardGoto(t *testing.T) {
	src := `
5 input a
10 goto 30
20 print a
30 let a = 1
40 goto 20
50 end
`
	_, err := compiler.New().Compile("test.bas", strings.NewReader(src))
	require.NoError(t, err)
}

func TestCountedLoop(t *testing.T) {
	src := `
10 let s = 0
20 for i = 1 to 5
30 let s = s + i
40 next
50 print s
60 end
`
	out, err := compileAndRun(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "15\n", out)
}

func TestIfNotEqual(t *testing.T) {
	src := `
10 input x
20 if x != 0 goto 50
30 print x
40 goto 60
50 print x
60 end
`
	out, err := compileAndRun(t, src, "0\n")
	require.NoError(t, err)
	require.Equal(t, "0\n", out)

	out, err = compileAndRun(t, src, "7\n")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestDivisionByZeroFaults(t *testing.T) {
	src := `
10 let a = 0
20 let b = 1 / a
30 end
`
	_, err := compileAndRun(t, src, "")
	require.Error(t, err)
	var fault *vm.Fault
	require.ErrorAs(t, err, &fault)
}

func TestArithmeticOverflowFaults(t *testing.T) {
	src := `
10 let a = 30000
20 let b = a * a
30 end
`
	_, err := compileAndRun(t, src, "")
	require.Error(t, err)
	var fault *vm.Fault
	require.ErrorAs(t, err, &fault)
}

func TestReadStopValueHalts(t *testing.T) {
	src := `
10 input a
20 end
`
	mem, err := compiler.New().Compile("test.bas", strings.NewReader(src))
	require.NoError(t, err)

	var out bytes.Buffer
	m := vm.New(
		vm.WithImage(mem),
		vm.WithInput(strings.NewReader("65536\n")),
		vm.WithOutput(&out),
	)
	require.Equal(t, int64(word.StopValue), int64(65536))
	err = m.Run(context.Background())
	require.NoError(t, err)
}

func TestCountdownStep(t *testing.T) {
	src := `
10 let s = 0
20 for i = 10 to 1 step -2
30 let s = s + i
40 next
50 print s
60 end
`
	out, err := compileAndRun(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "30\n", out)
}

func TestRemainderSignFollowsDividend(t *testing.T) {
	src := `
10 let a = -7 % 2
20 print a
30 end
`
	out, err := compileAndRun(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "-1\n", out)
}
