package image_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aruslantsev/simpletron/internal/image"
	"github.com/aruslantsev/simpletron/internal/word"
)

func TestWriteLineCountAndWidth(t *testing.T) {
	var buf bytes.Buffer
	mem := []word.Word{word.Pack(word.Halt, 0)}
	require.NoError(t, image.Write(&buf, mem))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, word.Size)
	for _, line := range lines {
		require.Len(t, line, word.Bits/4)
	}
	require.Equal(t, "4300", lines[0])
}

func TestWriteNegativeWord(t *testing.T) {
	var buf bytes.Buffer
	mem := []word.Word{-1}
	require.NoError(t, image.Write(&buf, mem))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "FFFF", lines[0])
}

func TestRoundTrip(t *testing.T) {
	mem := make([]word.Word, word.Size)
	mem[0] = word.Pack(word.Load, 200)
	mem[1] = word.Pack(word.Halt, 0)
	mem[word.Size-1] = -42

	var buf bytes.Buffer
	require.NoError(t, image.Write(&buf, mem))

	got, err := image.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, mem, got)
}

func TestReadTooShort(t *testing.T) {
	_, err := image.Read(strings.NewReader("0000\n0000\n"))
	require.Error(t, err)
}
