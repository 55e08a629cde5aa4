// Package image encodes and decodes the Simpletron's flat memory image:
// a plain text file with exactly one line per addressable word, each
// word right-aligned as uppercase hexadecimal digits.
package image

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aruslantsev/simpletron/internal/word"
)

// hexDigits is how many hex digits render one word: W/4.
const hexDigits = word.Bits / 4

// Write renders mem as a memory image, padding with zero words up to
// word.Size so the file always contains exactly 2^(W-K) lines.
func Write(w io.Writer, mem []word.Word) error {
	if len(mem) > word.Size {
		return fmt.Errorf("image: %d words exceeds memory size %d", len(mem), word.Size)
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < word.Size; i++ {
		var v word.Word
		if i < len(mem) {
			v = mem[i]
		}
		line := fmt.Sprintf("%0*X", hexDigits, uint32(uint16(v)))
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses a memory image, returning exactly word.Size words. A short
// file fails; a blank line reads as zero.
func Read(r io.Reader) ([]word.Word, error) {
	mem := make([]word.Word, word.Size)
	sc := bufio.NewScanner(r)
	i := 0
	for sc.Scan() && i < word.Size {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			i++
			continue
		}
		v, err := strconv.ParseUint(line, 16, word.Bits)
		if err != nil {
			return nil, fmt.Errorf("image: line %d: %w", i+1, err)
		}
		mem[i] = word.Word(int16(uint16(v)))
		i++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if i < word.Size {
		return nil, fmt.Errorf("image: expected %d words, got %d", word.Size, i)
	}
	return mem, nil
}
