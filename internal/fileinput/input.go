// Package fileinput reads line-oriented source text while tracking the
// file name and line number of whatever was most recently scanned, so that
// error messages can point back at the offending source line.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line in a named input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Scanner reads a named source a line at a time, tracking Location as it goes.
type Scanner struct {
	sc   *bufio.Scanner
	loc  Location
	text string
}

// NewScanner returns a Scanner over r, reporting name in any Location it produces.
func NewScanner(name string, r io.Reader) *Scanner {
	return &Scanner{
		sc:  bufio.NewScanner(r),
		loc: Location{Name: name, Line: 0},
	}
}

// Scan advances to the next line, returning false at EOF or on read error.
func (s *Scanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	s.loc.Line++
	s.text = s.sc.Text()
	return true
}

// Text returns the line most recently read by Scan.
func (s *Scanner) Text() string { return s.text }

// Location returns the Location of the line most recently read by Scan.
func (s *Scanner) Location() Location { return s.loc }

// Err returns the first non-EOF error encountered by Scan.
func (s *Scanner) Err() error { return s.sc.Err() }
