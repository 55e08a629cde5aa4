// Package symtab implements the compiler's symbol table: a single,
// append-only table of variable, constant, and line-number bindings,
// searched linearly as the source text's own size keeps it small.
package symtab

import "fmt"

// Kind discriminates the three entity kinds a symbol table entry can bind.
type Kind int

const (
	// Var is a scalar variable, keyed by name.
	Var Kind = iota
	// Const is an integer literal, keyed by its value.
	Const
	// Line is a source line number, keyed by its value.
	Line
)

func (k Kind) String() string {
	switch k {
	case Var:
		return "VAR"
	case Const:
		return "CONST"
	case Line:
		return "LINE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Key identifies an entry within a Kind: the variable name for Var, or the
// decimal text of the integer value for Const and Line.
type Key string

// NumKey renders an integer key the way Const and Line entries store it.
func NumKey(v int) Key { return Key(fmt.Sprintf("%d", v)) }

// Entry is one symbol-table binding.
type Entry struct {
	Kind    Kind
	Key     Key
	Address uint
}

// Table is the compiler's symbol table: variables, constants, and line
// numbers in one append-only slice, searched linearly by (Kind, Key).
//
// Real BASIC programs bind a few dozen symbols at most, so a linear scan
// outperforms the bookkeeping a hash map would add — and it keeps Table a
// plain slice with no hidden iteration order.
type Table struct {
	entries []Entry
}

// New returns an empty Table.
func New() *Table { return &Table{} }

// Search returns the address bound to (kind, key), or ok=false if absent.
func (t *Table) Search(kind Kind, key Key) (addr uint, ok bool) {
	for _, e := range t.entries {
		if e.Kind == kind && e.Key == key {
			return e.Address, true
		}
	}
	return 0, false
}

// Add records a new binding at addr, unconditionally. Callers that must
// reject duplicates (LINE entries) call Search first.
func (t *Table) Add(kind Kind, key Key, addr uint) {
	t.entries = append(t.entries, Entry{Kind: kind, Key: key, Address: addr})
}

// SearchOrAdd returns the existing address for (kind, key) if bound,
// otherwise calls alloc to obtain a fresh address, binds it, and returns it.
func (t *Table) SearchOrAdd(kind Kind, key Key, alloc func() uint) uint {
	if addr, ok := t.Search(kind, key); ok {
		return addr
	}
	addr := alloc()
	t.Add(kind, key, addr)
	return addr
}

// Entries returns the table's bindings in insertion order. The returned
// slice is owned by the caller.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports how many bindings the table holds.
func (t *Table) Len() int { return len(t.entries) }
