package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aruslantsev/simpletron/internal/symtab"
)

func TestSearchMiss(t *testing.T) {
	tab := symtab.New()
	_, ok := tab.Search(symtab.Var, "x")
	require.False(t, ok)
}

func TestAddThenSearch(t *testing.T) {
	tab := symtab.New()
	tab.Add(symtab.Var, "x", 255)
	addr, ok := tab.Search(symtab.Var, "x")
	require.True(t, ok)
	require.Equal(t, uint(255), addr)
}

func TestKindsAreIndependent(t *testing.T) {
	tab := symtab.New()
	tab.Add(symtab.Var, "10", 200)
	tab.Add(symtab.Line, symtab.NumKey(10), 3)
	addr, ok := tab.Search(symtab.Line, symtab.NumKey(10))
	require.True(t, ok)
	require.Equal(t, uint(3), addr)

	varAddr, ok := tab.Search(symtab.Var, "10")
	require.True(t, ok)
	require.Equal(t, uint(200), varAddr)
}

func TestSearchOrAddAllocatesOnce(t *testing.T) {
	tab := symtab.New()
	calls := 0
	alloc := func() uint {
		calls++
		return 99
	}
	a1 := tab.SearchOrAdd(symtab.Const, symtab.NumKey(7), alloc)
	a2 := tab.SearchOrAdd(symtab.Const, symtab.NumKey(7), alloc)
	require.Equal(t, a1, a2)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, tab.Len())
}

func TestEntriesIsACopy(t *testing.T) {
	tab := symtab.New()
	tab.Add(symtab.Var, "x", 1)
	entries := tab.Entries()
	entries[0].Address = 42
	addr, _ := tab.Search(symtab.Var, "x")
	require.Equal(t, uint(1), addr)
}
