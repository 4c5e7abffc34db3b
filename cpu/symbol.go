package cpu

import (
	"iter"
)

const (
	SYMBOL_LIMIT = 100 // Maximum number of labels in a program.
)

// Symbol binds a label to a store address.
type Symbol struct {
	Name    string
	Address int
}

// SymbolTable is a fixed capacity label table, kept in insertion order.
type SymbolTable struct {
	symbol [SYMBOL_LIMIT]Symbol
	count  int
}

// Add a new symbol.
func (st *SymbolTable) Add(name string, address int) (err error) {
	if len(name) == 0 {
		err = ErrSymbolName(name)
		return
	}

	if st.Full() {
		err = ErrSymbolTableFull(name)
		return
	}

	_, ok := st.Lookup(name)
	if ok {
		err = ErrSymbolDuplicate(name)
		return
	}

	st.symbol[st.count] = Symbol{Name: name, Address: address}
	st.count++

	return
}

// Lookup finds the address of a symbol.
func (st *SymbolTable) Lookup(name string) (address int, ok bool) {
	for _, sym := range st.symbol[:st.count] {
		if sym.Name == name {
			return sym.Address, true
		}
	}

	return
}

func (st *SymbolTable) Len() int {
	return st.count
}

func (st *SymbolTable) Empty() bool {
	return st.count == 0
}

func (st *SymbolTable) Full() bool {
	return st.count == SYMBOL_LIMIT
}

// All iterates over name and address, in insertion order.
func (st *SymbolTable) All() iter.Seq2[string, int] {
	return func(yield func(name string, address int) bool) {
		for _, sym := range st.symbol[:st.count] {
			if !yield(sym.Name, sym.Address) {
				return
			}
		}
	}
}

// Symbols returns a copy of the table contents.
func (st *SymbolTable) Symbols() (syms []Symbol) {
	syms = make([]Symbol, st.count)
	copy(syms, st.symbol[:st.count])
	return
}

func (st *SymbolTable) Reset() {
	clear(st.symbol[:st.count])
	st.count = 0
}
