package eval

import "fmt"

// SymbolTable maps names to runtime values, with lexical lookup through
// Parent. A read-only table rejects writes; assignments fall through to the
// nearest writable scope.
type SymbolTable struct {
	Symbols  map[string]any
	ReadOnly bool
	Parent   *SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Symbols: map[string]any{},
	}
}

func (st *SymbolTable) Get(name string) (any, bool) {
	v, ok := st.Symbols[name]
	if ok {
		return v, true
	}
	if st.Parent != nil {
		return st.Parent.Get(name)
	}
	return nil, false
}

// Set updates the scope already holding name, or defines it here.
func (st *SymbolTable) Set(name string, value any) {
	if updated := st.set(name, value); updated {
		return
	}
	if st.ReadOnly {
		panic(fmt.Sprintf("Cannot assign %q=%+v to read only symbol table", name, value))
	}
	st.Symbols[name] = value
}

func (st *SymbolTable) set(name string, value any) bool {
	if !st.ReadOnly {
		if _, ok := st.Symbols[name]; ok {
			st.Symbols[name] = value
			return true
		}
	}
	if st.Parent != nil {
		return st.Parent.set(name, value)
	}
	return false
}
