package fcconst

import (
	"sort"

	"github.com/sailfishos-mirror/fontconfig/errors"
)

// Constant is one (name, value) pair stored under an object.
type Constant struct {
	Name  string
	Value string
}

// SymbolRef locates one definition of a constant name: the object it
// belongs to and its position in that object's row.
type SymbolRef struct {
	// Object is the prefixed object symbol, e.g. "FC_WEIGHT"
	Object string
	// ObjectIndex is the object's enumeration index
	ObjectIndex int
	// ValueIndex is the constant's position within ByObject[ObjectIndex]
	ValueIndex int
}

// Symbol groups every definition of one constant name.
type Symbol struct {
	Name string
	Refs []SymbolRef
}

// Tables is the indexed form of a constant list.
type Tables struct {
	// Objects is the enumeration the tables were built against
	Objects *ObjectTable
	// Entries are the sorted list records the tables were built from
	Entries []Entry
	// ByObject has one row per object index, including 0. Rows keep the
	// order of the sorted entries; objects without constants have nil rows.
	ByObject [][]Constant
	// Symbols are ordered by byte-wise comparison of their names
	Symbols []Symbol
	// ObjectWidth is the longest row plus its terminating sentinel
	ObjectWidth int
	// SymbolWidth is the most refs held by one symbol plus its sentinel
	SymbolWidth int
}

// Build indexes sorted entries against the object enumeration.
// An entry naming an undeclared object fails the whole build.
func Build(entries []Entry, objects *ObjectTable) (*Tables, error) {
	t := &Tables{
		Objects:  objects,
		Entries:  entries,
		ByObject: make([][]Constant, objects.Len()),
	}

	bySymbol := make(map[string][]SymbolRef)
	maxRefs := 0
	for _, e := range entries {
		idx, ok := objects.Index(e.Object)
		if !ok {
			return nil, errors.NewUnknownObjectError(
				"constant %q on line %d refers to unknown object %s", e.Name, e.Line, e.Object)
		}
		t.ByObject[idx] = append(t.ByObject[idx], Constant{Name: e.Name, Value: e.Value})
		bySymbol[e.Name] = append(bySymbol[e.Name], SymbolRef{
			Object:      e.Object,
			ObjectIndex: idx,
			ValueIndex:  len(t.ByObject[idx]) - 1,
		})
		if n := len(bySymbol[e.Name]); n > maxRefs {
			maxRefs = n
		}
	}

	names := make([]string, 0, len(bySymbol))
	for name := range bySymbol {
		names = append(names, name)
	}
	sort.Strings(names)
	t.Symbols = make([]Symbol, 0, len(names))
	for _, name := range names {
		t.Symbols = append(t.Symbols, Symbol{Name: name, Refs: bySymbol[name]})
	}

	t.SymbolWidth = maxRefs + 1
	t.ObjectWidth = 1
	for _, row := range t.ByObject {
		if n := len(row) + 1; len(row) > 0 && n > t.ObjectWidth {
			t.ObjectWidth = n
		}
	}
	return t, nil
}
