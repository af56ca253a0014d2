package fcconst

import (
	"slices"
	"strings"
)

// Lookup resolves a constant the way the runtime does with the generated
// tables: find the symbol, pick the ref for object, then read the value
// from that object's row.
func (t *Tables) Lookup(name, object string) (string, bool) {
	i, found := slices.BinarySearchFunc(t.Symbols, name, func(s Symbol, name string) int {
		return strings.Compare(s.Name, name)
	})
	if !found {
		return "", false
	}
	for _, ref := range t.Symbols[i].Refs {
		if ref.Object != object {
			continue
		}
		row := t.ByObject[ref.ObjectIndex]
		if ref.ValueIndex >= len(row) {
			return "", false
		}
		return row[ref.ValueIndex].Value, true
	}
	return "", false
}

// ObjectConstants returns the constants registered for an object index.
func (t *Tables) ObjectConstants(index int) []Constant {
	if index < 0 || index >= len(t.ByObject) {
		return nil
	}
	return t.ByObject[index]
}

