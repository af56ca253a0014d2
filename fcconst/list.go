// Package fcconst builds the static constant tables fontconfig uses to resolve
// symbolic property values such as "bold" or "mono".
//
// Two inputs drive generation: a constant list with one
// "name object value" record per line, and the object enumeration header
// (fcobjs.h) declaring the objects in order. The package parses both,
// indexes constants by object and by name, and renders C or Go sources.
package fcconst

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sailfishos-mirror/fontconfig/errors"
)

// Entry is one constant definition from the list file.
type Entry struct {
	// Name is the symbolic constant, e.g. "bold"
	Name string
	// Object is the prefixed object symbol, e.g. "FC_WEIGHT"
	Object string
	// Value is the textual value copied verbatim into the generated source
	Value string
	// Line is the 1-based line in the list file
	Line int
}

// ParseList reads the constant list at path.
func ParseList(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapNotFound(err, path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	return ReadList(f, path)
}

// ReadList parses list records from r; name is used in error messages.
//
// Lines beginning with '#' are comments and lines without tokens are
// skipped. Records are sorted case-insensitively by name; the sort is
// stable, so entries with equal names keep their file order.
func ReadList(r io.Reader, name string) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, errors.NewMalformedRecord(name, line, len(fields))
		}
		entries = append(entries, Entry{
			Name:   fields[0],
			Object: fields[1],
			Value:  fields[2],
			Line:   line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}

	fold := cases.Fold()
	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, ok := keys[e.Name]; !ok {
			keys[e.Name] = fold.String(e.Name)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return keys[entries[i].Name] < keys[entries[j].Name]
	})

	return entries, nil
}
