package fcconst

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/sailfishos-mirror/fontconfig/errors"
)

const (
	// Prefix is prepended to every bare object name from the header
	Prefix = "FC_"
	// InvalidObject is the reserved object at index 0
	InvalidObject = "FC_INVALID_OBJECT"

	objectMarker = "FC_OBJECT ("
)

// commentsAndLiterals matches C comments and quoted literals. The literal
// alternatives keep comment markers inside strings from being treated as
// comments.
var commentsAndLiterals = regexp.MustCompile(`(?ms)//.*?$|/\*.*?\*/|'(?:\\.|[^\\'])*'|"(?:\\.|[^\\"])*"`)

// ObjectTable maps object symbols to their enumeration index and back.
// Index 0 is always InvalidObject; declared objects start at 1.
type ObjectTable struct {
	names []string
	index map[string]int
}

// ParseObjects reads the object enumeration header at path.
func ParseObjects(path string) (*ObjectTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapNotFound(err, path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	return ReadObjects(f, path)
}

// ReadObjects parses FC_OBJECT declarations from r; name is used in error
// messages.
func ReadObjects(r io.Reader, name string) (*ObjectTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}

	text := commentsAndLiterals.ReplaceAllLiteralString(string(data), " ")

	t := newObjectTable()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.ReplaceAll(line, objectMarker, "")
		line = strings.ReplaceAll(line, ")", "")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := t.add(strings.Trim(fields[0], ",")); err != nil {
			return nil, errors.Wrap(err, name)
		}
	}
	return t, nil
}

// NewObjectTable builds a table from bare object names in declaration order.
func NewObjectTable(bare ...string) (*ObjectTable, error) {
	t := newObjectTable()
	for _, b := range bare {
		if err := t.add(b); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func newObjectTable() *ObjectTable {
	return &ObjectTable{
		names: []string{InvalidObject},
		index: map[string]int{InvalidObject: 0},
	}
}

func (t *ObjectTable) add(bare string) error {
	sym := Prefix + bare
	if _, dup := t.index[sym]; dup {
		return errors.Mark(
			errors.Newf("object %s declared more than once", sym),
			errors.ErrDuplicateObject)
	}
	t.index[sym] = len(t.names)
	t.names = append(t.names, sym)
	return nil
}

// Index returns the enumeration index of an object symbol.
func (t *ObjectTable) Index(sym string) (int, bool) {
	i, ok := t.index[sym]
	return i, ok
}

// Name returns the object symbol at index i, or "" when out of range.
func (t *ObjectTable) Name(i int) string {
	if i < 0 || i >= len(t.names) {
		return ""
	}
	return t.names[i]
}

// Len is the number of objects including InvalidObject.
func (t *ObjectTable) Len() int {
	return len(t.names)
}

// Names returns all object symbols ordered by index.
func (t *ObjectTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
