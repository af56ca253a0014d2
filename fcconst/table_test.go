package fcconst

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailfishos-mirror/fontconfig/errors"
	testutil "github.com/sailfishos-mirror/fontconfig/internal/testing"
)

func buildSample(t *testing.T) *Tables {
	t.Helper()

	entries, err := ReadList(strings.NewReader(testutil.ConstantList), "fcconst.list")
	require.NoError(t, err)
	objs, err := ReadObjects(strings.NewReader(testutil.ObjectHeader), "fcobjs.h")
	require.NoError(t, err)
	tables, err := Build(entries, objs)
	require.NoError(t, err)
	return tables
}

func TestBuild(t *testing.T) {
	tables := buildSample(t)

	require.Len(t, tables.ByObject, 4)
	assert.Nil(t, tables.ByObject[0])
	assert.Nil(t, tables.ByObject[1])
	assert.Equal(t, []Constant{{Name: "mono", Value: "FC_MONO"}}, tables.ByObject[2])
	assert.Equal(t, []Constant{
		{Name: "bold", Value: "FC_WEIGHT_BOLD"},
		{Name: "Light", Value: "FC_WEIGHT_LIGHT"},
	}, tables.ByObject[3])

	assert.Equal(t, []Symbol{
		{Name: "Light", Refs: []SymbolRef{{Object: "FC_WEIGHT", ObjectIndex: 3, ValueIndex: 1}}},
		{Name: "bold", Refs: []SymbolRef{{Object: "FC_WEIGHT", ObjectIndex: 3, ValueIndex: 0}}},
		{Name: "mono", Refs: []SymbolRef{{Object: "FC_SPACING", ObjectIndex: 2, ValueIndex: 0}}},
	}, tables.Symbols)

	assert.Equal(t, 3, tables.ObjectWidth)
	assert.Equal(t, 2, tables.SymbolWidth)
}

func TestBuild_SharedName(t *testing.T) {
	objs, err := NewObjectTable("WEIGHT", "WIDTH")
	require.NoError(t, err)
	entries, err := ReadList(strings.NewReader(
		"medium FC_WEIGHT 100\nmedium FC_WIDTH 100\nbold FC_WEIGHT 200\n"), "test.list")
	require.NoError(t, err)

	tables, err := Build(entries, objs)
	require.NoError(t, err)

	require.Len(t, tables.Symbols, 2)
	assert.Equal(t, "medium", tables.Symbols[1].Name)
	assert.Equal(t, []SymbolRef{
		{Object: "FC_WEIGHT", ObjectIndex: 1, ValueIndex: 1},
		{Object: "FC_WIDTH", ObjectIndex: 2, ValueIndex: 0},
	}, tables.Symbols[1].Refs)
	assert.Equal(t, 3, tables.SymbolWidth)
	assert.Equal(t, 3, tables.ObjectWidth)
}

func TestBuild_Empty(t *testing.T) {
	objs, err := NewObjectTable("FAMILY")
	require.NoError(t, err)

	tables, err := Build(nil, objs)
	require.NoError(t, err)
	assert.Len(t, tables.ByObject, 2)
	assert.Empty(t, tables.Symbols)
	assert.Equal(t, 1, tables.ObjectWidth)
	assert.Equal(t, 1, tables.SymbolWidth)
}

func TestBuild_UnknownObject(t *testing.T) {
	objs, err := NewObjectTable("WEIGHT")
	require.NoError(t, err)
	entries := []Entry{
		{Name: "bold", Object: "FC_WEIGHT", Value: "200", Line: 1},
		{Name: "x", Object: "FC_NOPE", Value: "1", Line: 2},
	}

	_, err = Build(entries, objs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownObject))
	assert.Contains(t, err.Error(), "FC_NOPE")
	assert.Contains(t, err.Error(), "line 2")
}

func TestBuild_BareObjectNameIsUnknown(t *testing.T) {
	objs, err := NewObjectTable("WEIGHT")
	require.NoError(t, err)

	_, err = Build([]Entry{{Name: "bold", Object: "WEIGHT", Value: "200", Line: 1}}, objs)
	assert.True(t, errors.Is(err, errors.ErrUnknownObject))
}

func TestLookup(t *testing.T) {
	tables := buildSample(t)

	// Every entry resolves to its own value through both tables.
	for _, e := range tables.Entries {
		v, ok := tables.Lookup(e.Name, e.Object)
		require.True(t, ok, "%s/%s", e.Name, e.Object)
		assert.Equal(t, e.Value, v)
	}

	_, ok := tables.Lookup("bold", "FC_SPACING")
	assert.False(t, ok)
	_, ok = tables.Lookup("BOLD", "FC_WEIGHT")
	assert.False(t, ok, "lookup is case-sensitive")
	_, ok = tables.Lookup("heavy", "FC_WEIGHT")
	assert.False(t, ok)

	// Names sorting before the first and after the last symbol
	for _, name := range []string{"", "\x00", "~~~", tables.Symbols[len(tables.Symbols)-1].Name + "z"} {
		_, ok = tables.Lookup(name, "FC_WEIGHT")
		assert.False(t, ok, "%q", name)
	}
	first := tables.Symbols[0]
	_, ok = tables.Lookup(first.Name, first.Refs[0].Object)
	assert.True(t, ok, "first symbol")
}

func TestObjectConstants(t *testing.T) {
	tables := buildSample(t)

	assert.Len(t, tables.ObjectConstants(3), 2)
	assert.Nil(t, tables.ObjectConstants(0))
	assert.Nil(t, tables.ObjectConstants(-1))
	assert.Nil(t, tables.ObjectConstants(99))
}
