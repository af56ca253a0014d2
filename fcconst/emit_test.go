package fcconst

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readGolden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestRenderTables_Golden(t *testing.T) {
	got := RenderTables(buildSample(t))
	if diff := cmp.Diff(readGolden(t, "tables.h.golden"), got); diff != "" {
		t.Errorf("RenderTables() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCheck_Golden(t *testing.T) {
	got := RenderCheck(buildSample(t).Entries)
	if diff := cmp.Diff(readGolden(t, "check.c.golden"), got); diff != "" {
		t.Errorf("RenderCheck() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCheck_OneLookupPerEntry(t *testing.T) {
	entries := []Entry{
		{Name: "bold", Object: "FC_WEIGHT", Value: "200"},
		{Name: "light", Object: "FC_WEIGHT", Value: "50"},
	}

	out := RenderCheck(entries)
	assert.Equal(t, 2, strings.Count(out, "FcNameGetConstantFor"))
	assert.Contains(t, out, `c = FcNameGetConstantFor ((const FcChar8 *)"bold", FC_WEIGHT);`)
	assert.Contains(t, out, "if (!c || c->value != 50) {")
	assert.Contains(t, out, `"failed: (%s, %s)\n", "light", _FC_STRINGIFY(FC_WEIGHT)`)
	assert.True(t, strings.HasPrefix(out, Header))
}

func TestRenderTables_EmptyList(t *testing.T) {
	objs, err := NewObjectTable("FAMILY")
	require.NoError(t, err)
	tables, err := Build(nil, objs)
	require.NoError(t, err)

	out := RenderTables(tables)
	assert.Contains(t, out, "FcConstIndex   values[1];")
	assert.Contains(t, out, "FcConstant values[1];")
	assert.Contains(t, out, "    {{{ NULL, NULL, 0 }}}    /* FC_FAMILY */,")
}

func TestRenderTables_Deterministic(t *testing.T) {
	a := RenderTables(buildSample(t))
	b := RenderTables(buildSample(t))
	assert.Equal(t, a, b)
}

func TestRenderGo(t *testing.T) {
	src, err := RenderGo(buildSample(t), "fcdata")
	require.NoError(t, err)

	f, err := parser.ParseFile(token.NewFileSet(), "fcdata_tables.go", src, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "fcdata", f.Name.Name)

	out := string(src)
	assert.Contains(t, out, "// Code generated by fc-const. DO NOT EDIT.")
	assert.Contains(t, out, `{Name: "bold", Object: "FC_WEIGHT", Value: "FC_WEIGHT_BOLD"}`)
	assert.Contains(t, out, "nil, // FC_FAMILY")
	assert.NotContains(t, out, "FC_INVALID_OBJECT, 0, 0", "Go tables carry no sentinels")
}

func TestRenderGo_InvalidPackage(t *testing.T) {
	_, err := RenderGo(buildSample(t), "not-a-package")
	assert.Error(t, err)
}
