package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailfishos-mirror/fontconfig/fcconst"
	testutil "github.com/sailfishos-mirror/fontconfig/internal/testing"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func inputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return testutil.WriteFile(t, dir, "fcconst.list", testutil.ConstantList),
		testutil.WriteFile(t, dir, "fcobjs.h", testutil.ObjectHeader)
}

func generated(t *testing.T, list, header string, mode fcconst.Mode) string {
	t.Helper()
	data, err := fcconst.Generate(fcconst.Options{ListPath: list, HeaderPath: header, Mode: mode, Package: "fcconst"})
	require.NoError(t, err)
	return string(data)
}

func TestGenerate_Stdout(t *testing.T) {
	list, header := inputs(t)

	out, _, err := execute(t, list, header)
	require.NoError(t, err)
	assert.Equal(t, generated(t, list, header, fcconst.ModeTables), out)

	out, _, err = execute(t, "-t", list, header)
	require.NoError(t, err)
	assert.Equal(t, generated(t, list, header, fcconst.ModeCheck), out)

	out, _, err = execute(t, "--lang", "go", list, header)
	require.NoError(t, err)
	assert.Equal(t, generated(t, list, header, fcconst.ModeGo), out)
}

func TestGenerate_OutputFile(t *testing.T) {
	list, header := inputs(t)
	path := filepath.Join(t.TempDir(), "fcconst.h")

	out, _, err := execute(t, "-o", path, list, header)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, generated(t, list, header, fcconst.ModeTables), testutil.ReadFile(t, path))
}

func TestGenerate_Errors(t *testing.T) {
	list, header := inputs(t)

	_, _, err := execute(t, list)
	assert.Error(t, err, "both inputs are required")

	_, _, err = execute(t, "--lang", "rust", list, header)
	assert.Error(t, err)

	_, _, err = execute(t, "--lang", "go", "--package", "not-valid", list, header)
	assert.Error(t, err)

	bad := testutil.WriteFile(t, t.TempDir(), "bad.list", "bold FC_WEIGHT\n")
	path := testutil.WriteFile(t, t.TempDir(), "fcconst.h", "previous\n")
	_, _, err = execute(t, "-o", path, bad, header)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.list:1")
	assert.Equal(t, "previous\n", testutil.ReadFile(t, path))
}

func TestCheck(t *testing.T) {
	list, header := inputs(t)
	path := filepath.Join(t.TempDir(), "fcconst.h")

	out, _, err := execute(t, "check", "-o", path, list, header)
	require.Error(t, err, "missing file is stale")
	assert.Contains(t, out, "out of date")

	_, _, err = execute(t, "-o", path, list, header)
	require.NoError(t, err)

	out, _, err = execute(t, "check", "-o", path, list, header)
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	testutil.WriteFile(t, filepath.Dir(path), filepath.Base(path),
		strings.Replace(testutil.ReadFile(t, path), "FC_WEIGHT_BOLD", "FC_WEIGHT_HEAVY", 1))
	out, _, err = execute(t, "check", "-o", path, list, header)
	require.Error(t, err)
	assert.Contains(t, out, "--- "+path+"\n+++ generated\n@@ ")
	assert.Contains(t, out, "\n-")
	assert.Contains(t, out, "FC_WEIGHT_HEAVY")

	_, _, err = execute(t, "check", list, header)
	assert.Error(t, err, "stdout cannot be checked")
}

func TestWatch_RequiresOutputFile(t *testing.T) {
	list, header := inputs(t)
	_, _, err := execute(t, "watch", list, header)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fc-const: fontconfig version")

	out, _, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "fc-const", info["program"])
}

func TestVerboseLogsGoToStderr(t *testing.T) {
	list, header := inputs(t)
	out, errOut, err := execute(t, "-vv", list, header)
	require.NoError(t, err)
	assert.Equal(t, generated(t, list, header, fcconst.ModeTables), out)
	assert.Contains(t, errOut, "inputs parsed")
}
