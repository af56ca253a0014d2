package fctest

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailfishos-mirror/fontconfig/errors"
	testutil "github.com/sailfishos-mirror/fontconfig/internal/testing"
	"github.com/sailfishos-mirror/fontconfig/settings"
)

// testConfig points at an empty build tree with native binaries and no
// sandbox support.
func testConfig(t *testing.T) *settings.Config {
	t.Helper()
	build, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return &settings.Config{
		Build: settings.BuildConfig{Dir: build, SrcDir: t.TempDir()},
	}
}

func newTestHarness(t *testing.T, cfg *settings.Config) *Harness {
	t.Helper()
	h, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

// fakeTool installs a shell script as <builddir>/<tool>/<tool>.
func fakeTool(t *testing.T, h *Harness, tool Tool, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}
	return testutil.FakeTool(t, filepath.Join(h.BuildDir(), string(tool)), string(tool), body)
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestNew_CreatesTempPaths(t *testing.T) {
	h, err := New(testConfig(t))
	require.NoError(t, err)

	assert.DirExists(t, h.FontDir())
	assert.DirExists(t, h.CacheDir())
	assert.FileExists(t, h.ConfFile())
	for _, p := range []string{h.FontDir(), h.CacheDir(), h.ConfFile()} {
		assert.True(t, strings.HasPrefix(filepath.Base(p), "fontconfig."), p)
	}
	assert.True(t, strings.HasSuffix(h.FontDir(), ".host_fontdir"))
	assert.True(t, strings.HasSuffix(h.CacheDir(), ".host_cachedir"))
	assert.True(t, strings.HasSuffix(h.ConfFile(), ".host.conf"))
	assert.NotEmpty(t, h.RunID())

	require.NoError(t, h.Close())
	for _, p := range []string{h.FontDir(), h.CacheDir(), h.ConfFile()} {
		assert.NoFileExists(t, p)
		assert.NoDirExists(t, p)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	cfg := testConfig(t)
	cfg.Build.ExeExt = "exe"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestNew_SourceDateEpoch(t *testing.T) {
	unsetEnv(t, "SOURCE_DATE_EPOCH")
	cfg := testConfig(t)
	cfg.Run.SourceDateEpoch = 1700000000

	h := newTestHarness(t, cfg)
	assert.Equal(t, "1700000000", h.Env().Get("SOURCE_DATE_EPOCH"))

	t.Setenv("SOURCE_DATE_EPOCH", "42")
	h = newTestHarness(t, cfg)
	assert.Equal(t, "42", h.Env().Get("SOURCE_DATE_EPOCH"), "process environment wins")
}

func TestNew_Wrapper(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tools.Wrapper = `env FOO="a b"`
	h := newTestHarness(t, cfg)

	inv := h.PrepareCommand("/bin/true", []string{"x"})
	assert.Equal(t, []string{"env", "FOO=a b", "/bin/true", "x"}, inv.Args)

	cfg.Tools.Wrapper = `env "unterminated`
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_WindowsBuildWithoutRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("native Windows needs no runner")
	}
	t.Setenv("PATH", t.TempDir())
	if _, err := exec.LookPath("wine"); err == nil {
		t.Skip("wine still reachable")
	}

	cfg := testConfig(t)
	cfg.Build.ExeExt = ".exe"
	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsUnavailableError(err))
	assert.True(t, errors.Is(err, errors.ErrToolUnavailable))
}

func TestNew_MissingBwrap(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tools.Bwrap = "definitely-not-bwrap"
	h := newTestHarness(t, cfg)
	assert.False(t, h.HasSandbox())
}

func TestToolPath(t *testing.T) {
	cfg := testConfig(t)
	h := newTestHarness(t, cfg)

	assert.Equal(t, filepath.Join(cfg.Build.Dir, "fc-list", "fc-list"), h.ToolPath(ToolList))
	assert.False(t, h.ToolAvailable(ToolList))

	fakeTool(t, h, ToolList, "exit 0")
	assert.True(t, h.ToolAvailable(ToolList))
	assert.False(t, h.ToolAvailable(ToolMatch))

	h.exeExt = ".exe"
	h.drive = "z:"
	assert.Equal(t, "z:"+filepath.ToSlash(filepath.Join(cfg.Build.Dir, "fc-cache", "fc-cache.exe")), h.ToolPath(ToolCache))
}

func TestTestProgram(t *testing.T) {
	h := newTestHarness(t, testConfig(t))

	_, err := h.TestProgram("test-bz106618")
	assert.True(t, errors.Is(err, errors.ErrToolUnavailable))

	want := testutil.WriteFile(t, filepath.Join(h.BuildDir(), "test"), "test_bz106618", "")
	got, err := h.TestProgram("test-bz106618")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	dashed := testutil.WriteFile(t, filepath.Join(h.BuildDir(), "test"), "test-bz106618", "")
	got, err = h.TestProgram("test-bz106618")
	require.NoError(t, err)
	assert.Equal(t, dashed, got, "dashed name is tried first")
}

func TestConvertPath(t *testing.T) {
	tests := []struct {
		name  string
		drive string
		path  string
		want  string
	}{
		{name: "no drive", path: "/tmp/fonts", want: "/tmp/fonts"},
		{name: "absolute", drive: "z:", path: "/tmp/fonts", want: "z:/tmp/fonts"},
		{name: "relative", drive: "z:", path: "a/b", want: "z:/a/b"},
		{name: "backslashes", drive: "c:", path: `\build\fc-list`, want: "c:/build/fc-list"},
		{name: "has drive", drive: "z:", path: `c:\fonts`, want: `c:\fonts`},
		{name: "unc", drive: "z:", path: `\\server\share`, want: `\\server\share`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertPath(tt.drive, tt.path))
		})
	}
}

func TestTempDir_RemovedOnClose(t *testing.T) {
	h, err := New(testConfig(t))
	require.NoError(t, err)

	dir, err := h.TempDir(t.TempDir(), "extra")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, ".extra"))
	file, err := h.TempFile("", "extra.conf")
	require.NoError(t, err)

	require.NoError(t, h.Close())
	assert.NoDirExists(t, dir)
	assert.NoFileExists(t, file)
}
