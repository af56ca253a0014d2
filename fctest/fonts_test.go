package fctest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailfishos-mirror/fontconfig/errors"
	testutil "github.com/sailfishos-mirror/fontconfig/internal/testing"
)

func assertMtime(t *testing.T, path string, want time.Time) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(want), "%s: mtime %v, want %v", path, info.ModTime(), want)
}

func TestInstallFont_RelativeDest(t *testing.T) {
	h := newTestHarness(t, testConfig(t))
	src := t.TempDir()
	a := testutil.WriteFile(t, src, "4x6.pcf", "font a")
	b := testutil.WriteFile(t, src, "8x16.pcf", "font b")
	require.NoError(t, os.Chmod(a, 0600))

	mtime := time.Unix(1500000000, 0)
	require.NoError(t, h.InstallFont([]string{a, b}, filepath.Join("a", "a"), mtime))

	dir := filepath.Join(h.FontDir(), "a", "a")
	assert.Equal(t, "font a", testutil.ReadFile(t, filepath.Join(dir, "4x6.pcf")))
	assert.Equal(t, "font b", testutil.ReadFile(t, filepath.Join(dir, "8x16.pcf")))

	info, err := os.Stat(filepath.Join(dir, "4x6.pcf"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assertMtime(t, filepath.Join(dir, "4x6.pcf"), mtime)
	assertMtime(t, filepath.Join(dir, "8x16.pcf"), mtime)
	assertMtime(t, h.FontDir(), mtime)
}

func TestInstallFont_AbsoluteDest(t *testing.T) {
	h := newTestHarness(t, testConfig(t))
	src := testutil.WriteFile(t, t.TempDir(), "4x6.pcf", "font")
	dest := filepath.Join(t.TempDir(), "sysroot", "fonts")

	require.NoError(t, h.InstallFont([]string{src}, dest, time.Unix(1500000000, 0)))
	assert.FileExists(t, filepath.Join(dest, "4x6.pcf"))
	assert.NoFileExists(t, filepath.Join(h.FontDir(), "4x6.pcf"))
}

func TestInstallFont_KeepsSourceMtime(t *testing.T) {
	unsetEnv(t, "SOURCE_DATE_EPOCH")
	h := newTestHarness(t, testConfig(t))
	src := testutil.WriteFile(t, t.TempDir(), "4x6.pcf", "font")
	orig := time.Unix(1400000000, 0)
	testutil.SetMtime(t, src, orig)

	require.NoError(t, h.InstallFont([]string{src}, ".", time.Time{}))
	assertMtime(t, filepath.Join(h.FontDir(), "4x6.pcf"), orig)

	after, err := os.Stat(h.FontDir())
	require.NoError(t, err)
	assert.False(t, after.ModTime().Equal(orig), "font dir mtime is only set for an explicit time")
}

func TestInstallFont_SourceDateEpoch(t *testing.T) {
	h := newTestHarness(t, testConfig(t))
	h.Env().Set("SOURCE_DATE_EPOCH", "1000")
	src := testutil.WriteFile(t, t.TempDir(), "4x6.pcf", "font")

	require.NoError(t, h.InstallFont([]string{src}, ".", time.Time{}))
	assertMtime(t, filepath.Join(h.FontDir(), "4x6.pcf"), time.Unix(1000, 0))
	assertMtime(t, h.FontDir(), time.Unix(1000, 0))
}

func TestInstallFont_EmptyListCreatesDir(t *testing.T) {
	unsetEnv(t, "SOURCE_DATE_EPOCH")
	h := newTestHarness(t, testConfig(t))

	require.NoError(t, h.InstallFont(nil, "a", time.Time{}))
	assert.DirExists(t, filepath.Join(h.FontDir(), "a"))
}

func TestInstallFont_MissingSource(t *testing.T) {
	h := newTestHarness(t, testConfig(t))

	err := h.InstallFont([]string{filepath.Join(t.TempDir(), "nope.pcf")}, ".", time.Time{})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestTestFonts(t *testing.T) {
	src := t.TempDir()

	_, err := TestFonts(src)
	assert.True(t, errors.Is(err, errors.ErrFontUnavailable))

	a := testutil.WriteFile(t, src, filepath.Join("test", "4x6.pcf"), "")
	_, err = TestFonts(src)
	assert.True(t, errors.Is(err, errors.ErrFontUnavailable), "8x16.pcf still missing")

	b := testutil.WriteFile(t, src, filepath.Join("test", "8x16.pcf"), "")
	fonts, err := TestFonts(src)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, fonts)

	// srcdir may already be the test directory
	fonts, err = TestFonts(filepath.Join(src, "test"))
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, fonts)
}

func TestBrokenFonts(t *testing.T) {
	src := t.TempDir()
	for _, n := range []string{"broken_cff_major.otf", "no_family_name.ttf"} {
		testutil.WriteFile(t, src, n, "")
	}
	_, err := BrokenFonts(src)
	assert.True(t, errors.IsUnavailableError(err))

	testutil.WriteFile(t, src, "no_family_name_serif.ttf", "")
	fonts, err := BrokenFonts(src)
	require.NoError(t, err)
	assert.Len(t, fonts, 3)
}

func TestExternalFonts(t *testing.T) {
	build := t.TempDir()

	fonts, err := ExternalFonts(build)
	require.NoError(t, err)
	assert.Empty(t, fonts)

	z := testutil.WriteFile(t, build, filepath.Join("testfonts", "z.ttf"), "")
	a := testutil.WriteFile(t, build, filepath.Join("testfonts", "roboto", "fonts", "a.ttf"), "")
	testutil.WriteFile(t, build, filepath.Join("testfonts", "README.md"), "")
	testutil.WriteFile(t, build, filepath.Join("testfonts", "b.otf"), "")

	fonts, err = ExternalFonts(build)
	require.NoError(t, err)
	assert.Equal(t, []string{a, z}, fonts)
}

func TestLocateFont(t *testing.T) {
	dir := t.TempDir()
	want := testutil.WriteFile(t, dir, "local-test-font.ttf", "")

	got, err := LocateFont("local-test-font.ttf", t.TempDir(), dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = LocateFont("no-such-font-for-fctest.ttf", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFontUnavailable))
}

func TestResolveFont(t *testing.T) {
	cfg := testConfig(t)
	h := newTestHarness(t, cfg)
	bundled := testutil.WriteFile(t, h.SrcDir(), filepath.Join("test", "4x6.pcf"), "")
	direct := testutil.WriteFile(t, t.TempDir(), "direct.ttf", "")

	got, err := h.ResolveFont(direct)
	require.NoError(t, err)
	assert.Equal(t, direct, got, "existing paths are used as given")

	got, err = h.ResolveFont("4x6.pcf")
	require.NoError(t, err)
	assert.Equal(t, bundled, got)

	_, err = h.ResolveFont("no-such-font-for-fctest.ttf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFontUnavailable))
}
