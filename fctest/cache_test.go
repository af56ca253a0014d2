package fctest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/sailfishos-mirror/fontconfig/internal/testing"
)

func TestCacheFiles(t *testing.T) {
	h := newTestHarness(t, testConfig(t))

	files, err := h.CacheFiles()
	require.NoError(t, err)
	assert.Empty(t, files)

	b := testutil.WriteFile(t, h.CacheDir(), "bbb-le64.cache-9", "x")
	a := testutil.WriteFile(t, h.CacheDir(), "aaa-le64.cache-9", "y")
	testutil.WriteFile(t, h.CacheDir(), "CACHEDIR.TAG", "")

	files, err = h.CacheFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestCacheHash(t *testing.T) {
	assert.Equal(t, "f28b7eb84768258d6665d9af93a9087e", CacheHash("/tmp/fontconfig.abc.host_fontdir"))
}

func TestSnapshotCaches(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "abc-le64.cache-9", "one")

	before, err := SnapshotCaches(dir)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, filepath.Base(path), before[0].Name)
	assert.Equal(t, int64(3), before[0].Size)

	again, err := SnapshotCaches(dir)
	require.NoError(t, err)
	assert.Equal(t, before, again)

	testutil.WriteFile(t, dir, "abc-le64.cache-9", "two")
	testutil.SetMtime(t, path, before[0].ModTime)
	after, err := SnapshotCaches(dir)
	require.NoError(t, err)
	assert.NotEqual(t, before[0].Digest, after[0].Digest, "content change is seen with equal size and mtime")
}
