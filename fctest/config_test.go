package fctest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/sailfishos-mirror/fontconfig/internal/testing"
)

func TestConfig_Default(t *testing.T) {
	h := newTestHarness(t, testConfig(t))

	conf := h.Config()
	assert.Contains(t, conf, "<fontconfig>")
	assert.Contains(t, conf, "<dir>"+h.FontDir()+"</dir>")
	assert.Contains(t, conf, "<cachedir>"+h.CacheDir()+"</cachedir>")
	assert.Contains(t, conf, "</fontconfig>")
}

func TestConfig_ConvertsPaths(t *testing.T) {
	h := newTestHarness(t, testConfig(t))
	h.drive = "z:"

	conf := h.Config()
	assert.Contains(t, conf, "<dir>z:"+h.FontDir()+"</dir>")
	assert.Contains(t, conf, "<cachedir>z:"+h.CacheDir()+"</cachedir>")
}

func TestSetup(t *testing.T) {
	h := newTestHarness(t, testConfig(t))
	h.AddExtra(`<include ignore_missing="yes">/nonexistent.conf</include>`)

	require.NoError(t, h.Setup(nil))
	written := testutil.ReadFile(t, h.ConfFile())
	assert.Equal(t, h.Config(), written)
	assert.Contains(t, written, `<include ignore_missing="yes">/nonexistent.conf</include>`)
	assert.Equal(t, h.ConfFile(), h.Env().Get("FONTCONFIG_FILE"))
}

func TestSetup_RendererIsRemembered(t *testing.T) {
	h := newTestHarness(t, testConfig(t))
	custom := ConfigRendererFunc(func(d ConfigData) string {
		return fmt.Sprintf(`<fontconfig><dir>%s</dir><cachedir prefix="xdg">fontconfig</cachedir></fontconfig>`, d.FontDir)
	})

	require.NoError(t, h.Setup(custom))
	first := testutil.ReadFile(t, h.ConfFile())
	assert.Contains(t, first, `prefix="xdg"`)

	h.SetConfFile(testutil.WriteFile(t, t.TempDir(), "second.conf", ""))
	require.NoError(t, h.Setup(nil))
	assert.Equal(t, first, testutil.ReadFile(t, h.ConfFile()))
	assert.Equal(t, h.ConfFile(), h.Env().Get("FONTCONFIG_FILE"))

	require.NoError(t, h.Setup(DefaultConfig))
	assert.NotContains(t, testutil.ReadFile(t, h.ConfFile()), `prefix="xdg"`)
}

func TestSetup_CacheDirOverride(t *testing.T) {
	h := newTestHarness(t, testConfig(t))
	other := t.TempDir()
	h.SetCacheDir(other)

	require.NoError(t, h.Setup(nil))
	assert.Contains(t, testutil.ReadFile(t, h.ConfFile()), "<cachedir>"+other+"</cachedir>")
}

func TestSetRemapDir(t *testing.T) {
	h := newTestHarness(t, testConfig(t))
	include := `<include ignore_missing="yes">extra.conf</include>`
	h.AddExtra(include)

	h.SetRemapDir("/remapped/a")
	require.Len(t, h.RemapDirs(), 1)
	assert.Equal(t, `<remap-dir as-path="`+h.FontDir()+`">/remapped/a</remap-dir>`, h.RemapDirs()[0])

	h.SetRemapDir("/remapped/b")
	require.Len(t, h.RemapDirs(), 1, "replaces the previous element")
	assert.Contains(t, h.RemapDirs()[0], "/remapped/b")

	h.SetRemapDir("")
	assert.Empty(t, h.RemapDirs())
	assert.Equal(t, include, h.Extra(), "other extras are kept")
}
