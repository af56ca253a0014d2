package fctest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/logger"
)

// ConfigData is what a ConfigRenderer sees. Paths are already converted
// for the runner.
type ConfigData struct {
	// FontDir is the <dir> the tools scan
	FontDir string
	// CacheDir is the <cachedir> the tools write
	CacheDir string
	// Extra holds additional elements, one per line
	Extra string
}

// ConfigRenderer produces the fontconfig XML written by Setup.
type ConfigRenderer interface {
	RenderConfig(ConfigData) string
}

// ConfigRendererFunc adapts a function to ConfigRenderer.
type ConfigRendererFunc func(ConfigData) string

// RenderConfig calls f.
func (f ConfigRendererFunc) RenderConfig(d ConfigData) string { return f(d) }

// DefaultConfig lists the extra elements, the font dir and the cache dir.
var DefaultConfig ConfigRenderer = ConfigRendererFunc(func(d ConfigData) string {
	return fmt.Sprintf(`
        <fontconfig>
          %s
          <dir>%s</dir>
          <cachedir>%s</cachedir>
        </fontconfig>
        `, d.Extra, d.FontDir, d.CacheDir)
})

var remapDirElement = regexp.MustCompile(`^\s*<remap-dir\b`)

// AddExtra appends a raw XML element to the generated config.
func (h *Harness) AddExtra(element string) {
	h.extra = append(h.extra, element)
}

// Extra returns the extra elements joined by newlines.
func (h *Harness) Extra() string {
	return strings.Join(h.extra, "\n")
}

// RemapDirs returns the <remap-dir> elements among the extras.
func (h *Harness) RemapDirs() []string {
	var out []string
	for _, e := range h.extra {
		if remapDirElement.MatchString(e) {
			out = append(out, e)
		}
	}
	return out
}

// SetRemapDir replaces any <remap-dir> extra with one mapping the font dir
// to dir. An empty dir only removes the existing element.
func (h *Harness) SetRemapDir(dir string) {
	kept := h.extra[:0]
	for _, e := range h.extra {
		if !remapDirElement.MatchString(e) {
			kept = append(kept, e)
		}
	}
	h.extra = kept
	if dir != "" {
		h.extra = append(h.extra, fmt.Sprintf(`<remap-dir as-path="%s">%s</remap-dir>`, h.fontDir, dir))
	}
}

// Config renders the configuration the next Setup would write.
func (h *Harness) Config() string {
	return h.renderer.RenderConfig(ConfigData{
		FontDir:  h.ConvertPath(h.fontDir),
		CacheDir: h.ConvertPath(h.cacheDir),
		Extra:    h.Extra(),
	})
}

// Setup writes the configuration and points FONTCONFIG_FILE at it.
// A nil renderer keeps the one from the previous Setup, DefaultConfig at
// first. Inside a sandbox the file is written to the remapped location
// and FONTCONFIG_FILE names it as seen from within the sandbox.
func (h *Harness) Setup(renderer ConfigRenderer) error {
	if renderer != nil {
		h.renderer = renderer
	}
	conf := h.Config()
	if logger.ShouldOutput(logger.Verbosity, logger.OutputConfig) {
		h.log.Infow("fontconfig config", "xml", conf)
	}

	target := h.confFile
	if h.sandbox != nil {
		target = h.sandbox.ConfFile
	}
	if err := os.WriteFile(target, []byte(conf), 0644); err != nil {
		return errors.Wrapf(err, "write config %s", target)
	}

	if h.sandbox != nil {
		target = h.sandbox.visibleConfPath()
	}
	h.env.Set("FONTCONFIG_FILE", h.ConvertPath(target))
	return nil
}

// visibleConfPath maps the remapped config file into the remapped build
// dir when it lives under the build tree.
func (s *Sandbox) visibleConfPath() string {
	build, err := filepath.EvalSymlinks(s.h.buildDir)
	if err != nil {
		build = s.h.buildDir
	}
	if abs, err := filepath.Abs(build); err == nil {
		build = abs
	}
	rel, err := filepath.Rel(build, s.ConfFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return s.ConfFile
	}
	return filepath.Join(s.BuildDir, rel)
}
