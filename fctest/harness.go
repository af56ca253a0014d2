// Package fctest drives the fontconfig command-line tools from Go tests.
//
// A Harness owns a private font directory, cache directory and
// configuration file, and runs the built tools (fc-cache, fc-list,
// fc-match, ...) as subprocesses against them. Tools can also be run inside
// a bubblewrap sandbox with the directories bind-mounted at other paths,
// and through wine when testing a Windows cross build.
package fctest

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/logger"
	"github.com/sailfishos-mirror/fontconfig/settings"
)

// Tool names a fontconfig binary under the build directory.
type Tool string

const (
	ToolCache    Tool = "fc-cache"
	ToolCat      Tool = "fc-cat"
	ToolGenconf  Tool = "fc-genconf"
	ToolList     Tool = "fc-list"
	ToolMatch    Tool = "fc-match"
	ToolPattern  Tool = "fc-pattern"
	ToolQuery    Tool = "fc-query"
	ToolScan     Tool = "fc-scan"
	ToolValidate Tool = "fc-validate"
)

// Tools lists every tool the harness knows how to locate.
var Tools = []Tool{
	ToolCache, ToolCat, ToolGenconf, ToolList, ToolMatch,
	ToolPattern, ToolQuery, ToolScan, ToolValidate,
}

// tempPrefix starts the name of every temporary file and directory.
const tempPrefix = "fontconfig."

// Harness runs fontconfig tools against a private font setup.
// A Harness is not safe for concurrent use; tests that run in parallel
// create one each.
type Harness struct {
	mu sync.Mutex

	cfg   *settings.Config
	runID string
	log   *zap.SugaredLogger
	env   *Env

	buildDir string
	srcDir   string
	exeExt   string
	drive    string
	wrapper  []string
	bwrap    string
	timeout  time.Duration

	fontDir  string
	cacheDir string
	confFile string
	temps    []string

	extra      []string
	renderer   ConfigRenderer
	debug      int
	fontations bool
	sandbox    *Sandbox
}

// New creates a harness with fresh temporary font, cache and config paths.
// Call Close to remove them.
func New(cfg *settings.Config) (*Harness, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid harness config")
	}

	runID := uuid.New().String()
	h := &Harness{
		cfg:        cfg,
		runID:      runID,
		log:        logger.Named("fctest").With(logger.FieldRunID, runID),
		env:        CloneEnv(),
		buildDir:   cfg.Build.Dir,
		srcDir:     cfg.Build.SrcDir,
		exeExt:     cfg.Build.ExeExt,
		drive:      strings.ToLower(cfg.Build.Drive),
		debug:      cfg.Run.Debug,
		fontations: cfg.Run.Fontations,
		timeout:    time.Duration(cfg.Run.TimeoutSeconds) * time.Second,
		renderer:   DefaultConfig,
	}
	if cfg.Run.SourceDateEpoch > 0 {
		if _, ok := h.env.Lookup("SOURCE_DATE_EPOCH"); !ok {
			h.env.Set("SOURCE_DATE_EPOCH", strconv.FormatInt(cfg.Run.SourceDateEpoch, 10))
		}
	}

	var err error
	if h.fontDir, err = h.TempDir("", "host_fontdir"); err != nil {
		return nil, err
	}
	if h.cacheDir, err = h.TempDir("", "host_cachedir"); err != nil {
		h.Close()
		return nil, err
	}
	if h.confFile, err = h.TempFile("", "host.conf"); err != nil {
		h.Close()
		return nil, err
	}

	if err := h.setupRunner(); err != nil {
		h.Close()
		return nil, err
	}

	if cfg.Tools.Bwrap != "" {
		if path, err := exec.LookPath(cfg.Tools.Bwrap); err == nil {
			h.bwrap = path
		}
	}

	h.log.Debugw("harness created",
		logger.FieldDir, h.fontDir,
		"cachedir", h.cacheDir,
		"conffile", h.confFile,
		"builddir", h.buildDir,
		logger.FieldSandbox, h.bwrap != "")
	return h, nil
}

// setupRunner configures the command prefix used to start tools. An
// explicit wrapper wins; otherwise a Windows build on another OS runs
// through wine with the mingw runtime on WINEPATH.
func (h *Harness) setupRunner() error {
	if w := strings.TrimSpace(h.cfg.Tools.Wrapper); w != "" {
		words, err := shellquote.Split(w)
		if err != nil {
			return errors.Wrapf(err, "invalid tools.wrapper %q", w)
		}
		h.wrapper = words
		return nil
	}

	if h.exeExt == "" || runtime.GOOS == "windows" {
		return nil
	}

	wine, err := exec.LookPath("wine")
	if err != nil {
		return errors.NewUnavailableError(errors.ErrToolUnavailable, "no runner available for %s binaries: wine not found", h.exeExt)
	}
	h.wrapper = []string{wine}
	h.drive = "z:"

	sysroot, err := h.querySysroot()
	if err != nil {
		return err
	}
	h.env.Set("WINEPATH", strings.Join([]string{
		h.ConvertPath(h.buildDir),
		h.ConvertPath(filepath.Join(sysroot, "mingw", "bin")),
	}, ";"))
	return nil
}

// querySysroot asks the cross compiler where its runtime lives.
func (h *Harness) querySysroot() (string, error) {
	cc := h.cfg.Tools.CC
	if cc == "" {
		cc = "cc"
	}
	words, err := shellquote.Split(cc)
	if err != nil || len(words) == 0 {
		return "", errors.Newf("invalid tools.cc %q", cc)
	}

	cmd := exec.Command(words[0], append(words[1:], "-print-sysroot")...)
	cmd.Env = h.env.Vars()
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err = cmd.Run()
	sysroot := strings.TrimRight(stdout.String(), "\r\n \t")
	if err != nil || sysroot == "" {
		return "", errors.WithHint(
			errors.Newf("unable to get sysroot from %s", cc),
			"set CC to the mingw cross compiler used for the build")
	}
	return sysroot, nil
}

// Close removes every temporary path the harness created and leaves
// sandbox mode if still active.
func (h *Harness) Close() error {
	if h.sandbox != nil {
		_ = h.sandbox.Close()
	}

	h.mu.Lock()
	temps := h.temps
	h.temps = nil
	h.mu.Unlock()

	var firstErr error
	for i := len(temps) - 1; i >= 0; i-- {
		if err := os.RemoveAll(temps[i]); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "remove %s", temps[i])
		}
	}
	return firstErr
}

// TempDir creates a directory named fontconfig.*.<suffix> under dir (the
// system temp dir when empty). It is removed by Close.
func (h *Harness) TempDir(dir, suffix string) (string, error) {
	path, err := os.MkdirTemp(dir, tempPattern(suffix))
	if err != nil {
		return "", errors.Wrap(err, "create temp dir")
	}
	h.track(path)
	return path, nil
}

// TempFile creates an empty file named fontconfig.*.<suffix> under dir (the
// system temp dir when empty). It is removed by Close.
func (h *Harness) TempFile(dir, suffix string) (string, error) {
	f, err := os.CreateTemp(dir, tempPattern(suffix))
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "close %s", name)
	}
	h.track(name)
	return name, nil
}

func tempPattern(suffix string) string {
	if suffix == "" {
		return tempPrefix + "*"
	}
	return tempPrefix + "*." + suffix
}

func (h *Harness) track(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.temps = append(h.temps, path)
}

// RunID identifies this harness in log output.
func (h *Harness) RunID() string { return h.runID }

// BuildDir is the fontconfig build directory.
func (h *Harness) BuildDir() string { return h.buildDir }

// SrcDir is the fontconfig source directory.
func (h *Harness) SrcDir() string { return h.srcDir }

// ExeExt is the executable suffix of the built tools.
func (h *Harness) ExeExt() string { return h.exeExt }

// FontDir is the host font directory listed in the generated config.
func (h *Harness) FontDir() string { return h.fontDir }

// CacheDir is the cache directory listed in the generated config.
// Inside a sandbox it is the remapped cache directory.
func (h *Harness) CacheDir() string { return h.cacheDir }

// ConfFile is the host configuration file written by Setup.
func (h *Harness) ConfFile() string { return h.confFile }

// Env is the harness environment passed to every tool.
func (h *Harness) Env() *Env { return h.env }

// HasSandbox reports whether bubblewrap was found.
func (h *Harness) HasSandbox() bool { return h.bwrap != "" }

// InSandbox reports whether a sandbox is currently active.
func (h *Harness) InSandbox() bool { return h.sandbox != nil }

// SetCacheDir points the generated config at another cache directory.
// Takes effect on the next Setup.
func (h *Harness) SetCacheDir(dir string) { h.cacheDir = dir }

// SetConfFile makes Setup write to another config file.
func (h *Harness) SetConfFile(path string) { h.confFile = path }

// SetFontations sets the default for FC_FONTATIONS on later runs.
func (h *Harness) SetFontations(on bool) { h.fontations = on }

// Fontations reports whether runs default to the fontations backend.
func (h *Harness) Fontations() bool { return h.fontations }

// ToolPath returns the path passed to the runner for tool:
// <builddir>/<tool>/<tool><exe_ext>, drive-converted.
func (h *Harness) ToolPath(tool Tool) string {
	return h.ConvertPath(h.toolFile(tool))
}

// ToolAvailable reports whether the tool binary exists in the build tree.
func (h *Harness) ToolAvailable(tool Tool) bool {
	info, err := os.Stat(h.toolFile(tool))
	return err == nil && !info.IsDir()
}

func (h *Harness) toolFile(tool Tool) string {
	name := string(tool)
	return filepath.Join(h.buildDir, name, name+h.exeExt)
}

// TestProgram locates a helper test binary under <builddir>/test, trying
// both the dashed and the underscored spelling of name.
func (h *Harness) TestProgram(name string) (string, error) {
	candidates := []string{name, strings.ReplaceAll(name, "-", "_")}
	for _, c := range candidates {
		path := filepath.Join(h.buildDir, "test", c+h.exeExt)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.NewUnavailableError(errors.ErrToolUnavailable,
		"no test program %s in %s", name, filepath.Join(h.buildDir, "test"))
}

// ConvertPath prefixes the configured drive to paths without one, using
// forward slashes, so Windows binaries see host paths. Without a drive the
// path is returned unchanged.
func (h *Harness) ConvertPath(path string) string {
	return convertPath(h.drive, path)
}

func convertPath(drive, path string) string {
	if drive == "" || hasDrive(path) {
		return path
	}
	p := strings.ReplaceAll(path, `\`, "/")
	return drive + "/" + strings.TrimLeft(p, "/")
}

// hasDrive reports whether path starts with a drive letter or is a UNC path.
func hasDrive(path string) bool {
	if len(path) >= 2 && path[1] == ':' {
		c := path[0]
		return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	}
	return strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
}
