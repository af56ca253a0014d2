package fctest

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/logger"
)

// Bind is one bubblewrap --bind mount: host Src appears at Dst.
type Bind struct {
	Src string
	Dst string
}

// Sandbox is an active bubblewrap mode of a Harness. The font, cache and
// build directories are mounted at fresh paths under BaseDir, and the
// config file written for the sandbox lists the remapped cache dir.
type Sandbox struct {
	h *Harness

	BaseDir  string
	FontDir  string
	CacheDir string
	BuildDir string
	ConfFile string

	binds        []Bind
	origCacheDir string
	closed       bool
}

// Sandboxed switches the harness into sandbox mode. Remapped directories
// are created under basedir. The host cache dir and build dir are always
// mounted at their remapped paths; binds replaces the default font dir
// mount when non-empty and may override the base mounts by source path.
//
// The config is written with a placeholder <dir> carrying the font dir
// mtime, so fc-cache inside the sandbox does not consider the host cache
// stale. Later runs go through bwrap until Close.
func (h *Harness) Sandboxed(basedir string, binds map[string]string) (*Sandbox, error) {
	if h.bwrap == "" {
		return nil, errors.NewUnavailableError(errors.ErrSandboxUnavailable, "no bwrap installed")
	}
	if h.sandbox != nil {
		return nil, errors.New("already in sandbox mode")
	}

	s := &Sandbox{h: h, BaseDir: basedir, origCacheDir: h.cacheDir}
	var err error
	if s.FontDir, err = mkdirTemp(basedir, "fontdir"); err != nil {
		return nil, err
	}
	if s.CacheDir, err = mkdirTemp(basedir, "cachedir"); err != nil {
		return nil, err
	}
	if s.BuildDir, err = mkdirTemp(basedir, "build"); err != nil {
		return nil, err
	}
	conf, err := os.CreateTemp(filepath.Join(h.buildDir, "test"), tempPattern("conf"))
	if err != nil {
		return nil, errors.Wrap(err, "create sandbox config")
	}
	s.ConfFile = conf.Name()
	if err := conf.Close(); err != nil {
		return nil, errors.Wrapf(err, "close %s", s.ConfFile)
	}

	s.binds = sandboxBinds(
		[]Bind{
			{Src: h.cacheDir, Dst: s.CacheDir},
			{Src: h.buildDir, Dst: s.BuildDir},
		},
		binds,
		Bind{Src: h.fontDir, Dst: s.FontDir},
	)

	h.SetRemapDir(s.FontDir)
	h.cacheDir = s.CacheDir
	h.sandbox = s

	if err := s.writeConfig(); err != nil {
		_ = s.Close()
		return nil, err
	}

	h.log.Infow("entered sandbox",
		logger.FieldDir, basedir,
		"fontdir", s.FontDir,
		"cachedir", s.CacheDir,
		"builddir", s.BuildDir)
	return s, nil
}

// writeConfig runs Setup with a stand-in font dir that has the host font
// dir's mtime.
func (s *Sandbox) writeConfig() error {
	h := s.h
	info, err := os.Stat(h.fontDir)
	if err != nil {
		return errors.Wrap(err, "stat font dir")
	}
	dummy, err := h.TempDir("", "")
	if err != nil {
		return err
	}
	if err := touch(dummy, info.ModTime()); err != nil {
		return err
	}

	fontDir := h.fontDir
	h.fontDir = dummy
	defer func() { h.fontDir = fontDir }()
	return h.Setup(nil)
}

// sandboxBinds orders the mounts: base first, then user binds by source
// path. A user bind whose source matches a base mount replaces its target.
// Without user binds the fallback mount is added.
func sandboxBinds(base []Bind, user map[string]string, fallback Bind) []Bind {
	out := append([]Bind(nil), base...)
	if len(user) == 0 {
		return append(out, fallback)
	}

	srcs := make([]string, 0, len(user))
	for src := range user {
		srcs = append(srcs, src)
	}
	sort.Strings(srcs)

next:
	for _, src := range srcs {
		for i := range out {
			if out[i].Src == src {
				out[i].Dst = user[src]
				continue next
			}
		}
		out = append(out, Bind{Src: src, Dst: user[src]})
	}
	return out
}

// Binds returns the mounts in the order they are passed to bwrap.
func (s *Sandbox) Binds() []Bind {
	return append([]Bind(nil), s.binds...)
}

// BindArgs renders the mounts as bwrap arguments.
func (s *Sandbox) BindArgs() []string {
	args := make([]string, 0, 3*len(s.binds))
	for _, b := range s.binds {
		args = append(args, "--bind", b.Src, b.Dst)
	}
	return args
}

// Close leaves sandbox mode: the host cache dir comes back, the
// <remap-dir> extra is dropped and FONTCONFIG_FILE names the host config
// again. The remapped directories under BaseDir are left for the caller.
func (s *Sandbox) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	h := s.h
	h.cacheDir = s.origCacheDir
	h.SetRemapDir("")
	h.sandbox = nil
	h.env.Set("FONTCONFIG_FILE", h.ConvertPath(h.confFile))

	if err := os.Remove(s.ConfFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", s.ConfFile)
	}
	h.log.Debugw("left sandbox", logger.FieldDir, s.BaseDir)
	return nil
}

func mkdirTemp(dir, suffix string) (string, error) {
	path, err := os.MkdirTemp(dir, tempPattern(suffix))
	if err != nil {
		return "", errors.Wrapf(err, "create %s under %s", suffix, dir)
	}
	return path, nil
}

// touch sets both access and modification time of path.
func touch(path string, t time.Time) error {
	if err := os.Chtimes(path, t, t); err != nil {
		return errors.Wrapf(err, "set mtime on %s", path)
	}
	return nil
}
