package fctest

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flopp/go-findfont"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/logger"
)

// InstallFont copies files into dest, keeping their mode and timestamps.
// A relative dest is taken under the font dir. When mtime is zero the
// SOURCE_DATE_EPOCH of the harness environment is used, if set. A non-zero
// time is applied to every copied file and to the font dir itself.
func (h *Harness) InstallFont(files []string, dest string, mtime time.Time) error {
	if mtime.IsZero() {
		mtime = h.sourceDateEpoch()
	}

	dir := dest
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(h.fontDir, dest)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	for _, f := range files {
		target := filepath.Join(dir, filepath.Base(f))
		if err := copyFile(f, target); err != nil {
			return err
		}
		if !mtime.IsZero() {
			if err := touch(target, mtime); err != nil {
				return err
			}
		}
		if logger.ShouldOutput(logger.Verbosity, logger.OutputProgress) {
			h.log.Infow("installed font", logger.FieldFile, target)
		}
	}

	if !mtime.IsZero() {
		return touch(h.fontDir, mtime)
	}
	return nil
}

func (h *Harness) sourceDateEpoch() time.Time {
	v, ok := h.env.Lookup("SOURCE_DATE_EPOCH")
	if !ok {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || secs <= 0 {
		h.log.Warnw("ignoring invalid SOURCE_DATE_EPOCH", "value", v)
		return time.Time{}
	}
	return time.Unix(secs, 0)
}

// copyFile copies src to dst with src's permission bits and mtime.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.WrapNotFound(err, src)
		}
		return errors.Wrapf(err, "open %s", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "close %s", dst)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "chmod %s", dst)
	}
	return touch(dst, info.ModTime())
}

// fontDataDir returns srcdir/test when it exists, srcdir otherwise.
func fontDataDir(srcdir string) string {
	if info, err := os.Stat(filepath.Join(srcdir, "test")); err == nil && info.IsDir() {
		return filepath.Join(srcdir, "test")
	}
	return srcdir
}

func requireFonts(dir string, names ...string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		p := filepath.Join(dir, n)
		if _, err := os.Stat(p); err != nil {
			return nil, errors.NewUnavailableError(errors.ErrFontUnavailable, "no %s available in %s", n, dir)
		}
		out = append(out, p)
	}
	return out, nil
}

// TestFonts returns the two bitmap fonts shipped with the sources,
// 4x6.pcf and 8x16.pcf, in that order.
func TestFonts(srcdir string) ([]string, error) {
	return requireFonts(fontDataDir(srcdir), "4x6.pcf", "8x16.pcf")
}

// BrokenFonts returns fonts that fc-query and fc-scan must reject or
// handle specially.
func BrokenFonts(srcdir string) ([]string, error) {
	return requireFonts(fontDataDir(srcdir),
		"broken_cff_major.otf", "no_family_name.ttf", "no_family_name_serif.ttf")
}

// ExternalFonts returns every .ttf under <builddir>/testfonts, sorted.
// A missing directory yields an empty list.
func ExternalFonts(builddir string) ([]string, error) {
	root := filepath.Join(builddir, "testfonts")
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".ttf") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	sort.Strings(out)
	return out, nil
}

// LocateFont finds a font file by name in dirs, then among the fonts
// installed on the system.
func LocateFont(name string, dirs ...string) (string, error) {
	for _, d := range dirs {
		p := filepath.Join(d, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	path, err := findfont.Find(name)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "locate font %s", name), errors.ErrFontUnavailable)
	}
	return path, nil
}

// ResolveFont returns name itself when it is an existing file. Otherwise
// name is looked up in the source tree's font directory, then among the
// system fonts.
func (h *Harness) ResolveFont(name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	path, err := LocateFont(name, fontDataDir(h.srcDir), h.srcDir)
	if err != nil {
		return "", err
	}
	h.log.Debugw("resolved font", logger.FieldFile, path, "name", name)
	return path, nil
}
