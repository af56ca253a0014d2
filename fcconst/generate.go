package fcconst

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/logger"
)

// Mode selects what Generate renders.
type Mode string

const (
	// ModeTables renders the C constant tables (fcconst.h)
	ModeTables Mode = "tables"
	// ModeCheck renders the C self-check program
	ModeCheck Mode = "check"
	// ModeGo renders the tables as Go source
	ModeGo Mode = "go"
)

// Options describes one generation run.
type Options struct {
	// ListPath is the constant list file
	ListPath string
	// HeaderPath is the object enumeration header (fcobjs.h)
	HeaderPath string
	// Mode defaults to ModeTables
	Mode Mode
	// Package is the Go package name for ModeGo
	Package string
}

// ParseMode maps a --lang/--test combination to a Mode.
func ParseMode(lang string, test bool) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "c":
		if test {
			return ModeCheck, nil
		}
		return ModeTables, nil
	case "go":
		if test {
			return "", errors.New("--test is only supported for C output")
		}
		return ModeGo, nil
	default:
		return "", errors.Newf("invalid language: %s (supported: c, go)", lang)
	}
}

// Generate parses both inputs and renders the requested output in memory.
// Nothing is written; callers decide where the bytes go.
func Generate(opts Options) ([]byte, error) {
	log := logger.Named("fc-const")

	entries, err := ParseList(opts.ListPath)
	if err != nil {
		return nil, err
	}
	objects, err := ParseObjects(opts.HeaderPath)
	if err != nil {
		return nil, err
	}
	showTables := logger.ShouldOutput(logger.Verbosity, logger.OutputTables)
	if showTables {
		log.Debugw("inputs parsed",
			logger.FieldFile, opts.ListPath,
			logger.FieldEntries, len(entries),
			logger.FieldObjects, objects.Len())
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeTables
	}

	if mode == ModeCheck {
		// The check program is built from the list alone, but the objects
		// still have to resolve so a broken list fails here and not in C.
		if _, err := Build(entries, objects); err != nil {
			return nil, err
		}
		return []byte(RenderCheck(entries)), nil
	}

	tables, err := Build(entries, objects)
	if err != nil {
		return nil, err
	}
	if showTables {
		log.Debugw("tables built",
			logger.FieldSymbols, len(tables.Symbols),
			logger.FieldObjectWidth, tables.ObjectWidth,
			logger.FieldSymbolWidth, tables.SymbolWidth)
	}

	switch mode {
	case ModeTables:
		return []byte(RenderTables(tables)), nil
	case ModeGo:
		return RenderGo(tables, opts.Package)
	default:
		return nil, errors.Newf("unknown mode %q", mode)
	}
}

// WriteOutput writes data to path, or to stdout when path is "" or "-".
// Files are replaced atomically: data goes to a temp file in the same
// directory which is then renamed over path. An existing file keeps its
// permissions; new files get 0644.
func WriteOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return errors.Wrap(err, "write stdout")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrapf(err, "close %s", tmpName)
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return errors.Wrapf(err, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrapf(err, "rename to %s", path)
	}
	return nil
}
