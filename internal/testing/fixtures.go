package testing

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteFile creates dir/name with content, creating parent directories.
// Returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// SetMtime sets both access and modification time of path.
func SetMtime(t *testing.T, path string, mtime time.Time) {
	t.Helper()

	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Failed to set mtime on %s: %v", path, err)
	}
}

// FakeTool writes an executable shell script named name into dir.
// The script body runs under /bin/sh.
func FakeTool(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := WriteFile(t, dir, name, "#!/bin/sh\n"+body+"\n")
	if err := os.Chmod(path, 0755); err != nil {
		t.Fatalf("Failed to chmod %s: %v", path, err)
	}
	return path
}

// ConstantList is a small list file: two weights and an ambiguous name.
const ConstantList = `# name	object	value
bold	FC_WEIGHT	FC_WEIGHT_BOLD
Light	FC_WEIGHT	FC_WEIGHT_LIGHT

mono	FC_SPACING	FC_MONO
`

// ObjectHeader declares objects the way fcobjs.h does.
const ObjectHeader = `/* Object list
 * FC_OBJECT (BOGUS, inside, comment)
 */
FC_OBJECT (FAMILY,		FcTypeString,	FcCompareFamily)	/* "family" */
FC_OBJECT (SPACING,		FcTypeInteger,	FcCompareNumber)
// FC_OBJECT (DISABLED, FcTypeBool, NULL)
FC_OBJECT (WEIGHT,		FcTypeRange,	FcCompareRange)
`
