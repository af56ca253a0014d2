package fcconst

import (
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sailfishos-mirror/fontconfig/errors"
)

// CheckResult reports whether a generated file matches its inputs.
type CheckResult struct {
	// UpToDate is true when the file on disk equals a fresh generation
	UpToDate bool
	// Diff is a line diff (-existing +generated), empty when up to date
	Diff string
}

// Check regenerates output in memory and compares it with the file at path.
// A missing file is reported as out of date, not as an error.
func Check(opts Options, path string) (*CheckResult, error) {
	want, err := Generate(opts)
	if err != nil {
		return nil, err
	}

	have, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if string(have) == string(want) {
		return &CheckResult{UpToDate: true}, nil
	}
	return &CheckResult{Diff: DiffLines(path, string(have), string(want))}, nil
}

// DiffLines returns a unified diff from have (labelled name) to want
// (labelled "generated"), with three lines of context.
func DiffLines(name, have, want string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(have),
		B:        difflib.SplitLines(want),
		FromFile: name,
		ToFile:   "generated",
		Context:  3,
	})
	if err != nil {
		// only a failing writer errors, and the writer is a buffer
		return ""
	}
	return diff
}
