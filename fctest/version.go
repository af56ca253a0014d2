package fctest

import (
	"context"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/logger"
)

var versionLine = regexp.MustCompile(`fontconfig version (\d+\.\d+\.\d+)`)

// ToolVersion runs tool --version and parses the fontconfig version it
// reports. The tools print it on stderr; stdout is searched too.
func (h *Harness) ToolVersion(ctx context.Context, tool Tool) (*semver.Version, error) {
	if !h.ToolAvailable(tool) {
		return nil, errors.NewUnavailableError(errors.ErrToolUnavailable, "%s not built in %s", tool, h.buildDir)
	}
	res, err := h.RunTool(ctx, tool, []string{"--version"})
	if err != nil {
		return nil, err
	}
	return ParseVersion(res.Stderr + res.Stdout)
}

// ParseVersion extracts X.Y.Z from a "fontconfig version X.Y.Z" line.
func ParseVersion(output string) (*semver.Version, error) {
	m := versionLine.FindStringSubmatch(output)
	if m == nil {
		return nil, errors.Newf("no fontconfig version in %q", output)
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, errors.Wrapf(err, "parse version %s", m[1])
	}
	return v, nil
}

// SatisfiesVersion reports whether tool's version meets constraint, for
// example ">= 2.16".
func (h *Harness) SatisfiesVersion(ctx context.Context, tool Tool, constraint string) (bool, *semver.Version, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, nil, errors.Wrapf(err, "invalid version constraint %q", constraint)
	}
	v, err := h.ToolVersion(ctx, tool)
	if err != nil {
		return false, nil, err
	}
	ok := c.Check(v)
	h.log.Debugw("version check",
		logger.FieldTool, string(tool),
		"version", v.String(),
		"constraint", constraint,
		"ok", ok)
	return ok, v, nil
}
