package settings

import (
	"strings"

	"github.com/sailfishos-mirror/fontconfig/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Build.Dir) == "" {
		return errors.New("build.dir cannot be empty")
	}
	if strings.TrimSpace(c.Build.SrcDir) == "" {
		return errors.New("build.srcdir cannot be empty")
	}

	// Extension must look like ".exe", empty means native binaries
	if c.Build.ExeExt != "" && !strings.HasPrefix(c.Build.ExeExt, ".") {
		return errors.Newf("build.exe_ext must start with '.', got %q", c.Build.ExeExt)
	}

	// Drive is a Windows drive letter such as "c:"
	if d := c.Build.Drive; d != "" && (len(d) != 2 || d[1] != ':' || !isLetter(d[0])) {
		return errors.Newf("build.drive must be a drive letter like \"z:\", got %q", d)
	}

	if c.Run.Debug < 0 {
		return errors.Newf("run.debug must be >= 0, got %d", c.Run.Debug)
	}
	if c.Run.SourceDateEpoch < 0 {
		return errors.Newf("run.source_date_epoch must be >= 0, got %d", c.Run.SourceDateEpoch)
	}
	if c.Run.TimeoutSeconds < 0 {
		return errors.Newf("run.timeout_seconds must be >= 0, got %d", c.Run.TimeoutSeconds)
	}
	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}
	return nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
