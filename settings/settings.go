// Package settings loads the harness configuration.
//
// Values are layered, lowest precedence first: built-in defaults, the system
// file, the user file, the nearest project fctest.toml, then environment
// variables. The environment names used by the fontconfig build system
// (builddir, srcdir, EXEEXT, CC, SystemDrive, SOURCE_DATE_EPOCH, FC_DEBUG)
// are honoured as-is; any other key can be set with an FCTEST_ prefix.
package settings

// Config is the complete harness configuration
type Config struct {
	Build BuildConfig `mapstructure:"build" toml:"build" json:"build" yaml:"build"`
	Tools ToolsConfig `mapstructure:"tools" toml:"tools" json:"tools" yaml:"tools"`
	Run   RunConfig   `mapstructure:"run" toml:"run" json:"run" yaml:"run"`
	Log   LogConfig   `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// BuildConfig locates the fontconfig build and source trees
type BuildConfig struct {
	Dir    string `mapstructure:"dir" toml:"dir" json:"dir" yaml:"dir"`             // Build directory holding <tool>/<tool><exe_ext> (env: builddir)
	SrcDir string `mapstructure:"srcdir" toml:"srcdir" json:"srcdir" yaml:"srcdir"` // Source directory holding test/ fonts (env: srcdir)
	ExeExt string `mapstructure:"exe_ext" toml:"exe_ext" json:"exe_ext" yaml:"exe_ext"`
	Drive  string `mapstructure:"drive" toml:"drive" json:"drive" yaml:"drive"` // Windows drive prefix for paths passed to tools (env: SystemDrive)
}

// ToolsConfig configures helper programs around the tools under test
type ToolsConfig struct {
	Wrapper string `mapstructure:"wrapper" toml:"wrapper" json:"wrapper" yaml:"wrapper"` // Command line prefixed to every tool run (default: wine when exe_ext is set off Windows)
	Bwrap   string `mapstructure:"bwrap" toml:"bwrap" json:"bwrap" yaml:"bwrap"`         // bubblewrap binary for sandboxed runs
	CC      string `mapstructure:"cc" toml:"cc" json:"cc" yaml:"cc"`                     // Cross compiler queried for its sysroot (env: CC)
}

// RunConfig sets defaults for every tool invocation
type RunConfig struct {
	Debug           int   `mapstructure:"debug" toml:"debug" json:"debug" yaml:"debug"`                                                 // FC_DEBUG bitmask, 0 = unset
	Fontations      bool  `mapstructure:"fontations" toml:"fontations" json:"fontations" yaml:"fontations"`                             // Set FC_FONTATIONS=1
	SourceDateEpoch int64 `mapstructure:"source_date_epoch" toml:"source_date_epoch" json:"source_date_epoch" yaml:"source_date_epoch"` // Default mtime for installed fonts, 0 = keep
	TimeoutSeconds  int   `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"`         // Per-invocation timeout, 0 = none
}

// LogConfig configures the logger
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"`
}

// File names and locations
const (
	ConfigFileName   = "fctest.toml"
	SystemConfigPath = "/etc/fontconfig-test/fctest.toml"
	EnvPrefix        = "FCTEST"
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
