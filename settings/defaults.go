package settings

import (
	"runtime"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Build tree defaults
	v.SetDefault("build.dir", "build")
	v.SetDefault("build.srcdir", ".")
	v.SetDefault("build.exe_ext", defaultExeExt())
	v.SetDefault("build.drive", "")

	// Tool defaults
	v.SetDefault("tools.wrapper", "")
	v.SetDefault("tools.bwrap", "bwrap")
	v.SetDefault("tools.cc", "cc")

	// Run defaults
	v.SetDefault("run.debug", 0)
	v.SetDefault("run.fontations", false)
	v.SetDefault("run.source_date_epoch", 0)
	v.SetDefault("run.timeout_seconds", 0)

	// Logging defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// BindEnvVars binds the environment names the fontconfig build system exports
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("build.dir", "builddir", "FCTEST_BUILD_DIR")
	v.BindEnv("build.srcdir", "srcdir", "FCTEST_BUILD_SRCDIR")
	v.BindEnv("build.exe_ext", "EXEEXT", "FCTEST_BUILD_EXE_EXT")
	v.BindEnv("build.drive", "SystemDrive", "FCTEST_BUILD_DRIVE")
	v.BindEnv("tools.cc", "CC", "FCTEST_TOOLS_CC")
	v.BindEnv("run.source_date_epoch", "SOURCE_DATE_EPOCH", "FCTEST_RUN_SOURCE_DATE_EPOCH")
	v.BindEnv("run.debug", "FC_DEBUG", "FCTEST_RUN_DEBUG")
}

// EnvNames maps configuration keys to the environment variables bound to them
var EnvNames = map[string]string{
	"build.dir":             "builddir",
	"build.srcdir":          "srcdir",
	"build.exe_ext":         "EXEEXT",
	"build.drive":           "SystemDrive",
	"tools.cc":              "CC",
	"run.source_date_epoch": "SOURCE_DATE_EPOCH",
	"run.debug":             "FC_DEBUG",
}

func defaultExeExt() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
