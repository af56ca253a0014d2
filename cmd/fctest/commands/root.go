package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/logger"
	"github.com/sailfishos-mirror/fontconfig/settings"
)

// ExitCodeError carries the exit status of a tool out of Execute.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// app holds the global flags and the configuration they select.
type app struct {
	configPath string
	verbose    int
	jsonLog    bool

	cfg *settings.Config
}

func (a *app) load() (*settings.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	var (
		cfg *settings.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = settings.LoadFromFile(a.configPath)
	} else {
		cfg, err = settings.Load()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	a.cfg = cfg
	return cfg, nil
}

// NewRootCmd builds the fctest command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fctest",
		Short: "Run fontconfig tools against a private font setup",
		Long: `fctest runs the fontconfig tools of a build tree with a temporary font
directory, cache directory and configuration file, removed on exit.

Configuration sources (later overrides earlier):
  1. Built-in defaults
  2. /etc/fontconfig-test/fctest.toml
  3. ~/.config/fontconfig-test/fctest.toml
  4. ./fctest.toml (searches up directories)
  5. builddir, srcdir, EXEEXT, CC, SystemDrive, SOURCE_DATE_EPOCH, FC_DEBUG
     and FCTEST_* environment variables

Examples:
  fctest tools                               # Which tools were built
  fctest run --test-fonts fc-list - family   # List the bundled test fonts
  fctest run --debug 16 fc-match sans        # Run with FC_DEBUG=16
  fctest config show --format json           # Effective configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			verbosity := a.verbose
			if cfg.Log.Verbosity > verbosity {
				verbosity = cfg.Log.Verbosity
			}
			if err := logger.Initialize(logger.Options{
				JSON:      a.jsonLog || cfg.Log.JSON,
				Verbosity: verbosity,
				Output:    cmd.ErrOrStderr(),
			}); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "Read configuration from this file only (defaults still apply)")
	pf.CountVarP(&a.verbose, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	pf.BoolVar(&a.jsonLog, "json-log", false, "Write logs as JSON")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newToolsCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs fctest with the process arguments.
func Execute() error {
	defer logger.Cleanup()
	return NewRootCmd().Execute()
}
