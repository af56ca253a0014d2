package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/fcconst"
	"github.com/sailfishos-mirror/fontconfig/logger"
)

// genFlags are shared by the root command and check/watch.
type genFlags struct {
	output  string
	test    bool
	lang    string
	pkg     string
	verbose int
	jsonLog bool
}

func (f *genFlags) options(args []string) (fcconst.Options, error) {
	mode, err := fcconst.ParseMode(f.lang, f.test)
	if err != nil {
		return fcconst.Options{}, err
	}
	return fcconst.Options{
		ListPath:   args[0],
		HeaderPath: args[1],
		Mode:       mode,
		Package:    f.pkg,
	}, nil
}

// NewRootCmd builds the fc-const command tree.
func NewRootCmd() *cobra.Command {
	f := &genFlags{}

	root := &cobra.Command{
		Use:   "fc-const [flags] <list> <header>",
		Short: "fcconst.h generator",
		Long: `fc-const generates the constant name tables of fontconfig.

<list> holds one constant per line: name, object and value separated by
whitespace. Lines starting with '#' are comments. <header> is fcobjs.h,
which declares the objects with FC_OBJECT (NAME, ...).

Examples:
  fc-const -o fcconst.h fcconst.list fcobjs.h          # C tables
  fc-const -t -o test-constants.c fcconst.list fcobjs.h  # C self-check
  fc-const --lang go --package fcdata fcconst.list fcobjs.h
  fc-const check -o fcconst.h fcconst.list fcobjs.h    # fail when stale
  fc-const watch -o fcconst.h fcconst.list fcobjs.h    # regenerate on change`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Initialize(logger.Options{
				JSON:      f.jsonLog,
				Verbosity: f.verbose,
				Output:    cmd.ErrOrStderr(),
			}); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(args)
			if err != nil {
				return err
			}
			data, err := fcconst.Generate(opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), f.output, data)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.output, "output", "o", "-", "Output file")
	pf.BoolVarP(&f.test, "test", "t", false, "Generate test case")
	pf.StringVar(&f.lang, "lang", "c", "Output language: c, go")
	pf.StringVar(&f.pkg, "package", "fcconst", "Package name for Go output")
	pf.CountVarP(&f.verbose, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	pf.BoolVar(&f.jsonLog, "json-log", false, "Write logs as JSON")

	root.AddCommand(newCheckCmd(f))
	root.AddCommand(newWatchCmd(f))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs fc-const with the process arguments.
func Execute() error {
	defer logger.Cleanup()
	return NewRootCmd().Execute()
}

// writeOutput sends data to stdout for "" and "-", to a file otherwise.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return errors.Wrap(err, "write stdout")
	}
	return fcconst.WriteOutput(path, data)
}
