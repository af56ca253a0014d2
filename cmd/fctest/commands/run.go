package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/fctest"
	"github.com/sailfishos-mirror/fontconfig/logger"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		debug      int
		fontations bool
		testFonts  bool
		fonts      []string
		showConfig bool
	)

	cmd := &cobra.Command{
		Use:   "run [flags] <tool> [args...]",
		Short: "Run a fontconfig tool against a fresh font setup",
		Long: `Create a temporary font directory, cache directory and configuration,
install the requested fonts, then run <tool> with the remaining arguments.
The tool's stdout and stderr are passed through and its exit status becomes
fctest's. Flags after <tool> belong to the tool.

<tool> is a tool name such as fc-list, or the same without the "fc-" prefix.`,
		Example: `  fctest run --test-fonts fc-list - family
  fctest run --font ./DejaVuSans.ttf match sans
  fctest run --font DejaVuSans.ttf match sans   # found among system fonts
  fctest run --test-fonts --debug 16 fc-cache -v`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := parseTool(args[0])
			if err != nil {
				return err
			}
			cfg, err := a.load()
			if err != nil {
				return err
			}

			h, err := fctest.New(cfg)
			if err != nil {
				return err
			}
			defer h.Close()

			if !h.ToolAvailable(tool) {
				return errors.NewUnavailableError(errors.ErrToolUnavailable,
					"%s not built in %s", tool, h.BuildDir())
			}

			files := make([]string, 0, len(fonts))
			for _, name := range fonts {
				path, err := h.ResolveFont(name)
				if err != nil {
					return err
				}
				files = append(files, path)
			}
			if testFonts {
				bundled, err := fctest.TestFonts(h.SrcDir())
				if err != nil {
					return err
				}
				files = append(files, bundled...)
			}
			if len(files) > 0 {
				if err := h.InstallFont(files, ".", time.Time{}); err != nil {
					return err
				}
				if logger.ShouldOutput(logger.Verbosity, logger.OutputProgress) {
					logger.Named("fctest").Infow("fonts installed",
						logger.FieldDir, h.FontDir(), logger.FieldFonts, len(files))
				}
			}

			if err := h.Setup(nil); err != nil {
				return err
			}
			if showConfig {
				fmt.Fprintln(cmd.ErrOrStderr(), h.Config())
			}

			var opts []fctest.RunOption
			if cmd.Flags().Changed("debug") {
				opts = append(opts, fctest.WithDebug(debug))
			}
			if cmd.Flags().Changed("fontations") {
				opts = append(opts, fctest.WithFontations(fontations))
			}

			res, err := h.RunTool(cmd.Context(), tool, args[1:], opts...)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
			fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
			if !res.Success() {
				return &ExitCodeError{Code: res.ExitCode}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.SetInterspersed(false)
	f.IntVar(&debug, "debug", 0, "FC_DEBUG bitmask for this run (default from run.debug)")
	f.BoolVar(&fontations, "fontations", false, "Set FC_FONTATIONS=1 (default from run.fontations)")
	f.BoolVar(&testFonts, "test-fonts", false, "Install the bundled test fonts from <srcdir>/test")
	f.StringArrayVar(&fonts, "font", nil, "Install a font file, or a font found by name in <srcdir>/test or the system fonts (repeatable)")
	f.BoolVar(&showConfig, "show-config", false, "Print the generated fonts.conf to stderr")
	return cmd
}

// parseTool accepts "fc-list" or "list".
func parseTool(name string) (fctest.Tool, error) {
	if !strings.HasPrefix(name, "fc-") {
		name = "fc-" + name
	}
	for _, t := range fctest.Tools {
		if string(t) == name {
			return t, nil
		}
	}
	known := make([]string, len(fctest.Tools))
	for i, t := range fctest.Tools {
		known[i] = string(t)
	}
	return "", errors.Newf("unknown tool %q (known: %s)", name, strings.Join(known, ", "))
}
