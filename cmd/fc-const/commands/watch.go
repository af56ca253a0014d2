package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/fcconst"
	"github.com/sailfishos-mirror/fontconfig/logger"
)

func newWatchCmd(f *genFlags) *cobra.Command {
	var debounce int

	cmd := &cobra.Command{
		Use:   "watch -o <output> <list> <header>",
		Short: "Regenerate whenever the inputs change",
		Long: `Generate once, then watch <list> and <header> and regenerate --output
after every change until interrupted. A failed regeneration is logged and
leaves the previous output in place.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.output == "" || f.output == "-" {
				return errors.New("watch needs an output file: pass -o <path>")
			}
			opts, err := f.options(args)
			if err != nil {
				return err
			}

			log := logger.Named("fc-const")
			regenerate := func() error {
				data, err := fcconst.Generate(opts)
				if err != nil {
					return err
				}
				if err := fcconst.WriteOutput(f.output, data); err != nil {
					return err
				}
				log.Infow("regenerated", logger.FieldOutput, f.output, logger.FieldMode, string(opts.Mode))
				return nil
			}
			if err := regenerate(); err != nil {
				return err
			}

			w, err := fcconst.NewWatcher(regenerate, opts.ListPath, opts.HeaderPath)
			if err != nil {
				return err
			}
			defer w.Close()
			if debounce > 0 {
				w.SetDebounce(time.Duration(debounce) * time.Millisecond)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			pterm.Info.Printfln("Watching %s and %s (Ctrl+C to stop)", opts.ListPath, opts.HeaderPath)
			return w.Run(ctx)
		},
	}
	cmd.Flags().IntVar(&debounce, "debounce-ms", 0, "Delay after the last change before regenerating (default 300)")
	return cmd
}
