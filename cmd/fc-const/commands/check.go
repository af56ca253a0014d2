package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/fcconst"
)

func newCheckCmd(f *genFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check -o <generated> <list> <header>",
		Short: "Check that a generated file is up to date",
		Long: `Regenerate in memory and compare with the file given by --output.
Exits non-zero and prints a diff when the file is stale or missing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.output == "" || f.output == "-" {
				return errors.New("check needs the generated file: pass -o <path>")
			}
			opts, err := f.options(args)
			if err != nil {
				return err
			}
			res, err := fcconst.Check(opts, f.output)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.UpToDate {
				fmt.Fprintln(out, pterm.Green("✓ ")+f.output+" is up to date")
				return nil
			}
			fmt.Fprintln(out, pterm.Yellow("✗ ")+f.output+" is out of date (-existing +generated):")
			fmt.Fprintln(out, res.Diff)
			return errors.Newf("%s is out of date", f.output)
		},
	}
}
