package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/fctest"
)

// toolStatus is one row of the tools listing.
type toolStatus struct {
	Tool    string `json:"tool"`
	Path    string `json:"path"`
	Built   bool   `json:"built"`
	Version string `json:"version,omitempty"`
}

func newToolsCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the fontconfig tools found in the build tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			h, err := fctest.New(cfg)
			if err != nil {
				return err
			}
			defer h.Close()

			rows := make([]toolStatus, 0, len(fctest.Tools))
			for _, tool := range fctest.Tools {
				st := toolStatus{Tool: string(tool), Path: h.ToolPath(tool), Built: h.ToolAvailable(tool)}
				if st.Built {
					if v, err := h.ToolVersion(cmd.Context(), tool); err == nil {
						st.Version = v.String()
					}
				}
				rows = append(rows, st)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return errors.Wrap(err, "format tool list")
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			table := pterm.TableData{{"Tool", "Built", "Version", "Path"}}
			for _, st := range rows {
				built := pterm.Red("no")
				if st.Built {
					built = pterm.Green("yes")
				}
				version := st.Version
				if version == "" {
					version = "-"
				}
				table = append(table, []string{st.Tool, built, version, st.Path})
			}
			if err := pterm.DefaultTable.WithHasHeader().WithData(table).WithWriter(out).Render(); err != nil {
				return errors.Wrap(err, "render tool list")
			}

			sandbox := pterm.Red("unavailable")
			if h.HasSandbox() {
				sandbox = pterm.Green("available")
			}
			fmt.Fprintf(out, "\nBuild dir: %s\nSandbox (bwrap): %s\n", h.BuildDir(), sandbox)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
