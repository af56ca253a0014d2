package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/settings"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage the fctest configuration",
		Long: `Display and manage the fctest configuration.

Examples:
  fctest config show                    # Effective configuration as TOML
  fctest config show --format json      # ... as JSON
  fctest config get build.dir           # A single value
  fctest config validate                # Check values and unknown keys
  fctest config where                   # Which files and variables apply
  fctest config init                    # Write ./fctest.toml`,
	}
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigGetCmd(a))
	cmd.AddCommand(newConfigValidateCmd(a))
	cmd.AddCommand(newConfigWhereCmd(a))
	cmd.AddCommand(newConfigInitCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			data, err := settings.Render(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "Output format: toml, json, yaml")
	return cmd
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value using dot notation (e.g. build.dir, run.debug)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			var (
				value interface{}
				ok    bool
				keys  []string
			)
			if a.configPath != "" {
				v := viper.New()
				settings.SetDefaults(v)
				v.SetConfigFile(a.configPath)
				v.SetConfigType("toml")
				if err := v.ReadInConfig(); err != nil {
					return errors.Wrapf(err, "failed to read config file %s", a.configPath)
				}
				value, ok = v.Get(key), v.IsSet(key)
				keys = v.AllKeys()
				sort.Strings(keys)
			} else {
				value, ok = settings.Get(key)
				keys = settings.Keys()
			}
			if !ok {
				return errors.Newf("configuration key %q not found (known: %s)", key, strings.Join(keys, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and report unknown keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "configuration validation failed")
			}

			var unknown []string
			for _, path := range a.files() {
				keys, err := settings.CheckKeys(path)
				if err != nil {
					return err
				}
				for _, k := range keys {
					unknown = append(unknown, path+": "+k)
				}
			}
			out := cmd.OutOrStdout()
			if len(unknown) > 0 {
				for _, u := range unknown {
					fmt.Fprintln(out, pterm.Yellow("✗ unknown key ")+u)
				}
				return errors.Newf("%d unknown configuration key(s)", len(unknown))
			}
			fmt.Fprintln(out, pterm.Green("✓ ")+"Configuration is valid")
			return nil
		},
	}
}

func newConfigWhereCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Show where the configuration is loaded from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			loaded := make(map[string]bool)
			for _, f := range a.files() {
				loaded[f] = true
			}

			candidates := settings.ConfigPaths()
			if a.configPath != "" {
				candidates = []string{a.configPath}
			}
			fmt.Fprintln(out, "Configuration files (later overrides earlier):")
			for _, path := range candidates {
				status := pterm.Gray("missing")
				if loaded[path] {
					status = pterm.Green("loaded")
				} else if _, err := os.Stat(path); err == nil {
					status = pterm.Yellow("unreadable")
				}
				fmt.Fprintf(out, "  %-10s %s\n", status, path)
			}

			fmt.Fprintln(out, "\nEnvironment:")
			keys := make([]string, 0, len(settings.EnvNames))
			for k := range settings.EnvNames {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, key := range keys {
				name := settings.EnvNames[key]
				if val, ok := os.LookupEnv(name); ok {
					fmt.Fprintf(out, "  %s=%s (%s)\n", name, val, key)
				}
			}
			for _, kv := range os.Environ() {
				if strings.HasPrefix(kv, settings.EnvPrefix+"_") {
					fmt.Fprintf(out, "  %s\n", kv)
				}
			}
			return nil
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var (
		user  bool
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a file",
		Long: `Write the effective configuration as TOML, by default to ./fctest.toml.
An existing file is only replaced with --force; up to three previous
versions are kept as .back1, .back2 and .back3.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := settings.ConfigFileName
			switch {
			case len(args) == 1:
				path = args[0]
			case user:
				if path = settings.UserConfigPath(); path == "" {
					return errors.New("no user config directory on this system")
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf("%s already exists (use --force to replace it)", path)
			}

			cfg, err := a.load()
			if err != nil {
				return err
			}
			if err := settings.Persist(cfg, path); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "Write the per-user config file instead")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing file")
	return cmd
}

// files returns the config files the current configuration was read from.
func (a *app) files() []string {
	if a.configPath != "" {
		return []string{a.configPath}
	}
	return settings.LoadedFiles()
}
