// Command tarasmobil runs the TarasMobil agri digital twin prototype in a phone-shaped window.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tarasmobil/taras-mobil/config"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRoot().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	config   string
	dark     bool
	light    bool
	profile  bool
	uncapped bool
	software bool
	mute     bool
}

func newRoot() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "tarasmobil",
		Short:         "Agri digital twin prototype",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runApp(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "path to a YAML config file")
	root.Flags().BoolVar(&flags.dark, "dark", false, "force dark mode")
	root.Flags().BoolVar(&flags.light, "light", false, "force light mode")
	root.Flags().BoolVar(&flags.profile, "profile", false, "log frame timings")
	root.Flags().BoolVar(&flags.uncapped, "uncapped", false, "present without vsync")
	root.Flags().BoolVar(&flags.software, "software", false, "force a software GPU adapter")
	root.Flags().BoolVar(&flags.mute, "mute", false, "start with sounds off")
	root.MarkFlagsMutuallyExclusive("dark", "light")

	root.AddCommand(
		chatCmd(flags),
		hashPasswordCmd(),
		configCmd(flags),
	)
	return root
}

// loadConfig reads the config file and applies flags set on the command line.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("dark") && flags.dark {
		cfg.Theme = config.ThemeDark
	}
	if f.Changed("light") && flags.light {
		cfg.Theme = config.ThemeLight
	}
	if f.Changed("profile") {
		cfg.Profiling = flags.profile
	}
	if f.Changed("uncapped") && flags.uncapped {
		cfg.PresentMode = config.PresentUncapped
	}
	if f.Changed("software") {
		cfg.SoftwareAdapter = flags.software
	}
	if f.Changed("mute") {
		cfg.Mute = flags.mute
	}
	return cfg, nil
}
