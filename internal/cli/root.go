// Package cli wires the tessera command line: the root command starts
// the dashboard TUI, subcommands inspect presets and print build info.
package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/tessera/internal/config"
)

var (
	cfgFile   string
	presetDir string
	themeName string
	noMouse   bool

	// Build information - set by goreleaser via ldflags
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tessera",
	Short: "Tessera - composable widget dashboards for the terminal",
	Long: `Tessera renders dashboards of draggable, resizable widgets in the
terminal. Widgets live in a grid, float freely, or dock into split
panes; layouts persist across runs and reload when preset files change.

Quick Start:
  tessera                      # Launch with presets from the config dir
  tessera --preset-dir ./p     # Launch with presets from a directory
  tessera presets              # List discovered presets

Keys:
  tab        cycle widget focus      [ / ]   switch dashboard tabs
  m / n / r  maximize/minimize/refresh focused widget
  f          toggle float on the focused widget
  0          reset the active layout
  s          slideshow mode          ctrl+c  quit`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runDashboard(cfg)
	},
}

// loadConfig reads the config file and folds the global flags over it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if presetDir != "" {
		cfg.PresetDir = presetDir
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if noMouse {
		cfg.Mouse = false
	}
	return cfg, nil
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/tessera/config.toml)")
	rootCmd.PersistentFlags().StringVar(&presetDir, "preset-dir", "", "directory of dashboard preset files")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme: auto, mocha, latte, plain")
	rootCmd.Flags().BoolVar(&noMouse, "no-mouse", false, "disable mouse tracking")

	rootCmd.AddCommand(newPresetsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Println(Version)
				return nil
			}
			fmt.Printf("tessera version %s\n", Version)
			fmt.Printf("  commit:    %s\n", Commit)
			fmt.Printf("  built:     %s\n", Date)
			fmt.Printf("  go:        %s\n", runtime.Version())
			fmt.Printf("  platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	return cmd
}
