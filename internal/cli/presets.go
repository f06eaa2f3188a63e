package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/tessera/internal/preset"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List dashboard presets found in the preset directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			presets, err := preset.LoadDir(cfg.PresetDir)
			if err != nil {
				return err
			}
			if len(presets) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No presets in %s; tessera will use its built-in demo.\n", cfg.PresetDir)
				return nil
			}
			width := terminalWidth()
			for _, p := range presets {
				fmt.Fprintln(cmd.OutOrStdout(), describePreset(p, width))
			}
			return nil
		},
	}
}

func describePreset(p *preset.Preset, width int) string {
	shape := p.Layout
	if p.Layout == "grid" {
		shape = fmt.Sprintf("grid %dx%d", p.Grid.Rows, p.Grid.Cols)
	}
	ids := make([]string, 0, len(p.Widgets))
	for _, w := range p.Widgets {
		ids = append(ids, w.ID)
	}
	line := fmt.Sprintf("%-16s %-10s %s", p.ID, shape, strings.Join(ids, ", "))
	return wordwrap.String(line, width)
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
