package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/Dicklesworthstone/tessera/internal/config"
	"github.com/Dicklesworthstone/tessera/internal/dashboard"
	"github.com/Dicklesworthstone/tessera/internal/preset"
	"github.com/Dicklesworthstone/tessera/internal/store"
)

// presetChangedMsg carries a reloaded preset from the file watcher into
// the program loop.
type presetChangedMsg struct {
	preset *preset.Preset
}

// app wraps the dashboard container so preset hot-reload can rebuild
// views without the container knowing about preset files.
type app struct {
	container *dashboard.Container
	store     store.KV
}

func (a *app) Init() tea.Cmd { return a.container.Init() }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(presetChangedMsg); ok {
		v, err := preset.Build(msg.preset, a.buildOptions())
		if err != nil {
			return a, nil
		}
		if !a.container.ReplaceView(v) {
			a.container.AddView(v)
		}
		return a, nil
	}
	m, cmd := a.container.Update(msg)
	a.container = m.(*dashboard.Container)
	return a, cmd
}

func (a *app) View() string { return a.container.View() }

func (a *app) buildOptions() preset.BuildOptions {
	return preset.BuildOptions{
		Store:   a.store,
		Zones:   a.container.Zones(),
		Content: demoContent,
		Refresh: demoRefresh,
	}
}

func runDashboard(cfg *config.Config) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("tessera requires a terminal; run it from an interactive shell")
	}

	// The theme package resolves colors from the environment so every
	// render site agrees without threading a theme value around.
	if os.Getenv("TESSERA_THEME") == "" {
		os.Setenv("TESSERA_THEME", cfg.Theme)
	}

	kv, err := layoutStore(cfg.StateDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: layout persistence disabled: %v\n", err)
		kv = store.NewMemory()
	}

	a := &app{container: dashboard.NewContainer("tessera"), store: kv}

	presets, err := preset.LoadDir(cfg.PresetDir)
	if err != nil {
		return fmt.Errorf("loading presets: %w", err)
	}
	if len(presets) == 0 {
		presets = demoPresets()
	}
	for _, p := range presets {
		v, err := preset.Build(p, a.buildOptions())
		if err != nil {
			return err
		}
		a.container.AddView(v)
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	prog := tea.NewProgram(a, opts...)

	// Hot reload is best effort: a missing preset directory just means
	// there is nothing to watch.
	w, err := preset.Watch(cfg.PresetDir,
		func(p *preset.Preset) { prog.Send(presetChangedMsg{preset: p}) },
		func(err error) { prog.Println("preset reload failed:", err) })
	if err == nil {
		defer w.Close()
	}

	_, err = prog.Run()
	return err
}

func layoutStore(dir string) (store.KV, error) {
	if dir == "" {
		return store.NewMemory(), nil
	}
	return store.NewDir(dir)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
