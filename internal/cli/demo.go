package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Dicklesworthstone/tessera/internal/preset"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// demoPresets is what you see when no preset directory exists yet: a
// grid tour of the widget chrome plus a dock-layout workbench.
func demoPresets() []*preset.Preset {
	return []*preset.Preset{
		{
			ID:     "overview",
			Title:  "Overview",
			Icon:   "▦",
			Layout: "grid",
			Grid:   preset.GridDef{Rows: 2, Cols: 2},
			Widgets: []preset.WidgetDef{
				{ID: "welcome", Title: "Welcome", Icon: "◆", Cell: &preset.CellDef{Row: 0, Col: 0}},
				{ID: "clock", Title: "Clock", Icon: "◷", Cell: &preset.CellDef{Row: 0, Col: 1}},
				{ID: "activity", Title: "Activity", Icon: "▤", Cell: &preset.CellDef{Row: 1, Col: 0}},
				{ID: "keys", Title: "Key Bindings", Icon: "⌨", Cell: &preset.CellDef{Row: 1, Col: 1}},
			},
		},
		{
			ID:     "workbench",
			Title:  "Workbench",
			Icon:   "◧",
			Layout: "dock",
			Widgets: []preset.WidgetDef{
				{ID: "keys", Title: "Key Bindings", Icon: "⌨", Dock: "left"},
				{ID: "welcome", Title: "Welcome", Icon: "◆", Dock: "center"},
				{ID: "activity", Title: "Activity", Icon: "▤", Dock: "center"},
				{ID: "clock", Title: "Clock", Icon: "◷", Dock: "bottom"},
			},
		},
	}
}

const welcomeMarkdown = `# Tessera

Drag widgets by their title bars. Grab the **◢** corner to resize; on
docked widgets this moves the shared grid track, so neighbors follow.

- Drop a docked widget on another cell to swap them
- Press ` + "`f`" + ` to float the focused widget, press again to re-dock
- Press ` + "`s`" + ` for a full-screen slideshow of every widget

Presets live in the config directory as YAML; edits reload live.
`

const keysText = `tab  cycle widget focus
s    enter slideshow (←/→ to step, esc to leave)
m    maximize or restore the focused widget
n    minimize toggle
f    toggle float / re-dock of the focused widget
0    reset the layout to defaults
⇧←→  move the focused docked widget between cells
r    refresh the focused widget
x    close the focused widget
[ ]  previous / next dashboard tab`

// demoContent resolves demo widget ids to their renderers.
func demoContent(id string) widget.Renderer {
	switch id {
	case "welcome":
		return markdownRenderer(welcomeMarkdown)
	case "clock":
		return widget.RendererFunc(renderClock)
	case "activity":
		return widget.RendererFunc(renderActivity)
	case "keys":
		return widget.RendererFunc(func(width, _ int) string {
			return wordwrap.String(keysText, width)
		})
	default:
		return nil
	}
}

// demoRefresh gives the activity widget a visible refresh cycle so the
// toolbar spinner has something to report.
func demoRefresh(id string) widget.RefreshFunc {
	if id != "activity" {
		return nil
	}
	return func(ctx context.Context) error {
		select {
		case <-time.After(400 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// markdownRenderer renders markdown through glamour, re-wrapping when
// the widget width changes. Render failures fall back to the source.
func markdownRenderer(md string) widget.Renderer {
	var (
		lastWidth int
		cached    string
	)
	return widget.RendererFunc(func(width, _ int) string {
		if width == lastWidth && cached != "" {
			return cached
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		out, err := r.Render(md)
		if err != nil {
			return md
		}
		lastWidth, cached = width, strings.TrimRight(out, "\n")
		return cached
	})
}

func renderClock(width, height int) string {
	now := time.Now()
	lines := []string{
		now.Format("15:04:05"),
		now.Format("Mon, 02 Jan 2006"),
	}
	return strings.Join(lines, "\n")
}

func renderActivity(width, _ int) string {
	events := []struct {
		at   string
		text string
	}{
		{"09:12", "grid resized to 60/40 split"},
		{"09:15", "clock floated at 82,4"},
		{"09:20", "activity refreshed"},
		{"09:41", "layout saved"},
	}
	var b strings.Builder
	for i, e := range events {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %s", e.at, wordwrap.String(e.text, max(width-7, 10)))
	}
	return b.String()
}
