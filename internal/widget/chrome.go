package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/tessera/internal/tui/theme"
)

// ZoneTitle returns the bubblezone id for the widget's title bar.
func (w *Widget) ZoneTitle() string { return "w:" + w.id + ":title" }

// ZoneAction returns the bubblezone id for a toolbar action.
func (w *Widget) ZoneAction(actionID string) string {
	return "w:" + w.id + ":a:" + actionID
}

// Render draws the widget chrome at the given outer size. Toolbar
// buttons and the title bar are marked as mouse zones through z; resize
// handles are hit-tested geometrically by the dashboard, the corner
// glyph is only a hint.
func (w *Widget) Render(z *zone.Manager, width, height int) string {
	if width < 4 || height < 3 {
		return ""
	}
	t := theme.Current()
	innerW := width - 2
	innerH := height - 2

	borderColor := t.BorderDocked
	switch {
	case w.focused:
		borderColor = t.BorderFocused
	case w.mode == ModeFloating:
		borderColor = t.BorderFloating
	}

	border := lipgloss.RoundedBorder()
	if right, bottom := w.ResizeEdges(); w.resizable && w.mode != ModeMaximized && (right || bottom) {
		border.BottomRight = "◢"
	}

	var body strings.Builder
	body.WriteString(w.renderTitleBar(z, t, innerW))
	if !w.minimized && innerH > 1 {
		body.WriteString("\n")
		body.WriteString(w.renderBody(t, innerW, innerH-1))
	}

	box := lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Width(innerW).
		Height(innerH)
	return box.Render(body.String())
}

// renderTitleBar composes the single chrome line: icon + title on the
// left, refresh spinner and toolbar actions on the right.
func (w *Widget) renderTitleBar(z *zone.Manager, t theme.Theme, innerW int) string {
	iconStyle := lipgloss.NewStyle().Foreground(t.Muted)
	actions := w.visibleActions()

	var right strings.Builder
	if w.refreshing {
		right.WriteString(w.spin.View())
		right.WriteString(" ")
	}
	for i, a := range actions {
		glyph := iconStyle.Render(a.Icon)
		if z != nil {
			glyph = z.Mark(w.ZoneAction(a.ID), glyph)
		}
		right.WriteString(glyph)
		if i < len(actions)-1 {
			right.WriteString(" ")
		}
	}
	rightStr := right.String()
	rightW := lipgloss.Width(rightStr)

	avail := innerW - rightW - 1
	if avail < 1 {
		avail = 1
	}
	label := w.title
	if w.icon != "" {
		label = w.icon + " " + label
	}
	label = runewidth.Truncate(label, avail, "…")
	label += strings.Repeat(" ", avail-runewidth.StringWidth(label))

	titleStyle := lipgloss.NewStyle().Foreground(t.Text).Bold(w.focused)
	left := titleStyle.Render(label)
	if z != nil {
		left = z.Mark(w.ZoneTitle(), left)
	}

	bar := left + " " + rightStr
	return lipgloss.NewStyle().Background(t.Raised).Render(bar)
}

// renderBody stacks header, content and footer, clipped to the inner
// area so misbehaving renderers cannot break the chrome.
func (w *Widget) renderBody(t theme.Theme, innerW, innerH int) string {
	clip := lipgloss.NewStyle().MaxWidth(innerW)

	var parts []string
	remaining := innerH
	if w.header != nil && remaining > 1 {
		h := clip.MaxHeight(1).Render(w.header.Render(innerW, 1))
		parts = append(parts, h)
		remaining--
	}
	footer := ""
	if w.footer != nil && remaining > 1 {
		footer = clip.MaxHeight(1).Render(w.footer.Render(innerW, 1))
		remaining--
	}
	if w.content != nil && remaining > 0 {
		c := clip.MaxHeight(remaining).Render(w.content.Render(innerW, remaining))
		parts = append(parts, c)
	}
	if footer != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Subtext).Render(footer))
	}
	return strings.Join(parts, "\n")
}
