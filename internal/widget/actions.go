package widget

// Action is a toolbar entry: a glyph, a visibility predicate and a click
// handler. The dashboard dispatches clicks after resolving the zone hit.
type Action struct {
	ID      string
	Icon    string
	Visible func(w *Widget) bool
	OnClick func(w *Widget)
}

// Built-in toolbar action identifiers.
const (
	ActionMinimize = "minimize"
	ActionMaximize = "maximize"
	ActionRestore  = "restore"
	ActionRefresh  = "refresh"
	ActionFloat    = "float"
	ActionDock     = "dock"
	ActionClose    = "close"
)

func builtinActions(w *Widget) []Action {
	return []Action{
		{
			ID:   ActionRefresh,
			Icon: "⟳",
			Visible: func(w *Widget) bool {
				return w.onRefresh != nil
			},
			OnClick: func(w *Widget) {
				// Dispatched through the dashboard so the tea.Cmd from
				// RefreshCmd is wired into the program loop.
			},
		},
		{
			ID:   ActionMinimize,
			Icon: "─",
			Visible: func(w *Widget) bool {
				return w.mode != ModeMaximized
			},
			OnClick: func(w *Widget) { w.ToggleMinimize() },
		},
		{
			ID:   ActionFloat,
			Icon: "◱",
			Visible: func(w *Widget) bool {
				return w.draggable && w.mode == ModeDocked
			},
			OnClick: func(w *Widget) { w.Float() },
		},
		{
			ID:   ActionDock,
			Icon: "⊡",
			Visible: func(w *Widget) bool {
				return w.mode == ModeFloating
			},
			OnClick: func(w *Widget) { w.Dock() },
		},
		{
			ID:   ActionMaximize,
			Icon: "□",
			Visible: func(w *Widget) bool {
				return w.mode != ModeMaximized
			},
			OnClick: func(w *Widget) { w.Maximize() },
		},
		{
			ID:   ActionRestore,
			Icon: "▣",
			Visible: func(w *Widget) bool {
				return w.mode == ModeMaximized
			},
			OnClick: func(w *Widget) { w.Restore() },
		},
		{
			ID:   ActionClose,
			Icon: "✕",
			Visible: func(w *Widget) bool {
				return w.closable
			},
			OnClick: func(w *Widget) { w.Close() },
		},
	}
}

// visibleActions filters the toolbar for the widget's current state.
func (w *Widget) visibleActions() []Action {
	out := make([]Action, 0, len(w.actions))
	for _, a := range w.actions {
		if a.Visible == nil || a.Visible(w) {
			out = append(out, a)
		}
	}
	return out
}

// VisibleActions returns the toolbar entries shown for the current state.
func (w *Widget) VisibleActions() []Action { return w.visibleActions() }
