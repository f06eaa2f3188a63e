package preset

import (
	"fmt"

	zone "github.com/lrstanley/bubblezone"

	"github.com/Dicklesworthstone/tessera/internal/dashboard"
	"github.com/Dicklesworthstone/tessera/internal/layout"
	"github.com/Dicklesworthstone/tessera/internal/store"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// BuildOptions supplies the collaborators a preset cannot declare.
type BuildOptions struct {
	// Store persists grid geometry, scoped by the preset id.
	Store store.KV

	// Zones is the shared mouse-zone manager, usually a container's.
	Zones *zone.Manager

	// Content resolves a widget id to its content renderer. Nil, or a
	// nil result, leaves the widget with a placeholder.
	Content func(id string) widget.Renderer

	// Refresh resolves a widget id to its refresh hook, if any.
	Refresh func(id string) widget.RefreshFunc
}

// Build materializes a preset into a dashboard view with its widgets
// attached. Placements the engine rejects fail the build; a preset that
// cannot be honored should be reported, not silently truncated.
func Build(p *Preset, opts BuildOptions) (*dashboard.View, error) {
	v, err := dashboard.New(dashboard.Options{
		ID:          p.ID,
		Title:       p.Title,
		Icon:        p.Icon,
		Mode:        dashboard.LayoutMode(p.Layout),
		GridRows:    p.Grid.Rows,
		GridCols:    p.Grid.Cols,
		MinTrackPct: p.Grid.MinTrackPct,
		Store:       opts.Store,
		Zones:       opts.Zones,
	})
	if err != nil {
		return nil, err
	}

	for _, def := range p.Widgets {
		wopts := widget.DefaultOptions(def.ID, def.Title)
		wopts.Icon = def.Icon
		if opts.Content != nil {
			wopts.Content = opts.Content(def.ID)
		}
		if wopts.Content == nil {
			wopts.Content = widget.Static("")
		}
		if opts.Refresh != nil {
			wopts.OnRefresh = opts.Refresh(def.ID)
		}
		w := widget.New(wopts)
		if !v.AddWidget(w, def.Placement()) {
			v.Destroy()
			return nil, fmt.Errorf("preset %s: widget %s: placement rejected", p.ID, def.ID)
		}
	}

	if p.Tree != nil {
		dock, ok := v.Engine().(*layout.Dock)
		if !ok {
			v.Destroy()
			return nil, fmt.Errorf("preset %s: tree given for %s layout", p.ID, p.Layout)
		}
		if !dock.ApplyPreset(p.Tree, v.Widget) {
			v.Destroy()
			return nil, fmt.Errorf("preset %s: invalid dock tree", p.ID)
		}
	}
	return v, nil
}
