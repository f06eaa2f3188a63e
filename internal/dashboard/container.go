package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/Dicklesworthstone/tessera/internal/canvas"
	"github.com/Dicklesworthstone/tessera/internal/tui/theme"
)

// Container aggregates multiple views under a tab bar and owns the
// mouse-zone manager they all share. It is the tea.Model handed to the
// program loop.
type Container struct {
	title  string
	views  []*View
	active int

	width, height int
	zones         *zone.Manager
}

var _ tea.Model = (*Container)(nil)

// NewContainer builds an empty container. Views joining it must be
// constructed with Options.Zones set to this container's Zones().
func NewContainer(title string) *Container {
	return &Container{title: title, zones: zone.New()}
}

// Zones returns the shared mouse-zone manager.
func (c *Container) Zones() *zone.Manager { return c.zones }

// AddView appends a view as a new tab.
func (c *Container) AddView(v *View) {
	c.views = append(c.views, v)
	c.layoutViews()
}

// ReplaceView swaps in a rebuilt view carrying the same ID, keeping its
// tab position. The displaced view is destroyed. Returns false when no
// tab matches.
func (c *Container) ReplaceView(v *View) bool {
	for i, old := range c.views {
		if old.ID() != v.ID() {
			continue
		}
		old.Destroy()
		c.views[i] = v
		c.layoutViews()
		return true
	}
	return false
}

// Active returns the selected view, or nil when the container is empty.
func (c *Container) Active() *View {
	if len(c.views) == 0 {
		return nil
	}
	return c.views[c.active]
}

// SelectTab activates the view at index i. Out-of-range indexes are
// ignored.
func (c *Container) SelectTab(i int) {
	if i >= 0 && i < len(c.views) {
		c.active = i
	}
}

// Destroy tears down every view and the shared zone manager.
func (c *Container) Destroy() {
	for _, v := range c.views {
		v.Destroy()
	}
	c.views = nil
	c.zones.Close()
}

func (c *Container) layoutViews() {
	for _, v := range c.views {
		v.SetOrigin(0, 1)
		v.SetSize(c.width, c.height-1)
	}
}

// Init implements tea.Model.
func (c *Container) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (c *Container) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
		c.layoutViews()
		return c, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			c.Destroy()
			return c, tea.Quit
		case "[":
			c.SelectTab((c.active - 1 + len(c.views)) % max(len(c.views), 1))
			return c, nil
		case "]":
			c.SelectTab((c.active + 1) % max(len(c.views), 1))
			return c, nil
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			for i, v := range c.views {
				if z := c.zones.Get("tab:" + v.ID()); z != nil && z.InBounds(msg) {
					c.SelectTab(i)
					return c, nil
				}
			}
		}
	}
	if v := c.Active(); v != nil {
		return c, v.Update(msg)
	}
	return c, nil
}

// View implements tea.Model: the tab bar over the active view, scanned
// once so zone offsets match the final frame.
func (c *Container) View() string {
	if c.width <= 0 || c.height <= 1 {
		return ""
	}
	active := c.Active()
	if active == nil {
		return c.zones.Scan(canvas.Blank(c.width, c.height))
	}
	frame := c.renderTabBar() + "\n" + active.View()
	return c.zones.Scan(frame)
}

func (c *Container) renderTabBar() string {
	t := theme.Current()
	activeStyle := lipgloss.NewStyle().
		Foreground(t.Primary).
		Background(t.Raised).
		Bold(true).
		Padding(0, 1)
	idleStyle := lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 1)

	tabs := make([]string, 0, len(c.views))
	for i, v := range c.views {
		label := v.Title()
		if v.Icon() != "" {
			label = v.Icon() + " " + label
		}
		style := idleStyle
		if i == c.active {
			style = activeStyle
		}
		tabs = append(tabs, c.zones.Mark("tab:"+v.ID(), style.Render(label)))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return lipgloss.NewStyle().Width(c.width).MaxWidth(c.width).Render(bar)
}
