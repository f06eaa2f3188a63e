package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/tui/theme"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// slideshow is the transient presentation state: a snapshot of the
// widget list and a circular index. It exists only while the mode is
// active and is discarded wholesale on exit.
type slideshow struct {
	widgets []*widget.Widget
	index   int
}

// drop removes a closed widget from the snapshot so navigation never
// lands on a dead slide.
func (s *slideshow) drop(w *widget.Widget) {
	for i, occ := range s.widgets {
		if occ == w {
			s.widgets = append(s.widgets[:i], s.widgets[i+1:]...)
			if s.index >= len(s.widgets) {
				s.index = 0
			}
			return
		}
	}
}

// SlideshowActive reports whether slideshow mode is on.
func (v *View) SlideshowActive() bool { return v.show != nil }

// SlideshowIndex returns the current slide position, or -1 when
// slideshow mode is off.
func (v *View) SlideshowIndex() int {
	if v.show == nil {
		return -1
	}
	return v.show.index
}

// EnterSlideshow snapshots the widget list in layout traversal order
// and presents the first widget full-screen. A view with no widgets,
// or one already presenting, stays as it is.
func (v *View) EnterSlideshow() {
	if v.show != nil {
		return
	}
	ws := v.Widgets()
	if len(ws) == 0 {
		return
	}
	v.show = &slideshow{widgets: ws}
}

// ExitSlideshow tears down all slideshow state. Idempotent: exiting
// with no slideshow active is a no-op. Destroy calls this
// unconditionally.
func (v *View) ExitSlideshow() {
	v.show = nil
}

// SlideshowNext advances circularly.
func (v *View) SlideshowNext() { v.slideshowStep(1) }

// SlideshowPrev steps back circularly.
func (v *View) SlideshowPrev() { v.slideshowStep(-1) }

func (v *View) slideshowStep(delta int) {
	if v.show == nil || len(v.show.widgets) == 0 {
		return
	}
	n := len(v.show.widgets)
	v.show.index = ((v.show.index+delta)%n + n) % n
}

func (v *View) zoneSlideshow(part string) string {
	return "ss:" + v.id + ":" + part
}

func (v *View) slideshowPress(msg tea.MouseMsg) {
	for part, fn := range map[string]func(){
		"prev":  v.SlideshowPrev,
		"next":  v.SlideshowNext,
		"close": v.ExitSlideshow,
	} {
		if z := v.zones.Get(v.zoneSlideshow(part)); z != nil && z.InBounds(msg) {
			fn()
			return
		}
	}
}

// renderSlideshow draws the current widget's content full-screen with a
// one-line control bar: prev/next arrows, close, and the index
// indicator.
func (v *View) renderSlideshow(t theme.Theme, body geom.Rect) string {
	s := v.show
	if len(s.widgets) == 0 {
		return ""
	}
	w := s.widgets[s.index]

	controls := lipgloss.JoinHorizontal(lipgloss.Center,
		v.zones.Mark(v.zoneSlideshow("prev"), " ← "),
		lipgloss.NewStyle().Foreground(t.Subtext).
			Render(fmt.Sprintf(" %s  %d/%d ", w.Title(), s.index+1, len(s.widgets))),
		v.zones.Mark(v.zoneSlideshow("next"), " → "),
		"  ",
		v.zones.Mark(v.zoneSlideshow("close"), " ✕ "),
	)
	bar := lipgloss.NewStyle().
		Width(body.W).
		Align(lipgloss.Center).
		Background(t.Raised).
		Render(controls)

	slide := w.Render(v.zones, body.W, body.H-1)
	return strings.Join([]string{bar, slide}, "\n")
}
