package widget

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/tessera/internal/tui/theme"
)

// refreshSpinner wraps the bubbles spinner used as the purely cosmetic
// refresh indicator in the title bar.
type refreshSpinner struct {
	model spinner.Model
}

func newRefreshSpinner() refreshSpinner {
	t := theme.Current()
	s := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	s.Style = lipgloss.NewStyle().Foreground(t.Primary)
	return refreshSpinner{model: s}
}

// Tick returns the command that starts the spinner animation.
func (s *refreshSpinner) Tick() tea.Cmd {
	return s.model.Tick
}

// Update advances the animation and returns the next tick.
func (s *refreshSpinner) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// View renders the current spinner frame.
func (s *refreshSpinner) View() string {
	return s.model.View()
}
