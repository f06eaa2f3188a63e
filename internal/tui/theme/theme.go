// Package theme provides the color palettes used by widget chrome and
// dashboard decoration.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the palette for the dashboard surface.
type Theme struct {
	// Base surfaces
	Base     lipgloss.Color // dashboard background
	Surface  lipgloss.Color // widget body background
	Raised   lipgloss.Color // title bars, footers
	Divider  lipgloss.Color // splitters, dividers

	// Text
	Text    lipgloss.Color // primary text
	Subtext lipgloss.Color // secondary text
	Muted   lipgloss.Color // hints, toolbar glyphs

	// Accents
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Widget chrome roles
	BorderDocked   lipgloss.Color // border of an unfocused docked widget
	BorderFocused  lipgloss.Color // border of the focused widget
	BorderFloating lipgloss.Color // border of floating widgets
	DragGhost      lipgloss.Color // drop-target highlight during a drag
	HandleHint     lipgloss.Color // resize handle glyphs
}

// Mocha is the flagship dark palette.
var Mocha = Theme{
	Base:    lipgloss.Color("#1e1e2e"),
	Surface: lipgloss.Color("#181825"),
	Raised:  lipgloss.Color("#313244"),
	Divider: lipgloss.Color("#45475a"),

	Text:    lipgloss.Color("#cdd6f4"),
	Subtext: lipgloss.Color("#a6adc8"),
	Muted:   lipgloss.Color("#6c7086"),

	Primary: lipgloss.Color("#89b4fa"),
	Accent:  lipgloss.Color("#cba6f7"),
	Success: lipgloss.Color("#a6e3a1"),
	Warning: lipgloss.Color("#f9e2af"),
	Error:   lipgloss.Color("#f38ba8"),

	BorderDocked:   lipgloss.Color("#585b70"),
	BorderFocused:  lipgloss.Color("#89b4fa"),
	BorderFloating: lipgloss.Color("#cba6f7"),
	DragGhost:      lipgloss.Color("#f5c2e7"),
	HandleHint:     lipgloss.Color("#6c7086"),
}

// Latte is the light palette.
var Latte = Theme{
	Base:    lipgloss.Color("#eff1f5"),
	Surface: lipgloss.Color("#e6e9ef"),
	Raised:  lipgloss.Color("#ccd0da"),
	Divider: lipgloss.Color("#bcc0cc"),

	Text:    lipgloss.Color("#4c4f69"),
	Subtext: lipgloss.Color("#5c5f77"),
	Muted:   lipgloss.Color("#8c8fa1"),

	Primary: lipgloss.Color("#1e66f5"),
	Accent:  lipgloss.Color("#8839ef"),
	Success: lipgloss.Color("#40a02b"),
	Warning: lipgloss.Color("#df8e1d"),
	Error:   lipgloss.Color("#d20f39"),

	BorderDocked:   lipgloss.Color("#9ca0b0"),
	BorderFocused:  lipgloss.Color("#1e66f5"),
	BorderFloating: lipgloss.Color("#8839ef"),
	DragGhost:      lipgloss.Color("#ea76cb"),
	HandleHint:     lipgloss.Color("#8c8fa1"),
}

// Plain disables all colors; used when NO_COLOR is requested.
var Plain = Theme{}

// NoColorEnabled reports whether color output should be disabled.
// TESSERA_NO_COLOR overrides the standard NO_COLOR variable in either
// direction; NO_COLOR disables colors by presence alone.
func NoColorEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TESSERA_NO_COLOR"))) {
	case "0", "false", "no", "off":
		return false
	case "1", "true", "yes", "on":
		return true
	}
	_, set := os.LookupEnv("NO_COLOR")
	return set
}

// detectDarkBackground inspects the terminal background. A variable for
// testability.
var detectDarkBackground = func() bool {
	return termenv.NewOutput(os.Stdout).HasDarkBackground()
}

func autoTheme() Theme {
	if detectDarkBackground() {
		return Mocha
	}
	return Latte
}

// FromName returns a theme by name, falling back to auto-detection.
func FromName(name string) Theme {
	if NoColorEnabled() {
		return Plain
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "none", "no-color", "nocolor":
		return Plain
	case "latte", "light":
		return Latte
	case "mocha", "dark":
		return Mocha
	default:
		return autoTheme()
	}
}

// Current returns the active theme based on the TESSERA_THEME env var.
func Current() Theme {
	return FromName(os.Getenv("TESSERA_THEME"))
}
