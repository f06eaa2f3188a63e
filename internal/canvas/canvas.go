// Package canvas composites pre-rendered ANSI blocks. The dashboard uses
// it to stack floating and maximized widgets (and the slideshow overlay)
// above the docked layout without the layers bleeding into each other.
package canvas

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Blank returns an empty canvas of w×h cells.
func Blank(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	row := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// BlockWidth returns the display width of the widest line in block,
// ignoring ANSI escape sequences.
func BlockWidth(block string) int {
	max := 0
	for _, line := range strings.Split(block, "\n") {
		if w := ansi.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}

// BlockHeight returns the number of lines in block.
func BlockHeight(block string) int {
	if block == "" {
		return 0
	}
	return strings.Count(block, "\n") + 1
}

// Overlay draws block on top of base with its top-left corner at (x, y).
// Rows of the block that fall outside the base are dropped; the base is
// never grown. Styling on either layer is preserved.
func Overlay(base, block string, x, y int) string {
	if block == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")
	blockW := BlockWidth(block)
	if blockW == 0 {
		return base
	}

	for i, bl := range blockLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		baseLines[row] = spliceLine(baseLines[row], bl, x, blockW)
	}
	return strings.Join(baseLines, "\n")
}

// spliceLine replaces width cells of line starting at column x with seg.
// Columns past either edge of line are clipped; the line never grows.
func spliceLine(line, seg string, x, width int) string {
	if x < 0 {
		seg = ansi.TruncateLeft(seg, -x, "")
		width += x
		x = 0
		if width <= 0 {
			return line
		}
	}
	lineW := ansi.StringWidth(line)
	if x >= lineW {
		return line
	}
	if x+width > lineW {
		width = lineW - x
	}

	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	seg = ansi.Truncate(seg, width, "")
	if pad := width - ansi.StringWidth(seg); pad > 0 {
		seg += strings.Repeat(" ", pad)
	}

	right := ansi.TruncateLeft(line, x+width, "")
	return left + seg + right
}
