package canvas

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestBlank(t *testing.T) {
	t.Parallel()

	c := Blank(4, 3)
	lines := strings.Split(c, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if l != "    " {
			t.Errorf("line %d = %q, want 4 spaces", i, l)
		}
	}

	if Blank(0, 3) != "" || Blank(3, 0) != "" {
		t.Error("degenerate canvas should be empty")
	}
}

func TestOverlayPlacement(t *testing.T) {
	t.Parallel()

	base := Blank(10, 4)
	got := Overlay(base, "AB\nCD", 3, 1)
	lines := strings.Split(got, "\n")

	if lines[0] != strings.Repeat(" ", 10) {
		t.Errorf("row 0 disturbed: %q", lines[0])
	}
	if lines[1] != "   AB     " {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "   CD     " {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestOverlayWidthInvariant(t *testing.T) {
	t.Parallel()

	base := Blank(20, 5)
	cases := []struct {
		name  string
		block string
		x, y  int
	}{
		{"interior", "XX\nXX", 5, 1},
		{"clipped right", "WIDEBLOCK", 15, 2},
		{"clipped left", "LEFT", -2, 0},
		{"below bottom", "ZZ", 0, 10},
		{"above top", "ZZ", 0, -3},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Overlay(base, tc.block, tc.x, tc.y)
			for i, line := range strings.Split(got, "\n") {
				if w := ansi.StringWidth(line); w != 20 {
					t.Errorf("line %d width = %d, want 20 (%q)", i, w, line)
				}
			}
		})
	}
}

func TestOverlayClipsAtRightEdge(t *testing.T) {
	t.Parallel()

	base := Blank(20, 3)
	got := Overlay(base, "WIDEBLOCK", 15, 1)
	lines := strings.Split(got, "\n")
	if want := strings.Repeat(" ", 15) + "WIDEB"; lines[1] != want {
		t.Errorf("clipped row = %q, want %q", lines[1], want)
	}

	// A block starting past the right edge leaves the base untouched.
	if got := Overlay(base, "XX", 25, 1); got != base {
		t.Errorf("off-canvas overlay changed the base")
	}
}

func TestOverlayPreservesStyledBase(t *testing.T) {
	t.Parallel()

	styled := "\x1b[31mRRRRRRRRRR\x1b[0m"
	base := styled + "\n" + styled
	got := Overlay(base, "##", 4, 0)
	lines := strings.Split(got, "\n")

	if w := ansi.StringWidth(lines[0]); w != 10 {
		t.Errorf("styled row width = %d, want 10", w)
	}
	if !strings.Contains(lines[0], "##") {
		t.Errorf("overlay not applied to styled row: %q", lines[0])
	}
	if lines[1] != styled {
		t.Errorf("untouched styled row changed: %q", lines[1])
	}
}

func TestBlockMetrics(t *testing.T) {
	t.Parallel()

	block := "ab\nlonger\nx"
	if w := BlockWidth(block); w != 6 {
		t.Errorf("BlockWidth = %d, want 6", w)
	}
	if h := BlockHeight(block); h != 3 {
		t.Errorf("BlockHeight = %d, want 3", h)
	}
	if h := BlockHeight(""); h != 0 {
		t.Errorf("BlockHeight(empty) = %d, want 0", h)
	}
}

func TestOverlayRaggedBlockPadded(t *testing.T) {
	t.Parallel()

	base := Blank(8, 2)
	// Ragged block lines are padded to the block's widest line so the
	// overlay always covers a clean rectangle.
	got := Overlay(base, "abc\nz", 2, 0)
	lines := strings.Split(got, "\n")
	if lines[1] != "  z     " {
		t.Errorf("short block line not padded: %q", lines[1])
	}
}
