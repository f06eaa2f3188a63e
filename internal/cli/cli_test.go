package cli

import (
	"strings"
	"testing"

	"github.com/Dicklesworthstone/tessera/internal/preset"
	"github.com/Dicklesworthstone/tessera/internal/store"
)

func TestDemoPresetsBuild(t *testing.T) {
	t.Parallel()

	for _, p := range demoPresets() {
		v, err := preset.Build(p, preset.BuildOptions{
			Store:   store.NewMemory(),
			Content: demoContent,
			Refresh: demoRefresh,
		})
		if err != nil {
			t.Fatalf("Build(%s) error: %v", p.ID, err)
		}
		if got := len(v.Widgets()); got != len(p.Widgets) {
			t.Errorf("preset %s: %d widgets built, want %d", p.ID, got, len(p.Widgets))
		}
		v.Destroy()
	}
}

func TestDemoContentCoversRoster(t *testing.T) {
	t.Parallel()

	for _, p := range demoPresets() {
		for _, def := range p.Widgets {
			r := demoContent(def.ID)
			if r == nil {
				t.Fatalf("no content renderer for demo widget %s", def.ID)
			}
			if out := r.Render(40, 10); out == "" {
				t.Errorf("widget %s rendered empty at 40x10", def.ID)
			}
		}
	}
}

func TestDescribePresetWraps(t *testing.T) {
	t.Parallel()

	p := demoPresets()[0]
	desc := describePreset(p, 30)
	for _, line := range strings.Split(desc, "\n") {
		if len(line) > 30 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
	if !strings.Contains(desc, "grid 2x2") {
		t.Errorf("missing grid shape in %q", desc)
	}
}
