package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	t.Parallel()
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	calls := 0
	for i := 0; i < 5; i++ {
		d.Trigger(func() {
			mu.Lock()
			calls++
			mu.Unlock()
		})
	}

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("callback ran %d times, want 1", calls)
	}
}

func TestDebouncerCancel(t *testing.T) {
	t.Parallel()
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	ran := false
	d.Trigger(func() {
		mu.Lock()
		ran = true
		mu.Unlock()
	})
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if ran {
		t.Fatal("canceled callback still ran")
	}
}

func TestWatcherDeliversChangedPaths(t *testing.T) {
	dir := t.TempDir()

	got := make(chan []string, 1)
	w, err := New(func(paths []string) {
		select {
		case got <- paths:
		default:
		}
	}, WithFilter(func(p string) bool {
		return strings.HasSuffix(p, ".yaml")
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		t.Fatalf("Add: %v", err)
	}

	target := filepath.Join(dir, "main.yaml")
	if err := os.WriteFile(target, []byte("id: main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Filtered extension must not deliver.
	if err := os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-got:
		found := false
		for _, p := range paths {
			if p == target {
				found = true
			}
			if strings.HasSuffix(p, ".txt") {
				t.Fatalf("filtered path delivered: %s", p)
			}
		}
		if !found {
			t.Fatalf("changed file missing from %v", paths)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no delivery within timeout")
	}
}

func TestWatcherAddAfterClose(t *testing.T) {
	w, err := New(func([]string) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Add(t.TempDir()); err == nil {
		t.Fatal("Add on closed watcher succeeded")
	}
	// Double close is fine.
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
