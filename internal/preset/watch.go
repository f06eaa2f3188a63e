package preset

import (
	"path/filepath"
	"strings"

	"github.com/Dicklesworthstone/tessera/internal/watcher"
)

// Watch reloads presets as their files change on disk. The handler
// receives each successfully reloaded preset; files that fail to parse
// are reported through onErr and skipped. Close the returned watcher
// to stop.
func Watch(dir string, handler func(*Preset), onErr func(error)) (*watcher.Watcher, error) {
	w, err := watcher.New(func(paths []string) {
		for _, path := range paths {
			p, err := Load(path)
			if err != nil {
				if onErr != nil {
					onErr(err)
				}
				continue
			}
			handler(p)
		}
	}, watcher.WithFilter(isPresetFile))
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func isPresetFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
