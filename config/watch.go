package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it changes and passes each successfully parsed Tuning to fn
// The parent directory is watched so editors that replace the file are seen
// Returns when ctx is cancelled
func Watch(ctx context.Context, path string, fn func(Tuning)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			t, err := Load(path)
			if err != nil {
				log.Printf("[config] reload %s: %v", path, err)
				continue
			}
			log.Printf("[config] reloaded %s", path)
			fn(t)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[config] watcher: %v", err)
		}
	}
}
