package upload

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a dropped file must stay unwritten before it is read
const DefaultSettle = 250 * time.Millisecond

// Inbox uploads image files dropped into a directory while the scene runs
type Inbox struct {
	dir    string
	up     *Uploader
	settle time.Duration
}

// NewInbox creates an inbox on dir; settle <= 0 uses DefaultSettle
func NewInbox(dir string, up *Uploader, settle time.Duration) *Inbox {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Inbox{dir: dir, up: up, settle: settle}
}

// Dir returns the watched directory
func (in *Inbox) Dir() string {
	return in.dir
}

// Watch uploads files created or rewritten in the directory until ctx is cancelled
// Files already present when Watch starts are left alone
func (in *Inbox) Watch(ctx context.Context) error {
	if err := os.MkdirAll(in.dir, 0o755); err != nil {
		return fmt.Errorf("inbox %s: %w", in.dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(in.dir); err != nil {
		return fmt.Errorf("watch %s: %w", in.dir, err)
	}
	log.Printf("[upload] inbox watching %s", in.dir)

	// path -> time of the last write
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(in.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			switch {
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				pending[ev.Name] = time.Now()
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				delete(pending, ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[upload] inbox watcher: %v", err)
		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < in.settle {
					continue
				}
				delete(pending, path)
				in.take(path)
			}
		}
	}
}

func (in *Inbox) take(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	if _, err := in.up.UploadFile(path); err != nil {
		log.Printf("[upload] inbox %s: %v", filepath.Base(path), err)
		return
	}
	log.Printf("[upload] inbox added %s", filepath.Base(path))
}
