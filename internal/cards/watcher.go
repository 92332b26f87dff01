package cards

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Provider hands out the current registry Index. The zero value is not
// usable; create one with NewProvider. The Index itself never mutates;
// reloads swap in a freshly built snapshot.
type Provider struct {
	current atomic.Pointer[Index]
	path    string
}

// NewProvider creates a Provider serving the given Index. path is the
// external registry document to watch for reloads; empty means the Index is
// fixed for the process lifetime.
func NewProvider(idx *Index, path string) *Provider {
	p := &Provider{path: path}
	p.current.Store(idx)
	return p
}

// Index returns the current registry snapshot.
func (p *Provider) Index() *Index {
	return p.current.Load()
}

// Watch reloads the registry document whenever it changes on disk and swaps
// the new snapshot in. It blocks until ctx is cancelled. A reload that
// produces a degraded Index is skipped so a half-written file cannot wipe
// out working card knowledge.
func (p *Provider) Watch(ctx context.Context) error {
	if p.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// The document path is watched directly. A writer that replaces the
	// file by rename swaps the inode and can orphan this watch; watching
	// the parent directory and filtering events on the file name would
	// survive that. In-place rewrites, the common case for a hand-edited
	// data file, are picked up fine.
	if err := watcher.Add(p.path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			idx := LoadFile(p.path)
			if idx.Degraded() {
				slog.Warn("card registry reload skipped, document unreadable", "path", p.path)
				continue
			}
			p.current.Store(idx)
			slog.Info("card registry reloaded", "path", p.path, "cards", idx.Size())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("card registry watcher error", "error", err)
		}
	}
}
