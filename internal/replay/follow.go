package replay

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// followDebounce collapses the burst of events a single chunk write causes.
const followDebounce = 100 * time.Millisecond

// Follow watches the replay directory and reloads whenever a chunk or the
// static snapshot is created or rewritten. onChange receives the number of
// added steps after each reload. Follow returns once the watcher is running;
// watching stops when ctx is done.
func (r *Replay) Follow(ctx context.Context, onChange func(added int)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(r.dir); err != nil {
		_ = watcher.Close()
		return err
	}

	go r.followLoop(ctx, watcher, onChange)
	return nil
}

func (r *Replay) followLoop(ctx context.Context, watcher *fsnotify.Watcher, onChange func(int)) {
	defer watcher.Close()

	debounce := time.NewTimer(0)
	<-debounce.C
	pending := false

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !r.isChunk(event.Name) && filepath.Base(event.Name) != r.opts.StaticFile {
				continue
			}
			pending = true
			debounce.Reset(followDebounce)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			added, err := r.Reload()
			if err != nil {
				r.logger.Warn("reload failed", "error", err.Error())
				continue
			}
			if onChange != nil {
				onChange(added)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("watch error", "error", err.Error())
		}
	}
}
