package manifest

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/revgraph-dev/revgraph/internal/obslog"
)

// Watch rebuilds whenever a manifest file under dir changes, debouncing
// bursts of events into a single onChange call. It runs until ctx is
// canceled or the watcher fails to start. Watch itself neither parses
// manifests nor builds a Map; it only calls onChange. No revctl command
// calls Watch.
func Watch(ctx context.Context, dir string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isManifestEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounceInterval, onChange)
			} else {
				timer.Reset(debounceInterval)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			obslog.Warn("manifest watch error", "error", err)
		}
	}
}

func isManifestEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return ext == ".toml" || ext == ".yml" || ext == ".yaml"
}
