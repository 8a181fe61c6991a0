package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-runs Sync whenever the source directory changes, until ctx is
// cancelled. Bursts of filesystem events (an unpacking payload touches every
// file) are coalesced by the configured debounce interval. Sync failures are
// logged and do not stop the watch.
func (ins *Installer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("installer: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(ins.cfg.SourceDir); err != nil {
		return fmt.Errorf("installer: watch %s: %w", ins.cfg.SourceDir, err)
	}
	ins.logger.Info("watching source directory", "path", ins.cfg.SourceDir)

	// The timer is armed on the first relevant event and re-armed on every
	// subsequent one; it only fires after a quiet period.
	timer := newStoppedTimer(ins.cfg.WatchDebounce)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			ins.logger.Debug("source change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(ins.cfg.WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			ins.logger.Error("watch error", "error", err)

		case <-timer.C:
			if _, err := ins.Sync(ctx); err != nil {
				ins.logger.Error("sync after change failed", "error", err)
			}
		}
	}
}

// newStoppedTimer returns a timer that will not fire until its first Reset.
func newStoppedTimer(d time.Duration) *time.Timer {
	t := time.NewTimer(d)
	if !t.Stop() {
		<-t.C
	}
	return t
}
