package bridge

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchConfigFile reloads and applies the TOML configuration at path each
// time the file changes, until ctx is cancelled. The parent directory is
// watched rather than the file itself so editors that replace the file
// atomically still trigger a reload. A file that fails to parse is logged
// and skipped; the previous configuration stays in effect.
func (b *Bridge) WatchConfigFile(ctx context.Context, path string) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !ev.Op.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				cfg, err := LoadConfigFile(path)
				if err != nil {
					b.logger.Warn("ignoring unreadable config file",
						zap.String("path", path),
						zap.Error(err),
					)
					continue
				}
				b.ApplyConfig(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				b.logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}
