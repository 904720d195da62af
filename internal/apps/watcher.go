package apps

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"lumen/internal/logging"
)

// debounceWindow lets a burst of file events (package upgrades rewrite
// dozens of entries) collapse into a single rescan.
const debounceWindow = 500 * time.Millisecond

// Watcher rescans the application index when desktop entries change on
// disk and hands the fresh index to a callback.
type Watcher struct {
	dirs    []string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// NewWatcher starts watching every existing directory in dirs.
func NewWatcher(dirs []string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	logger = logging.NewComponentLogger(logger, "apps")

	watched := 0
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			logger.Warn("watch application directory", logging.String("dir", dir), logging.Error(err))
			continue
		}
		watched++
	}
	logger.Debug("application watcher started", logging.Int("directories", watched))

	return &Watcher{dirs: dirs, watcher: fsw, logger: logger}, nil
}

// Run blocks until ctx ends, invoking onChange with a freshly scanned
// index after each debounced change burst.
func (w *Watcher) Run(ctx context.Context, onChange func([]Entry)) {
	defer w.watcher.Close()

	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceWindow)
			}
			fire = debounce.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("application watcher error", logging.Error(err))
		case <-fire:
			fire = nil
			entries := Scan(w.dirs)
			w.logger.Info("application index reloaded", logging.Int("count", len(entries)))
			onChange(entries)
		}
	}
}
