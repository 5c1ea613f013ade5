package probe

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/dusk/internal/logging"
)

// PreferenceWatcher nudges the watcher when the fallback preference file
// changes, so container and file-based environments react before the next
// poll tick. Like PortalMonitor it is a latency optimization only.
type PreferenceWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// NewPreferenceWatcher watches the preference file's directory. The
// directory is watched rather than the file because editors commonly replace
// the file on save, which would drop a direct watch.
func NewPreferenceWatcher(path string) (*PreferenceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &PreferenceWatcher{watcher: watcher, path: path}, nil
}

// Run forwards preference file writes to nudge until ctx is cancelled.
func (p *PreferenceWatcher) Run(ctx context.Context, nudge func()) {
	go func() {
		log := logging.FromContext(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-p.watcher.Events:
				if !ok {
					return
				}
				if event.Name != p.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				log.Debug().Str("file", event.Name).Str("op", event.Op.String()).
					Msg("preference file changed")
				nudge()
			case err, ok := <-p.watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("preference watcher error")
			}
		}
	}()
}

// Close stops the underlying fsnotify watcher.
func (p *PreferenceWatcher) Close() error {
	return p.watcher.Close()
}
