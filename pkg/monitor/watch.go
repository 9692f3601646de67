package monitor

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/densikit/densikit/pkg/errors"
	"github.com/densikit/densikit/pkg/scale"
)

// Watcher refreshes a scale.State whenever a settings file changes. It
// watches the file's directory rather than the file itself so atomic
// save strategies (write temp, rename over) keep working.
type Watcher struct {
	state    *scale.State
	path     string
	detect   scale.DetectFunc
	debounce *debouncer
	logger   *log.Logger
}

// WatcherOptions configures NewWatcher. Zero values get defaults.
type WatcherOptions struct {
	// Debounce is the event coalescing window. Defaults to DefaultDebounce.
	Debounce time.Duration

	// Logger for watch activity. Defaults to a silent logger.
	Logger *log.Logger
}

// NewWatcher builds a Watcher that refreshes state from the TOML settings
// file at path on every change.
func NewWatcher(state *scale.State, path string, opts WatcherOptions) *Watcher {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Watcher{
		state:    state,
		path:     filepath.Clean(path),
		detect:   FromFile(path),
		debounce: newDebouncer(opts.Debounce),
		logger:   opts.Logger,
	}
}

// Run refreshes once from the file, then blocks handling change events
// until ctx is done. The settings directory must exist; the file itself
// may appear later.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "starting file watcher")
	}
	defer fw.Close()
	defer w.debounce.cancel()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "watching %s", dir)
	}

	w.state.Refresh(w.detect)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// The watch is on the directory; match by name so platforms
			// that report symlink-resolved paths still line up.
			if filepath.Base(ev.Name) != filepath.Base(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("settings file changed", "path", w.path, "op", ev.Op.String())
			w.debounce.trigger(func() {
				w.state.Refresh(w.detect)
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", "err", err)
		}
	}
}
