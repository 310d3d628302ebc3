//go:generate mockgen -source=watcher.go -destination=watcher_mock.go -package=watcher
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"siemctl/internal/app/auth"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

// Change reports the authentication state after the session file changed
type Change struct {
	Authenticated bool
}

// Watcher observes the session file so a logout from another process reaches the console
type Watcher interface {
	Start(ctx context.Context) (<-chan Change, error)
	Close()
}

type watcher struct {
	auth      auth.Auth
	fsWatcher *fsnotify.Watcher
	debouncer Debouncer
	changes   chan Change
	log       logger.Logger
	mu        sync.Mutex
	closed    bool
}

// NewWatcher creates a session file Watcher
func NewWatcher(a auth.Auth, log logger.Logger) Watcher {
	return &watcher{
		auth:    a,
		changes: make(chan Change, 1),
		log:     log.WithComponent("WATCHER"),
	}
}

// Start begins watching; a nil channel is returned when the session is not file backed
func (w *watcher) Start(ctx context.Context) (<-chan Change, error) {
	path := w.auth.SessionPath()
	if path == "" {
		return nil, nil
	}

	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.mu.Lock()
	w.fsWatcher = fsw
	w.debouncer = NewDebouncer(config.SessionDebounce, w.emit)
	w.mu.Unlock()

	w.log.Debug().Msgf("Watching session file %s", path)

	go w.processEvents(ctx, fsw, path)

	return w.changes, nil
}

// Close stops watching
func (w *watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true

	if w.debouncer != nil {
		w.debouncer.Stop()
	}

	if w.fsWatcher != nil {
		_ = w.fsWatcher.Close()
	}
}

func (w *watcher) processEvents(ctx context.Context, fsw *fsnotify.Watcher, path string) {
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != path {
				continue
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			w.debouncer.Trigger()

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}

			w.log.Warn().Err(err).Msg("Session watcher error")
		}
	}
}

// emit publishes the latest state, replacing an unread one
func (w *watcher) emit() {
	change := Change{Authenticated: w.auth.IsAuthenticated()}

	select {
	case <-w.changes:
	default:
	}

	select {
	case w.changes <- change:
	default:
	}

	w.log.Debug().Bool("authenticated", change.Authenticated).Msg("Session changed")
}
