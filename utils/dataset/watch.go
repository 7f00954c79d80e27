package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports when the file backing a dataset changes on disk so the
// host can reload it and reset wizard progress. Events are coalesced: the
// channel carries at most one pending notification.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	log     *zap.Logger
	changes chan struct{}
	done    chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithWatchLogger attaches a logger for watch events.
func WithWatchLogger(log *zap.Logger) WatchOption {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// Watch observes the dataset file at path. The parent directory is watched
// so editors that replace the file via rename are still caught.
func Watch(path string, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset path: %w", err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("watch dataset directory: %w", err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fs,
		log:     zap.NewNop(),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	go w.loop()
	return w, nil
}

// Changes returns the notification channel.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching and releases the underlying watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("dataset changed", zap.String("path", w.path), zap.String("op", event.Op.String()))
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("dataset watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}
