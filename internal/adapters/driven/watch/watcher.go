// Package watch notices engine state written by other processes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/datalex/internal/core/ports/driven"
	"github.com/custodia-labs/datalex/internal/logger"
)

// DefaultInterval is the minimum spacing between two notifications.
const DefaultInterval = 500 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.ChangeNotifier = (*Watcher)(nil)

// Watcher reports writes to files in a directory, coalescing bursts.
type Watcher struct {
	dir      string
	prefix   string
	interval time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithPrefix limits notifications to files whose base name starts with prefix.
// SQLite writes the database, its -wal and its -shm files, so the db file
// name is the usual prefix.
func WithPrefix(prefix string) Option {
	return func(w *Watcher) {
		w.prefix = prefix
	}
}

// WithInterval sets the minimum spacing between notifications.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// New creates a watcher for dir.
func New(dir string, opts ...Option) *Watcher {
	w := &Watcher{dir: dir, interval: DefaultInterval}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Watch starts watching. The returned channel has capacity one, so a slow
// reader sees at most one pending notification however many writes happened.
// The channel is closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}

	out := make(chan struct{}, 1)
	go w.run(ctx, fw, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)
	defer fw.Close()

	limiter := rate.NewLimiter(rate.Every(w.interval), 1)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) || fire != nil {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			timer = time.NewTimer(limiter.Reserve().Delay())
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: %v", err)

		case <-fire:
			fire = nil
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.prefix == "" || strings.HasPrefix(filepath.Base(event.Name), w.prefix)
}
