// Package watch reports media files as they land in a directory.
//
// A Watcher wraps an fsnotify watcher, filters events down to files with a
// known media extension, and debounces bursts of writes so each file is
// handed to the callback once it has gone quiet.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"judder/internal/logging"
)

// DefaultDebounce is how long a file must be quiet before it is reported.
const DefaultDebounce = 500 * time.Millisecond

// DefaultExtensions lists the container extensions reported by default.
var DefaultExtensions = []string{".mkv", ".mp4", ".m4v", ".mov", ".ts", ".m2ts", ".webm", ".avi"}

// Handler receives each settled media file.
type Handler func(ctx context.Context, path string)

// Watcher monitors one directory for new or rewritten media files.
type Watcher struct {
	dir        string
	extensions map[string]struct{}
	debounce   time.Duration
	handler    Handler
	logger     *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithExtensions replaces the reported extensions. Matching ignores case.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.extensions = extensionSet(exts)
	}
}

// WithDebounce sets the quiet period before a file is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New builds a watcher for dir. handler is called from its own goroutine
// once per settled file event.
func New(dir string, handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		dir:        dir,
		extensions: extensionSet(DefaultExtensions),
		debounce:   DefaultDebounce,
		handler:    handler,
		logger:     logging.NewNop(),
		timers:     make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.NewComponentLogger(w.logger, "watch")
	return w
}

// Run blocks until ctx is canceled or the underlying watcher fails. Pending
// callbacks are allowed to finish before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", w.dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Debug("watching directory", logging.String("dir", w.dir))

	defer w.wait()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.Matches(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(w.logger, "watcher error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "some file events may have been missed"),
			)
		}
	}
}

// Matches reports whether path has one of the watched extensions.
func (w *Watcher) Matches(path string) bool {
	_, ok := w.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		if timer.Stop() {
			timer.Reset(w.debounce)
			return
		}
	}
	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.timers[path] == timer {
			delete(w.timers, path)
		}
		w.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		w.handler(ctx, path)
	})
	w.timers[path] = timer
}

// wait stops pending timers and waits for running callbacks.
func (w *Watcher) wait() {
	w.mu.Lock()
	for path, timer := range w.timers {
		if timer.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}
