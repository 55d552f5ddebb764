// Package watch observes the artifact tree and re-parses changed files.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ZQisAmalou/v2x-log-server/internal/metrics"
	"github.com/ZQisAmalou/v2x-log-server/internal/models"
	"github.com/ZQisAmalou/v2x-log-server/internal/parser"
)

// Action describes what happened to a watched file.
type Action string

const (
	ActionAdd    Action = "add"
	ActionChange Action = "change"
	ActionDelete Action = "delete"
)

// Notification is the incremental result of one filesystem change. Events is
// populated for add/change only. This is fire-and-forget: subscribers must
// copy out anything they need.
type Notification struct {
	Action   Action            `json:"action"`
	FilePath string            `json:"filePath"`
	Type     models.SourceType `json:"type"`
	Events   []models.LogEvent `json:"events,omitempty"`
}

// Subscription delivers notifications on C until Close is called.
type Subscription struct {
	C      <-chan Notification
	cancel func()
}

// Close unsubscribes and releases the channel. Safe to call more than once.
func (s *Subscription) Close() {
	s.cancel()
}

// Watcher maintains one recursive watch per registered root directory and
// fans re-parse notifications out to subscribers. Notifications to a full
// subscriber channel are dropped rather than blocking the watch loop.
type Watcher struct {
	roots    map[models.SourceType]string
	registry *parser.Registry
	bufSize  int

	fsw *fsnotify.Watcher

	mu   sync.Mutex
	subs map[int]chan Notification
	next int
}

// New creates a Watcher over the given roots. Roots that cannot be watched
// are logged and skipped; the remaining roots are still observed.
func New(roots map[models.SourceType]string, registry *parser.Registry, bufSize int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if bufSize <= 0 {
		bufSize = 256
	}

	w := &Watcher{
		roots:    roots,
		registry: registry,
		bufSize:  bufSize,
		fsw:      fsw,
		subs:     make(map[int]chan Notification),
	}

	for t, root := range roots {
		if err := w.watchTree(root); err != nil {
			slog.Warn("cannot watch root", "source_type", string(t), "dir", root, "error", err)
			continue
		}
		slog.Info("watching artifact root", "source_type", string(t), "dir", root)
	}

	return w, nil
}

// Subscribe registers a new consumer of change notifications.
func (w *Watcher) Subscribe() *Subscription {
	ch := make(chan Notification, w.bufSize)

	w.mu.Lock()
	id := w.next
	w.next++
	w.subs[id] = ch
	w.mu.Unlock()

	var once sync.Once
	return &Subscription{
		C: ch,
		cancel: func() {
			once.Do(func() {
				w.mu.Lock()
				delete(w.subs, id)
				w.mu.Unlock()
				close(ch)
			})
		},
	}
}

// Start runs the watch loop until ctx is cancelled. Watch errors are logged
// and do not terminate the loop.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	sourceType, ok := w.sourceTypeFor(ev.Name)
	if !ok {
		return
	}

	switch {
	case ev.Op&fsnotify.Create != 0:
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			// New subdirectory: extend the recursive watch.
			if err := w.watchTree(ev.Name); err != nil {
				slog.Warn("cannot watch new directory", "dir", ev.Name, "error", err)
			}
			return
		}
		w.reparse(ActionAdd, ev.Name, sourceType)

	case ev.Op&fsnotify.Write != 0:
		w.reparse(ActionChange, ev.Name, sourceType)

	case ev.Op&fsnotify.Remove != 0, ev.Op&fsnotify.Rename != 0:
		metrics.WatchNotifications.WithLabelValues(string(ActionDelete)).Inc()
		w.broadcast(Notification{
			Action:   ActionDelete,
			FilePath: ev.Name,
			Type:     sourceType,
		})
	}
}

func (w *Watcher) reparse(action Action, path string, t models.SourceType) {
	events := w.registry.ParseFile(path, t)
	if len(events) == 0 {
		return
	}

	metrics.WatchNotifications.WithLabelValues(string(action)).Inc()
	w.broadcast(Notification{
		Action:   action,
		FilePath: path,
		Type:     t,
		Events:   events,
	})
}

func (w *Watcher) broadcast(n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, ch := range w.subs {
		select {
		case ch <- n:
		default:
			metrics.WatchDropped.Inc()
			slog.Warn("dropped notification for slow subscriber", "file", n.FilePath)
		}
	}
}

// sourceTypeFor maps a changed path back to the store it lives under.
func (w *Watcher) sourceTypeFor(path string) (models.SourceType, bool) {
	for t, root := range w.roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		if absPath == abs || strings.HasPrefix(absPath, abs+string(filepath.Separator)) {
			return t, true
		}
	}
	return "", false
}

// watchTree adds dir and every subdirectory to the fsnotify watch set.
func (w *Watcher) watchTree(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := w.watchTree(filepath.Join(dir, entry.Name())); err != nil {
			slog.Warn("cannot watch subdirectory", "dir", filepath.Join(dir, entry.Name()), "error", err)
		}
	}
	return nil
}
