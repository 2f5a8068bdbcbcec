package content

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a projects file must stay quiet before it is
// reloaded. Editors usually write a file in several steps.
const DefaultDebounce = 250 * time.Millisecond

// Update is one reload result. Err is set when the file could not be read or
// failed validation; the previous list stays in effect.
type Update struct {
	Projects []Project
	Err      error
}

// Watcher reloads a projects file whenever it changes.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *zap.Logger
	fsw      *fsnotify.Watcher
	updates  chan Update

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher starts watching path. The directory is watched rather than the
// file so that editors replacing the file by rename are followed. A
// non-positive debounce uses DefaultDebounce; log may be nil.
func NewWatcher(path string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch projects: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch projects: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch projects: %w", err)
	}
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		log:      log.With(zap.String("path", abs)),
		fsw:      fsw,
		updates:  make(chan Update, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers reload results. Only the latest undelivered result is
// kept. The channel is closed by Close.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	defer close(w.updates)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("projects file changed", zap.Stringer("op", ev.Op))
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	ps, err := LoadFile(w.path)
	if err != nil {
		w.log.Warn("projects reload failed", zap.Error(err))
	} else {
		w.log.Info("projects reloaded", zap.Int("count", len(ps)))
	}
	u := Update{Projects: ps, Err: err}
	select {
	case w.updates <- u:
		return
	default:
	}
	// Drop the stale result nobody read.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- u
}
